package dataset

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/logging"
)

// WatchDataDir invalidates the store's cached snapshot whenever a CSV in
// the data directory is created, replaced, or removed, so the next request
// re-reads disk. Returns a close function; callers should defer it.
func WatchDataDir(ctx context.Context, store *Store) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(store.DataDir()); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Ext(event.Name), ".csv") {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logging.Info("Data directory changed, invalidating cache",
					"file", filepath.Base(event.Name),
					"op", event.Op.String(),
				)
				store.Invalidate()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("Data directory watch error", "error", err.Error())
			}
		}
	}()

	return watcher.Close, nil
}
