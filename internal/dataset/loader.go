package dataset

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"golang.org/x/sync/singleflight"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/common"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/config"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/logging"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/metrics"
)

// Logical dataset names, mirroring the file names on disk.
const (
	TableRoutes   = "route_stats"
	TableAirports = "airport_stats"
	TableMonthly  = "monthly_stats"
	TableCarriers = "carrier_delays"
	TableFull     = "full"
)

// fullFileName is the preferred on-disk name for the full record table.
const fullFileName = "airline_cleaned.csv"

var summaryTables = []string{TableRoutes, TableAirports, TableMonthly, TableCarriers}

// Column names of the full record table.
const (
	colOrigin      = "Origin"
	colDest        = "Dest"
	colCarrier     = "UniqueCarrier"
	colMonth       = "Month"
	colDepTime     = "DepTime"
	colArrDelay    = "ArrDelay"
	colDepDelay    = "DepDelay"
	colCancelled   = "Cancelled"
	colCancelCode  = "CancellationCode"
	colRoute       = "Route"
	colDepHour     = "DepHour"
	colCarrierDly  = "CarrierDelay"
	colWeatherDly  = "WeatherDelay"
	colNASDly      = "NASDelay"
	colSecurityDly = "SecurityDelay"
	colLateDly     = "LateAircraftDelay"
)

var delayCauseColumns = []string{colCarrierDly, colWeatherDly, colNASDly, colSecurityDly, colLateDly}

// Fetcher retrieves the full dataset archive into a directory. Implemented
// by the Kaggle provider; swapped for a mock in tests.
type Fetcher interface {
	DownloadAndExtract(ctx context.Context, dataset string, destDir string) error
}

// Snapshot is the loaded-table mapping for one data-dir state, plus a note
// explaining why the full table is absent when it is.
type Snapshot struct {
	Tables map[string]dataframe.DataFrame

	// FullNote is a user-visible message when the full table could not be
	// loaded (download failure, no CSV after extraction). Empty otherwise.
	FullNote string
}

// Has reports whether a logical dataset is present in the snapshot.
func (s *Snapshot) Has(name string) bool {
	_, ok := s.Tables[name]
	return ok
}

// TableNames returns the loaded dataset names, sorted.
func (s *Snapshot) TableNames() []string {
	names := make([]string, 0, len(s.Tables))
	for name := range s.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store loads and memoizes the dataset tables. A month-filter change on the
// dashboard never re-reads disk: the loaded mapping is cached keyed by data
// dir and newest file mtime, and invalidated by the watcher or an explicit
// refresh.
type Store struct {
	dataDir     string
	maxRows     int
	fetchEnable bool
	dataset     string

	fetcher Fetcher
	cache   common.CacheInterface
	group   singleflight.Group
	metrics *metrics.MetricsRegistry
}

// NewStore creates a Store over the configured data directory.
func NewStore(cfg *config.Config, cache common.CacheInterface, fetcher Fetcher) *Store {
	return &Store{
		dataDir:     cfg.DataDir,
		maxRows:     cfg.MaxRows,
		fetchEnable: cfg.EnableFetch && cfg.HasCredentials(),
		dataset:     cfg.KaggleDataset,
		fetcher:     fetcher,
		cache:       cache,
	}
}

// SetMetrics attaches the Prometheus registry. Optional; a nil registry
// disables instrumentation, which tests rely on.
func (s *Store) SetMetrics(reg *metrics.MetricsRegistry) {
	s.metrics = reg
}

// Load returns the current snapshot, reading from disk only when the cached
// one is stale.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	key := s.cacheKey()
	if s.metrics != nil {
		if _, found := s.cache.Get(key); found {
			s.metrics.CacheHitsTotal.WithLabelValues("tables").Inc()
		} else {
			s.metrics.CacheMissesTotal.WithLabelValues("tables").Inc()
		}
	}
	val, err := s.cache.GetOrSet(key, common.NoExpiration, func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	snap, ok := val.(*Snapshot)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T for key %s", val, key)
	}
	return snap, nil
}

// Invalidate drops every cached snapshot. The next Load re-reads disk.
func (s *Store) Invalidate() {
	s.cache.Flush()
}

// DataDir returns the directory the store reads from.
func (s *Store) DataDir() string {
	return s.dataDir
}

// cacheKey ties a snapshot to the data dir and the newest mtime inside it,
// so an externally replaced CSV is picked up on the next load.
func (s *Store) cacheKey() string {
	newest := int64(0)
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Sprintf("tables:%s:absent", s.dataDir)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if m := info.ModTime().UnixNano(); m > newest {
			newest = m
		}
	}
	return fmt.Sprintf("tables:%s:%d", s.dataDir, newest)
}

func (s *Store) load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Tables: make(map[string]dataframe.DataFrame)}

	for _, name := range summaryTables {
		path := filepath.Join(s.dataDir, name+".csv")
		if _, err := os.Stat(path); err != nil {
			// Missing summary files are simply omitted, not an error.
			continue
		}
		df, err := readCSVFile(path, nil, 0)
		if err != nil {
			logging.Warn("Skipping unreadable summary table", "table", name, "error", err.Error())
			continue
		}
		snap.Tables[name] = df
		if s.metrics != nil {
			s.metrics.DatasetRowsLoaded.WithLabelValues(name).Set(float64(df.Nrow()))
		}
		logging.Info("Loaded summary table", "table", name, "rows", df.Nrow())
	}

	fullPath, note := s.locateFull(ctx)
	if fullPath == "" {
		snap.FullNote = note
		return snap, nil
	}

	start := time.Now()
	df, err := s.readFull(fullPath)
	if err != nil {
		snap.FullNote = fmt.Sprintf("Full dataset at %s could not be read: %v", fullPath, err)
		logging.Error("Failed to read full dataset", "path", fullPath, "error", err.Error())
		return snap, nil
	}
	snap.Tables[TableFull] = df
	if s.metrics != nil {
		s.metrics.DatasetRowsLoaded.WithLabelValues(TableFull).Set(float64(df.Nrow()))
		s.metrics.DatasetLoadDuration.WithLabelValues(TableFull).Observe(time.Since(start).Seconds())
	}
	logging.Info("Loaded full dataset",
		"path", fullPath,
		"rows", df.Nrow(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return snap, nil
}

// locateFull finds the full record table on disk, triggering the one-time
// remote fetch when enabled. Returns an empty path and a user-visible note
// when the full table is unavailable.
func (s *Store) locateFull(ctx context.Context) (string, string) {
	if path := s.findFullFile(); path != "" {
		return path, ""
	}
	if !s.fetchEnable || s.fetcher == nil {
		return "", "Aggregated data only. Add " + fullFileName + " to the data directory for full KPIs."
	}

	// Concurrent cold-cache requests share one download.
	_, err, _ := s.group.Do("fetch:"+s.dataset, func() (interface{}, error) {
		logging.Info("Full dataset missing locally, downloading", "dataset", s.dataset, "dest", s.dataDir)
		start := time.Now()
		fetchErr := s.fetcher.DownloadAndExtract(ctx, s.dataset, s.dataDir)
		if s.metrics != nil && fetchErr == nil {
			s.metrics.DownloadDuration.Observe(time.Since(start).Seconds())
		}
		return nil, fetchErr
	})
	if err != nil {
		return "", fmt.Sprintf("Full dataset download failed: %v", err)
	}

	if path := s.findFullFile(); path != "" {
		return path, ""
	}
	return "", "No CSV file found in the data directory after extraction."
}

// findFullFile prefers the canonical file name, falling back to the first
// CSV that is not one of the summary tables.
func (s *Store) findFullFile() string {
	canonical := filepath.Join(s.dataDir, fullFileName)
	if _, err := os.Stat(canonical); err == nil {
		return canonical
	}

	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return ""
	}
	summary := make(map[string]bool, len(summaryTables))
	for _, name := range summaryTables {
		summary[name+".csv"] = true
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || summary[e.Name()] || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(s.dataDir, names[0])
}

// readFull reads the full record table with the row cap and derives the
// Route and DepHour columns. Missing delay-cause minutes become 0.
func (s *Store) readFull(path string) (dataframe.DataFrame, error) {
	types := map[string]series.Type{
		colMonth:       series.Int,
		colDepTime:     series.Float,
		colArrDelay:    series.Float,
		colDepDelay:    series.Float,
		colCancelled:   series.Int,
		colCarrierDly:  series.Float,
		colWeatherDly:  series.Float,
		colNASDly:      series.Float,
		colSecurityDly: series.Float,
		colLateDly:     series.Float,
	}
	df, err := readCSVFile(path, types, s.maxRows)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	if hasColumn(df, colOrigin) && hasColumn(df, colDest) {
		origins := df.Col(colOrigin).Records()
		dests := df.Col(colDest).Records()
		routes := make([]string, len(origins))
		for i := range origins {
			routes[i] = origins[i] + "-" + dests[i]
		}
		df = df.Mutate(series.New(routes, series.String, colRoute))
	}

	if hasColumn(df, colDepTime) {
		times := df.Col(colDepTime).Float()
		hours := make([]string, len(times))
		for i, v := range times {
			if math.IsNaN(v) {
				hours[i] = "NaN"
			} else {
				hours[i] = strconv.Itoa(int(v) / 100)
			}
		}
		df = df.Mutate(series.New(hours, series.Int, colDepHour))
	}

	for _, name := range delayCauseColumns {
		if !hasColumn(df, name) {
			continue
		}
		vals := df.Col(name).Float()
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = 0
			}
		}
		df = df.Mutate(series.New(vals, series.Float, name))
	}

	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}

// readCSVFile parses a CSV with gota. A maxRows of 0 means unbounded;
// otherwise at most maxRows data rows are read, bounding memory use.
func readCSVFile(path string, types map[string]series.Type, maxRows int) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteByte('\n')
		lines++
		if maxRows > 0 && lines > maxRows { // header plus maxRows rows
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("read %s: %w", path, err)
	}
	if lines == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("read %s: file is empty", path)
	}

	opts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DefaultType(series.String),
	}
	if types != nil {
		opts = append(opts, dataframe.WithTypes(types))
	}
	df := dataframe.ReadCSV(strings.NewReader(sb.String()), opts...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse %s: %w", path, df.Err)
	}
	return df, nil
}

func hasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
