package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/common"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/config"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/logging"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/providers"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.FromEnv()

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("AirFly Insights starting up",
		"environment", cfg.AppEnv,
		"data_dir", cfg.DataDir,
		"max_rows", cfg.MaxRows,
		"remote_fetch", cfg.EnableFetch,
	)

	// Loaded tables live here until the data dir changes or a refresh
	cacheSvc := common.NewCacheService(0, 600)

	var fetcher dataset.Fetcher
	if cfg.EnableFetch {
		if !cfg.HasCredentials() {
			logging.Warn("Remote fetch enabled but KAGGLE_USERNAME/KAGGLE_KEY are not set; running from local files only")
		} else {
			fetcher = providers.NewKaggleProvider()
		}
	}

	store := dataset.NewStore(cfg, cacheSvc, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if closeWatch, err := dataset.WatchDataDir(ctx, store); err != nil {
		logging.Warn("Data directory watch unavailable", "dir", cfg.DataDir, "error", err.Error())
	} else {
		defer closeWatch()
	}

	upSince := time.Now()

	// Initialize router with Chi
	// Note: metricsReg is created in RegisterRoutes and applied as global middleware
	router := routes.RegisterRoutes(store, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router) // Mount Chi router at root
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	logging.Info("Server starting",
		"addr", cfg.ListenAddr,
		"environment", cfg.AppEnv,
	)

	log.Printf("Starting server on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, mux))
}
