package config

import (
	"os"
	"strconv"
)

// Config holds the runtime configuration for the dashboard, populated
// from environment variables with sensible defaults.
type Config struct {
	AppEnv      string // "development" or "production"
	ListenAddr  string // address for the HTTP server
	DataDir     string // directory holding the CSV inputs
	MaxRows     int    // row cap when reading the full record table
	EnableFetch bool   // allow a one-time remote dataset download

	// Remote dataset provider credentials (Kaggle API convention).
	KaggleUsername string
	KaggleKey      string
	KaggleDataset  string
}

const (
	defaultListenAddr = ":8080"
	defaultDataDir    = "data"
	defaultMaxRows    = 50000
	defaultDataset    = "giovamata/airlinedelaycauses"
)

// FromEnv builds a Config from the process environment.
func FromEnv() *Config {
	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		ListenAddr:     getEnv("AIRFLY_ADDR", defaultListenAddr),
		DataDir:        getEnv("AIRFLY_DATA_DIR", defaultDataDir),
		MaxRows:        getEnvInt("AIRFLY_MAX_ROWS", defaultMaxRows),
		KaggleUsername: os.Getenv("KAGGLE_USERNAME"),
		KaggleKey:      os.Getenv("KAGGLE_KEY"),
		KaggleDataset:  getEnv("AIRFLY_DATASET", defaultDataset),
	}
	cfg.EnableFetch = getEnvBool("AIRFLY_ENABLE_FETCH", false)
	return cfg
}

// HasCredentials reports whether both remote provider credentials are set.
func (c *Config) HasCredentials() bool {
	return c.KaggleUsername != "" && c.KaggleKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
