package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for AirFly Insights
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Dataset Metrics
	DatasetRowsLoaded   prometheus.GaugeVec
	DatasetLoadDuration prometheus.HistogramVec
	DownloadDuration    prometheus.Histogram
	AggregationsTotal   prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airfly_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airfly_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airfly_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airfly_cache_hits_total",
				Help: "Total loader cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airfly_cache_misses_total",
				Help: "Total loader cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		DatasetRowsLoaded: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "airfly_dataset_rows_loaded",
				Help: "Rows currently held in memory per logical dataset",
			},
			[]string{"dataset"},
		),
		DatasetLoadDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "airfly_dataset_load_duration_seconds",
				Help:    "Time spent reading a dataset from disk in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"dataset"},
		),
		DownloadDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "airfly_dataset_download_duration_seconds",
				Help:    "Remote dataset download-and-extract time in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
		AggregationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "airfly_aggregations_total",
				Help: "Aggregations served, by chart and resolution (precomputed or computed)",
			},
			[]string{"chart", "resolution"},
		),
	}
}
