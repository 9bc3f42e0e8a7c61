package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/api"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/logging"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/metrics"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/middleware"
)

// RegisterRoutes wires the middleware stack, the dashboard UI and the JSON
// API onto one chi router.
func RegisterRoutes(store *dataset.Store, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()
	store.SetMetrics(metricsReg)

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	handlers := api.NewHandlers(store, metricsReg, upSince)

	// health check
	r.Get("/healthCheck", handlers.HealthCheckHandler)

	RegisterUIRoutes(r, store)
	RegisterAPIRoutes(r, handlers)

	return r
}
