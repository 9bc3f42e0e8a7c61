package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/api"
)

// RegisterAPIRoutes registers the JSON API under /api/v1
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers) {
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/kpis", handlers.KPIsHandler)

		v1.Route("/charts", func(charts chi.Router) {
			charts.Get("/routes", handlers.TopRoutesHandler)
			charts.Get("/airports", handlers.TopAirportsHandler)
			charts.Get("/monthly", handlers.MonthlyTrendHandler)
			charts.Get("/cancellations", handlers.CancellationReasonsHandler)
			charts.Get("/carrier-delays", handlers.CarrierDelaysHandler)
		})

		v1.Get("/export", handlers.ExportHandler)
		v1.Post("/refresh", handlers.RefreshHandler)
	})
}
