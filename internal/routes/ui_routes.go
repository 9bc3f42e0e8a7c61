package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/ui"
)

// RegisterUIRoutes registers the dashboard pages and HTMX partials
func RegisterUIRoutes(r chi.Router, store *dataset.Store) {
	uiHandler := ui.NewUIHandler(store)

	// Default route - the dashboard is the whole app
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusMovedPermanently)
	})

	r.Get("/dashboard", uiHandler.DashboardHandler)
	r.Get("/dashboard/partial", uiHandler.DashboardPartialHandler)
	r.Post("/ui/theme", uiHandler.SetThemeHandler)
}
