package ui

import (
	"net/http"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
)

// UIHandler manages all UI routes
type UIHandler struct {
	store *dataset.Store
}

// NewUIHandler creates a new UI handler
func NewUIHandler(store *dataset.Store) *UIHandler {
	return &UIHandler{store: store}
}

// DashboardHandler renders the full dashboard page
func (h *UIHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.loadSource(w, r)
	if !ok {
		return
	}

	content, err := dashboardPage(src)
	if err != nil {
		http.Error(w, "Error building dashboard: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := map[string]interface{}{
		"Title":   "AirFly Insights",
		"Content": content,
		"Theme":   getThemeFromRequest(r),
	}
	RenderTemplate(w, data)
}

// DashboardPartialHandler re-renders the KPI cards and charts for the
// selected month (HTMX swap target)
func (h *UIHandler) DashboardPartialHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.loadSource(w, r)
	if !ok {
		return
	}

	content, err := dashboardContent(src)
	if err != nil {
		http.Error(w, "Error building dashboard: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(content))
}

// SetThemeHandler handles theme changes via POST request
func (h *UIHandler) SetThemeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	theme := r.FormValue("theme")
	if theme != "dark" {
		theme = "light"
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "theme_preference",
		Value:    theme,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success": true, "theme": "` + theme + `"}`))
}

func (h *UIHandler) loadSource(w http.ResponseWriter, r *http.Request) (*dataset.Source, bool) {
	month := monthFromQuery(r)
	snap, err := h.store.Load(r.Context())
	if err != nil {
		http.Error(w, "Error loading datasets: "+err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return dataset.NewSource(snap, month), true
}
