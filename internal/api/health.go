package api

import (
	"net/http"
	"os"
	"time"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/models/dtos"
)

// HealthCheckHandler handles GET /healthCheck
//
// Reports uptime, whether the data directory is readable, and which
// logical datasets are currently loaded.
func (h *Handlers) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if _, err := os.Stat(h.Store.DataDir()); err != nil {
		status = "degraded"
	}

	var tables []string
	if snap, err := h.Store.Load(r.Context()); err == nil {
		tables = snap.TableNames()
	} else {
		status = "degraded"
	}

	resp := dtos.HealthStatus{
		Status:  status,
		Uptime:  time.Since(h.UpSince).Round(time.Second).String(),
		DataDir: h.Store.DataDir(),
		Tables:  tables,
	}
	respondWithSuccess(w, http.StatusOK, &resp)
}
