package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/metrics"
)

// Handlers bundles the dependencies the dashboard API needs.
type Handlers struct {
	Store   *dataset.Store
	Metrics *metrics.MetricsRegistry
	UpSince time.Time
}

// NewHandlers creates the API handler set.
func NewHandlers(store *dataset.Store, metricsReg *metrics.MetricsRegistry, upSince time.Time) *Handlers {
	return &Handlers{
		Store:   store,
		Metrics: metricsReg,
		UpSince: upSince,
	}
}

// parseMonth reads the month selector from the query string. Missing, empty
// or "All" means the no-filter sentinel.
func parseMonth(r *http.Request) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("month"))
	if raw == "" || strings.EqualFold(raw, "all") {
		return dataset.MonthAll, true
	}
	m, err := strconv.Atoi(raw)
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return m, true
}

// source loads the cached snapshot and builds a per-request aggregation
// source for the selected month.
func (h *Handlers) source(w http.ResponseWriter, r *http.Request) (*dataset.Source, bool) {
	month, ok := parseMonth(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "month must be \"All\" or an integer between 1 and 12")
		return nil, false
	}
	snap, err := h.Store.Load(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load datasets: "+err.Error())
		return nil, false
	}
	return dataset.NewSource(snap, month), true
}

func (h *Handlers) countAggregation(chart string, res dataset.Resolution) {
	if h.Metrics != nil {
		h.Metrics.AggregationsTotal.WithLabelValues(chart, string(res)).Inc()
	}
}
