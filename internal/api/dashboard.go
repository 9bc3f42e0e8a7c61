package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/export"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/logging"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/models/dtos"
)

const noSummaryMessage = "No data source available for this chart. Add the summary CSVs or the full dataset to the data directory."

// KPIsHandler handles GET /api/v1/kpis
//
// Returns the three headline metrics for the selected month, or a
// placeholder when the full table is missing or the filter matches nothing.
func (h *Handlers) KPIsHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(w, r)
	if !ok {
		return
	}
	kpis := src.KPIs()
	respondWithSuccess(w, http.StatusOK, &kpis)
}

// TopRoutesHandler handles GET /api/v1/charts/routes
func (h *Handlers) TopRoutesHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(w, r)
	if !ok {
		return
	}
	rows, res := src.TopRoutes()
	h.countAggregation("routes", res)
	payload := chartPayload(rows, res, noSummaryMessage)
	respondWithSuccess(w, http.StatusOK, &payload)
}

// TopAirportsHandler handles GET /api/v1/charts/airports
func (h *Handlers) TopAirportsHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(w, r)
	if !ok {
		return
	}
	rows, res := src.TopAirports()
	h.countAggregation("airports", res)
	payload := chartPayload(rows, res, noSummaryMessage)
	respondWithSuccess(w, http.StatusOK, &payload)
}

// MonthlyTrendHandler handles GET /api/v1/charts/monthly
func (h *Handlers) MonthlyTrendHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(w, r)
	if !ok {
		return
	}
	rows, res := src.MonthlyTrend()
	h.countAggregation("monthly", res)
	payload := chartPayload(rows, res, noSummaryMessage)
	respondWithSuccess(w, http.StatusOK, &payload)
}

// CancellationReasonsHandler handles GET /api/v1/charts/cancellations
//
// Full-table only; there is no precomputed fallback for this chart.
func (h *Handlers) CancellationReasonsHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(w, r)
	if !ok {
		return
	}
	rows, res := src.CancellationReasons()
	h.countAggregation("cancellations", res)
	payload := chartPayload(rows, res, src.FullNote())
	respondWithSuccess(w, http.StatusOK, &payload)
}

// CarrierDelaysHandler handles GET /api/v1/charts/carrier-delays
func (h *Handlers) CarrierDelaysHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(w, r)
	if !ok {
		return
	}
	rows, res := src.CarrierDelays()
	h.countAggregation("carrier_delays", res)
	payload := chartPayload(rows, res, noSummaryMessage)
	respondWithSuccess(w, http.StatusOK, &payload)
}

// ExportHandler handles GET /api/v1/export
//
// Streams the five aggregate tables for the selected month as an xlsx
// workbook, one sheet per chart.
func (h *Handlers) ExportHandler(w http.ResponseWriter, r *http.Request) {
	src, ok := h.source(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("airfly_insights_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.Workbook(src, w); err != nil {
		// Headers are out; all that is left is to log it.
		logging.Error("Failed to write export workbook", "error", err.Error())
	}
}

// RefreshHandler handles POST /api/v1/refresh
//
// Drops the cached table mapping so the next request re-reads disk.
func (h *Handlers) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	h.Store.Invalidate()
	logging.Info("Dataset cache invalidated via API")
	msg := map[string]string{"message": "dataset cache invalidated"}
	respondWithSuccess(w, http.StatusOK, &msg)
}

func chartPayload[T any](rows []T, res dataset.Resolution, unavailableMsg string) dtos.ChartPayload[T] {
	if res == dataset.ResolutionUnavailable {
		return dtos.ChartPayload[T]{Available: false, Message: unavailableMsg, Rows: []T{}}
	}
	if rows == nil {
		rows = []T{}
	}
	return dtos.ChartPayload[T]{Available: true, Rows: rows}
}
