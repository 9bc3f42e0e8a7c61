package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/common"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/config"
	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
)

// RegisterRoutes registers Prometheus collectors on the default registry,
// so it must run exactly once in this test binary.
func TestRegisterRoutes(t *testing.T) {
	dir := t.TempDir()
	csv := "Route,flights,avg_arr_delay\nJFK-LAX,100,12.5\n"
	if err := os.WriteFile(filepath.Join(dir, "route_stats.csv"), []byte(csv), 0o644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	cfg := &config.Config{DataDir: dir, MaxRows: 1000}
	store := dataset.NewStore(cfg, common.NewCacheService(60, 0), nil)

	router := RegisterRoutes(store, time.Now())

	cases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/healthCheck", http.StatusOK},
		{"GET", "/", http.StatusMovedPermanently},
		{"GET", "/dashboard", http.StatusOK},
		{"GET", "/dashboard/partial?month=1", http.StatusOK},
		{"GET", "/api/v1/kpis", http.StatusOK},
		{"GET", "/api/v1/charts/routes", http.StatusOK},
		{"GET", "/api/v1/charts/airports", http.StatusOK},
		{"GET", "/api/v1/charts/monthly", http.StatusOK},
		{"GET", "/api/v1/charts/cancellations", http.StatusOK},
		{"GET", "/api/v1/charts/carrier-delays", http.StatusOK},
		{"GET", "/api/v1/export", http.StatusOK},
		{"POST", "/api/v1/refresh", http.StatusOK},
		{"GET", "/api/v1/kpis?month=99", http.StatusBadRequest},
		{"GET", "/no-such-page", http.StatusNotFound},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != tc.status {
			t.Errorf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, rec.Code)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Errorf("%s %s: expected a request ID header", tc.method, tc.path)
		}
	}

	// JSON endpoints use the standard envelope.
	req := httptest.NewRequest("GET", "/api/v1/charts/routes", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode envelope: %v", err)
	}
	if envelope["status"] != "success" {
		t.Errorf("Unexpected envelope status: %v", envelope["status"])
	}
}
