package dtos

// KPISet carries the three headline metrics for the selected month.
// Available is false when the full record table is not loaded or the
// filtered table is empty; the UI shows a placeholder in that case.
type KPISet struct {
	Available        bool    `json:"available"`
	Message          string  `json:"message,omitempty"`
	TotalFlights     int     `json:"total_flights"`
	AvgArrDelay      float64 `json:"avg_arr_delay"`
	CancellationRate float64 `json:"cancellation_rate"`
}

// RouteStat is one row of the top-routes chart.
type RouteStat struct {
	Route       string  `json:"route"`
	Flights     int     `json:"flights"`
	AvgArrDelay float64 `json:"avg_arr_delay"`
}

// AirportStat is one row of the busiest-origin-airports chart.
type AirportStat struct {
	Airport     string  `json:"airport"`
	Departures  int     `json:"departures"`
	AvgArrDelay float64 `json:"avg_arr_delay"`
}

// MonthlyStat is one point of the monthly trend line, ordered by Month.
type MonthlyStat struct {
	Month         int     `json:"month"`
	AvgArrDelay   float64 `json:"avg_arr_delay"`
	Cancellations int     `json:"cancellations"`
}

// CancellationReason is one row of the cancellation-reasons chart.
type CancellationReason struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// CarrierCause is one row of the long-form carrier delay breakdown:
// one row per carrier and cause pair.
type CarrierCause struct {
	Carrier string  `json:"carrier"`
	Cause   string  `json:"cause"`
	Minutes float64 `json:"minutes"`
}

// ChartPayload wraps a chart dataset together with its degraded state.
type ChartPayload[T any] struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
	Rows      []T    `json:"rows"`
}

// HealthStatus reports server state and which logical datasets are loaded.
type HealthStatus struct {
	Status  string   `json:"status"`
	Uptime  string   `json:"uptime"`
	DataDir string   `json:"data_dir"`
	Tables  []string `json:"tables"`
}
