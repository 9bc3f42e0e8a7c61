package dataset

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/models/dtos"
)

// Resolution says where a chart dataset came from.
type Resolution string

const (
	ResolutionPrecomputed Resolution = "precomputed"
	ResolutionComputed    Resolution = "computed"
	ResolutionUnavailable Resolution = "unavailable"
)

const (
	topRouteLimit   = 15
	topAirportLimit = 15
	topCarrierLimit = 8
)

// cancellationReasons maps the single-letter cancellation codes to labels.
var cancellationReasons = map[string]string{
	"A": "Carrier",
	"B": "Weather",
	"C": "NAS",
	"D": "Security",
}

// unknownReason groups rows whose cancellation code is missing or unmapped.
const unknownReason = "Unknown"

// Source resolves each aggregation once per request: use the precomputed
// summary table when present, else compute from the month-filtered full
// table. Aggregations are pure; inputs are never mutated.
type Source struct {
	snap    *Snapshot
	month   int
	full    dataframe.DataFrame
	hasFull bool
}

// NewSource builds a Source for one render of the dashboard. The month
// filter is applied to the full table exactly once, here.
func NewSource(snap *Snapshot, month int) *Source {
	src := &Source{snap: snap, month: month}
	if full, ok := snap.Tables[TableFull]; ok {
		src.full = FilterMonth(full, month)
		src.hasFull = true
	}
	return src
}

// Month returns the month selector this source was built with.
func (s *Source) Month() int {
	return s.month
}

// FullNote returns the user-visible reason the full table is missing.
func (s *Source) FullNote() string {
	if s.hasFull {
		return ""
	}
	if s.snap.FullNote != "" {
		return s.snap.FullNote
	}
	return "Full dataset required. Place " + fullFileName + " in the data directory."
}

// KPIs computes the three headline metrics from the filtered full table.
// A missing full table or an empty filter result degrades to a placeholder.
func (s *Source) KPIs() dtos.KPISet {
	if !s.hasFull {
		return dtos.KPISet{Available: false, Message: s.FullNote()}
	}
	n := s.full.Nrow()
	if n == 0 {
		return dtos.KPISet{Available: false, Message: "No flights match the selected month."}
	}
	avgDelay := meanSkipNaN(floatColumn(s.full, colArrDelay))
	rate := meanSkipNaN(floatColumn(s.full, colCancelled)) * 100
	return dtos.KPISet{
		Available:        true,
		TotalFlights:     n,
		AvgArrDelay:      round2(nanToZero(avgDelay)),
		CancellationRate: round2(nanToZero(rate)),
	}
}

// TopRoutes returns at most 15 routes by flight count, descending.
func (s *Source) TopRoutes() ([]dtos.RouteStat, Resolution) {
	if rt, ok := s.snap.Tables[TableRoutes]; ok {
		rows := make([]dtos.RouteStat, 0, rt.Nrow())
		keys := stringColumn(rt, colRoute)
		flights := floatColumn(rt, "flights")
		delays := floatColumn(rt, "avg_arr_delay")
		for i := range keys {
			rows = append(rows, dtos.RouteStat{
				Route:       keys[i],
				Flights:     int(flights[i]),
				AvgArrDelay: round2(nanToZero(delays[i])),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Flights > rows[j].Flights })
		return truncRoutes(rows, topRouteLimit), ResolutionPrecomputed
	}
	if s.hasFull {
		groups := groupCountMean(s.full, colRoute, colArrDelay)
		rows := make([]dtos.RouteStat, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, dtos.RouteStat{
				Route:       g.key,
				Flights:     g.count,
				AvgArrDelay: round2(nanToZero(g.mean())),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Flights > rows[j].Flights })
		return truncRoutes(rows, topRouteLimit), ResolutionComputed
	}
	return nil, ResolutionUnavailable
}

// TopAirports returns at most 15 origin airports by departures, descending.
func (s *Source) TopAirports() ([]dtos.AirportStat, Resolution) {
	if ap, ok := s.snap.Tables[TableAirports]; ok {
		rows := make([]dtos.AirportStat, 0, ap.Nrow())
		keys := stringColumn(ap, colOrigin)
		departures := floatColumn(ap, "departures")
		delays := floatColumn(ap, "avg_arr_delay")
		for i := range keys {
			rows = append(rows, dtos.AirportStat{
				Airport:     keys[i],
				Departures:  int(departures[i]),
				AvgArrDelay: round2(nanToZero(delays[i])),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Departures > rows[j].Departures })
		return truncAirports(rows, topAirportLimit), ResolutionPrecomputed
	}
	if s.hasFull {
		groups := groupCountMean(s.full, colOrigin, colArrDelay)
		rows := make([]dtos.AirportStat, 0, len(groups))
		for _, g := range groups {
			rows = append(rows, dtos.AirportStat{
				Airport:     g.key,
				Departures:  g.count,
				AvgArrDelay: round2(nanToZero(g.mean())),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Departures > rows[j].Departures })
		return truncAirports(rows, topAirportLimit), ResolutionComputed
	}
	return nil, ResolutionUnavailable
}

// MonthlyTrend returns mean arrival delay and cancellation count per month,
// ordered by month ascending for the line chart.
func (s *Source) MonthlyTrend() ([]dtos.MonthlyStat, Resolution) {
	if m, ok := s.snap.Tables[TableMonthly]; ok {
		months := floatColumn(m, colMonth)
		delays := floatColumn(m, "avg_arr_delay")
		cancels := floatColumn(m, "cancellations")
		rows := make([]dtos.MonthlyStat, 0, len(months))
		for i := range months {
			if math.IsNaN(months[i]) {
				continue
			}
			rows = append(rows, dtos.MonthlyStat{
				Month:         int(months[i]),
				AvgArrDelay:   round2(nanToZero(delays[i])),
				Cancellations: int(nanToZero(cancels[i])),
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
		return rows, ResolutionPrecomputed
	}
	if s.hasFull {
		months := floatColumn(s.full, colMonth)
		delays := floatColumn(s.full, colArrDelay)
		cancels := floatColumn(s.full, colCancelled)

		type acc struct {
			sum, n  float64
			cancels int
		}
		byMonth := make(map[int]*acc)
		for i := range months {
			if math.IsNaN(months[i]) {
				continue
			}
			m := int(months[i])
			a := byMonth[m]
			if a == nil {
				a = &acc{}
				byMonth[m] = a
			}
			if i < len(delays) && !math.IsNaN(delays[i]) {
				a.sum += delays[i]
				a.n++
			}
			if i < len(cancels) && !math.IsNaN(cancels[i]) {
				a.cancels += int(cancels[i])
			}
		}
		rows := make([]dtos.MonthlyStat, 0, len(byMonth))
		for m, a := range byMonth {
			avg := 0.0
			if a.n > 0 {
				avg = a.sum / a.n
			}
			rows = append(rows, dtos.MonthlyStat{
				Month:         m,
				AvgArrDelay:   round2(avg),
				Cancellations: a.cancels,
			})
		}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
		return rows, ResolutionComputed
	}
	return nil, ResolutionUnavailable
}

// CancellationReasons counts cancelled flights per mapped reason. Only the
// full table can answer this; there is no precomputed fallback.
func (s *Source) CancellationReasons() ([]dtos.CancellationReason, Resolution) {
	if !s.hasFull || !hasColumn(s.full, colCancelled) {
		return nil, ResolutionUnavailable
	}
	cancelled := s.full.Filter(dataframe.F{
		Colname:    colCancelled,
		Comparator: series.Eq,
		Comparando: 1,
	})
	if cancelled.Err != nil || cancelled.Nrow() == 0 {
		return []dtos.CancellationReason{}, ResolutionComputed
	}

	codes := stringColumn(cancelled, colCancelCode)
	counts := make(map[string]int)
	var order []string
	for _, code := range codes {
		reason, ok := cancellationReasons[code]
		if !ok {
			reason = unknownReason
		}
		if _, seen := counts[reason]; !seen {
			order = append(order, reason)
		}
		counts[reason]++
	}
	rows := make([]dtos.CancellationReason, 0, len(order))
	for _, reason := range order {
		rows = append(rows, dtos.CancellationReason{Reason: reason, Count: counts[reason]})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	return rows, ResolutionComputed
}

// CarrierDelays returns the per-carrier mean of the five delay-cause
// columns, reshaped wide-to-long for the grouped bar chart: the 8 carriers
// with the highest mean CarrierDelay, five rows each.
func (s *Source) CarrierDelays() ([]dtos.CarrierCause, Resolution) {
	type carrierRow struct {
		carrier string
		means   []float64
	}
	var wide []carrierRow
	res := ResolutionUnavailable

	if cd, ok := s.snap.Tables[TableCarriers]; ok {
		carriers := stringColumn(cd, colCarrier)
		cols := make([][]float64, len(delayCauseColumns))
		for ci, name := range delayCauseColumns {
			cols[ci] = floatColumn(cd, name)
		}
		for i, carrier := range carriers {
			means := make([]float64, len(delayCauseColumns))
			for ci := range delayCauseColumns {
				if i < len(cols[ci]) {
					means[ci] = nanToZero(cols[ci][i])
				}
			}
			wide = append(wide, carrierRow{carrier: carrier, means: means})
		}
		res = ResolutionPrecomputed
	} else if s.hasFull {
		groups := groupMeans(s.full, colCarrier, delayCauseColumns)
		for _, g := range groups {
			wide = append(wide, carrierRow{carrier: g.key, means: g.means()})
		}
		res = ResolutionComputed
	}
	if res == ResolutionUnavailable {
		return nil, res
	}

	// CarrierDelay is the first cause column; rank by its mean.
	sort.SliceStable(wide, func(i, j int) bool { return wide[i].means[0] > wide[j].means[0] })
	if len(wide) > topCarrierLimit {
		wide = wide[:topCarrierLimit]
	}

	rows := make([]dtos.CarrierCause, 0, len(wide)*len(delayCauseColumns))
	for _, cr := range wide {
		for ci, cause := range delayCauseColumns {
			rows = append(rows, dtos.CarrierCause{
				Carrier: cr.carrier,
				Cause:   cause,
				Minutes: round2(cr.means[ci]),
			})
		}
	}
	return rows, res
}

// MonthOptions lists the months offered by the dashboard dropdown: the
// months present in monthly_stats when available, else the months present
// in the full table, else all twelve.
func (s *Source) MonthOptions() []int {
	if m, ok := s.snap.Tables[TableMonthly]; ok {
		return distinctMonths(floatColumn(m, colMonth))
	}
	if full, ok := s.snap.Tables[TableFull]; ok {
		return distinctMonths(floatColumn(full, colMonth))
	}
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

func distinctMonths(vals []float64) []int {
	seen := make(map[int]bool)
	var months []int
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		m := int(v)
		if m < 1 || m > 12 || seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// ---- grouping helpers ----

type countMeanAgg struct {
	key   string
	count int
	sum   float64
	n     float64
}

func (a countMeanAgg) mean() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.sum / a.n
}

// groupCountMean partitions rows by keyCol and accumulates a row count and
// the mean of valCol (NaN values skipped). First-seen group order is kept
// so ties later resolve in stable-sort order.
func groupCountMean(df dataframe.DataFrame, keyCol, valCol string) []countMeanAgg {
	keys := stringColumn(df, keyCol)
	vals := floatColumn(df, valCol)
	index := make(map[string]int)
	var groups []countMeanAgg
	for i, key := range keys {
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, countMeanAgg{key: key})
		}
		groups[gi].count++
		if i < len(vals) && !math.IsNaN(vals[i]) {
			groups[gi].sum += vals[i]
			groups[gi].n++
		}
	}
	return groups
}

type multiMeanAgg struct {
	key  string
	sums []float64
	n    float64
}

func (a multiMeanAgg) means() []float64 {
	out := make([]float64, len(a.sums))
	for i, sum := range a.sums {
		if a.n > 0 {
			out[i] = sum / a.n
		}
	}
	return out
}

// groupMeans partitions rows by keyCol and averages each of valCols per
// group. Delay-cause columns are zero-coerced at load, so plain means are
// exact here.
func groupMeans(df dataframe.DataFrame, keyCol string, valCols []string) []multiMeanAgg {
	keys := stringColumn(df, keyCol)
	cols := make([][]float64, len(valCols))
	for i, name := range valCols {
		cols[i] = floatColumn(df, name)
	}
	index := make(map[string]int)
	var groups []multiMeanAgg
	for i, key := range keys {
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, multiMeanAgg{key: key, sums: make([]float64, len(valCols))})
		}
		for ci := range valCols {
			if i < len(cols[ci]) && !math.IsNaN(cols[ci][i]) {
				groups[gi].sums[ci] += cols[ci][i]
			}
		}
		groups[gi].n++
	}
	return groups
}

// ---- column and math helpers ----

func stringColumn(df dataframe.DataFrame, name string) []string {
	if !hasColumn(df, name) {
		return make([]string, df.Nrow())
	}
	return df.Col(name).Records()
}

func floatColumn(df dataframe.DataFrame, name string) []float64 {
	if !hasColumn(df, name) {
		vals := make([]float64, df.Nrow())
		for i := range vals {
			vals[i] = math.NaN()
		}
		return vals
	}
	return df.Col(name).Float()
}

func meanSkipNaN(vals []float64) float64 {
	sum, n := 0.0, 0.0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func truncRoutes(rows []dtos.RouteStat, limit int) []dtos.RouteStat {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func truncAirports(rows []dtos.AirportStat, limit int) []dtos.AirportStat {
	if len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
