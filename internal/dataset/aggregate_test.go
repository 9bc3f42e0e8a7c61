package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
)

func fullTableFromCSV(t *testing.T, csv string) dataframe.DataFrame {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "full.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	s := &Store{}
	df, err := s.readFull(path)
	if err != nil {
		t.Fatalf("Failed to read full table: %v", err)
	}
	return df
}

func summaryTableFromCSV(t *testing.T, csv string) dataframe.DataFrame {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	df, err := readCSVFile(path, nil, 0)
	if err != nil {
		t.Fatalf("Failed to read summary table: %v", err)
	}
	return df
}

// Three flights: two in January, one of them cancelled for weather.
func threeFlightSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	full := fullTableFromCSV(t, fullCSVHeader+"\n"+
		"JFK,LAX,AA,1,900,10,0,0,0,0,0,0,0,\n"+
		"JFK,LAX,AA,1,930,20,0,0,0,0,0,0,1,B\n"+
		"ORD,DFW,UA,2,1000,5,0,0,0,0,0,0,0,\n")
	return &Snapshot{Tables: map[string]dataframe.DataFrame{TableFull: full}}
}

func TestKPIs_EndToEndExample(t *testing.T) {
	src := NewSource(threeFlightSnapshot(t), 1)

	kpis := src.KPIs()
	if !kpis.Available {
		t.Fatalf("Expected KPIs to be available, got message %q", kpis.Message)
	}
	if kpis.TotalFlights != 2 {
		t.Errorf("Expected 2 flights in January, got %d", kpis.TotalFlights)
	}
	if kpis.AvgArrDelay != 15.0 {
		t.Errorf("Expected mean arrival delay 15.0, got %v", kpis.AvgArrDelay)
	}
	if kpis.CancellationRate != 50.0 {
		t.Errorf("Expected cancellation rate 50.0, got %v", kpis.CancellationRate)
	}

	reasons, res := src.CancellationReasons()
	if res != ResolutionComputed {
		t.Fatalf("Expected computed resolution, got %s", res)
	}
	if len(reasons) != 1 || reasons[0].Reason != "Weather" || reasons[0].Count != 1 {
		t.Errorf("Expected [Weather:1], got %v", reasons)
	}
}

func TestKPIs_EmptyFilterIsPlaceholderNotNaN(t *testing.T) {
	src := NewSource(threeFlightSnapshot(t), 11)

	kpis := src.KPIs()
	if kpis.Available {
		t.Error("Expected placeholder for a month with no flights")
	}
	if kpis.Message == "" {
		t.Error("Expected a placeholder message")
	}
}

func TestKPIs_NoFullTable(t *testing.T) {
	snap := &Snapshot{Tables: map[string]dataframe.DataFrame{}}
	src := NewSource(snap, MonthAll)

	kpis := src.KPIs()
	if kpis.Available {
		t.Error("Expected KPIs unavailable without the full table")
	}
}

func TestFilterMonth_AllIsNoOp(t *testing.T) {
	snap := threeFlightSnapshot(t)
	full := snap.Tables[TableFull]

	if got := FilterMonth(full, MonthAll).Nrow(); got != 3 {
		t.Errorf("Expected all 3 rows for the sentinel, got %d", got)
	}
	if got := FilterMonth(full, 2).Nrow(); got != 1 {
		t.Errorf("Expected 1 row for month 2, got %d", got)
	}
}

func TestMonthlyTrend_FilteredMonthsOnly(t *testing.T) {
	for month := 1; month <= 2; month++ {
		src := NewSource(threeFlightSnapshot(t), month)
		rows, res := src.MonthlyTrend()
		if res != ResolutionComputed {
			t.Fatalf("Expected computed resolution, got %s", res)
		}
		if len(rows) != 1 || rows[0].Month != month {
			t.Errorf("Month %d: expected only that month in the trend, got %v", month, rows)
		}
	}
}

func TestMonthlyTrend_PrecomputedPassesThroughUnmodified(t *testing.T) {
	monthly := summaryTableFromCSV(t, "Month,avg_arr_delay,cancellations\n1,12.5,3\n")
	snap := &Snapshot{Tables: map[string]dataframe.DataFrame{TableMonthly: monthly}}

	src := NewSource(snap, MonthAll)
	rows, res := src.MonthlyTrend()
	if res != ResolutionPrecomputed {
		t.Fatalf("Expected precomputed resolution, got %s", res)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Month != 1 || rows[0].AvgArrDelay != 12.5 || rows[0].Cancellations != 3 {
		t.Errorf("Precomputed monthly stats must pass through unmodified, got %+v", rows[0])
	}
}

func TestTopRoutes_LimitAndOrder(t *testing.T) {
	csv := fullCSVHeader + "\n"
	for i := 0; i < 20; i++ {
		// Route i appears i+1 times.
		for j := 0; j <= i; j++ {
			csv += fmt.Sprintf("A%02d,B%02d,AA,1,900,10,0,0,0,0,0,0,0,\n", i, i)
		}
	}
	full := fullTableFromCSV(t, csv)
	src := NewSource(&Snapshot{Tables: map[string]dataframe.DataFrame{TableFull: full}}, MonthAll)

	rows, res := src.TopRoutes()
	if res != ResolutionComputed {
		t.Fatalf("Expected computed resolution, got %s", res)
	}
	if len(rows) != 15 {
		t.Fatalf("Expected at most 15 rows, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Flights > rows[i-1].Flights {
			t.Errorf("Rows not sorted descending by flights at %d: %v > %v", i, rows[i].Flights, rows[i-1].Flights)
		}
	}
	if rows[0].Route != "A19-B19" || rows[0].Flights != 20 {
		t.Errorf("Expected busiest route A19-B19 with 20 flights, got %+v", rows[0])
	}
}

func TestTopRoutes_FewerGroupsThanLimit(t *testing.T) {
	src := NewSource(threeFlightSnapshot(t), MonthAll)
	rows, _ := src.TopRoutes()
	if len(rows) != 2 {
		t.Errorf("Expected 2 distinct routes, got %d", len(rows))
	}
}

func TestTopRoutes_PrecomputedPreferred(t *testing.T) {
	routeStats := summaryTableFromCSV(t, "Route,flights,avg_arr_delay\nSFO-SEA,500,8.25\nJFK-LAX,300,12.5\n")
	snap := threeFlightSnapshot(t)
	snap.Tables[TableRoutes] = routeStats

	src := NewSource(snap, MonthAll)
	rows, res := src.TopRoutes()
	if res != ResolutionPrecomputed {
		t.Fatalf("Expected precomputed resolution, got %s", res)
	}
	if rows[0].Route != "SFO-SEA" || rows[0].Flights != 500 {
		t.Errorf("Expected precomputed rows, got %+v", rows[0])
	}
}

func TestTopAirports_Computed(t *testing.T) {
	src := NewSource(threeFlightSnapshot(t), MonthAll)
	rows, res := src.TopAirports()
	if res != ResolutionComputed {
		t.Fatalf("Expected computed resolution, got %s", res)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 origin airports, got %d", len(rows))
	}
	if rows[0].Airport != "JFK" || rows[0].Departures != 2 {
		t.Errorf("Expected JFK with 2 departures first, got %+v", rows[0])
	}
}

func TestCancellationReasons_UnknownCodeGrouped(t *testing.T) {
	full := fullTableFromCSV(t, fullCSVHeader+"\n"+
		"JFK,LAX,AA,1,900,10,0,0,0,0,0,0,1,B\n"+
		"JFK,LAX,AA,1,905,10,0,0,0,0,0,0,1,Z\n"+
		"JFK,LAX,AA,1,910,10,0,0,0,0,0,0,1,\n")
	src := NewSource(&Snapshot{Tables: map[string]dataframe.DataFrame{TableFull: full}}, MonthAll)

	rows, res := src.CancellationReasons()
	if res != ResolutionComputed {
		t.Fatalf("Expected computed resolution, got %s", res)
	}
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Reason] = r.Count
	}
	if counts["Weather"] != 1 {
		t.Errorf("Expected 1 weather cancellation, got %d", counts["Weather"])
	}
	if counts[unknownReason] != 2 {
		t.Errorf("Expected 2 unknown-code cancellations, got %d", counts[unknownReason])
	}
}

func TestCancellationReasons_RequiresFullTable(t *testing.T) {
	monthly := summaryTableFromCSV(t, "Month,avg_arr_delay,cancellations\n1,12.5,3\n")
	snap := &Snapshot{Tables: map[string]dataframe.DataFrame{TableMonthly: monthly}}

	src := NewSource(snap, MonthAll)
	if _, res := src.CancellationReasons(); res != ResolutionUnavailable {
		t.Errorf("Expected unavailable without the full table, got %s", res)
	}
}

func TestCarrierDelays_LongFormShape(t *testing.T) {
	csv := fullCSVHeader + "\n"
	for i := 0; i < 10; i++ {
		csv += fmt.Sprintf("JFK,LAX,C%02d,1,900,10,0,%d,1,2,0,3,0,\n", i, i)
	}
	full := fullTableFromCSV(t, csv)
	src := NewSource(&Snapshot{Tables: map[string]dataframe.DataFrame{TableFull: full}}, MonthAll)

	rows, res := src.CarrierDelays()
	if res != ResolutionComputed {
		t.Fatalf("Expected computed resolution, got %s", res)
	}
	if len(rows) != 8*5 {
		t.Fatalf("Expected 8 carriers x 5 causes = 40 rows, got %d", len(rows))
	}
	// Highest mean CarrierDelay first.
	if rows[0].Carrier != "C09" || rows[0].Cause != "CarrierDelay" || rows[0].Minutes != 9 {
		t.Errorf("Unexpected first long-form row: %+v", rows[0])
	}
}

func TestCarrierDelays_PrecomputedWide(t *testing.T) {
	cd := summaryTableFromCSV(t, "UniqueCarrier,CarrierDelay,WeatherDelay,NASDelay,SecurityDelay,LateAircraftDelay\n"+
		"AA,10,1,2,0,5\nUA,20,2,3,0,6\nDL,5,1,1,0,2\n")
	snap := &Snapshot{Tables: map[string]dataframe.DataFrame{TableCarriers: cd}}

	src := NewSource(snap, MonthAll)
	rows, res := src.CarrierDelays()
	if res != ResolutionPrecomputed {
		t.Fatalf("Expected precomputed resolution, got %s", res)
	}
	if len(rows) != 3*5 {
		t.Fatalf("Expected 3 carriers x 5 causes = 15 rows, got %d", len(rows))
	}
	if rows[0].Carrier != "UA" {
		t.Errorf("Expected UA (highest CarrierDelay) first, got %s", rows[0].Carrier)
	}
}

func TestMonthOptions(t *testing.T) {
	monthly := summaryTableFromCSV(t, "Month,avg_arr_delay,cancellations\n3,1,0\n1,2,0\n3,3,0\n")
	snap := &Snapshot{Tables: map[string]dataframe.DataFrame{TableMonthly: monthly}}
	src := NewSource(snap, MonthAll)

	months := src.MonthOptions()
	if len(months) != 2 || months[0] != 1 || months[1] != 3 {
		t.Errorf("Expected sorted distinct months [1 3], got %v", months)
	}

	empty := NewSource(&Snapshot{Tables: map[string]dataframe.DataFrame{}}, MonthAll)
	if months := empty.MonthOptions(); len(months) != 12 {
		t.Errorf("Expected all 12 months without data, got %v", months)
	}
}
