package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
)

func csvTable(t *testing.T, csv string) dataframe.DataFrame {
	t.Helper()
	df := dataframe.ReadCSV(strings.NewReader(csv))
	if df.Err != nil {
		t.Fatalf("Failed to parse test CSV: %v", df.Err)
	}
	return df
}

func TestWorkbook_SummaryTables(t *testing.T) {
	snap := &dataset.Snapshot{Tables: map[string]dataframe.DataFrame{
		dataset.TableRoutes:   csvTable(t, "Route,flights,avg_arr_delay\nJFK-LAX,100,12.5\nORD-DFW,80,9.75\n"),
		dataset.TableAirports: csvTable(t, "Origin,departures,avg_arr_delay\nJFK,150,11.2\n"),
		dataset.TableMonthly:  csvTable(t, "Month,avg_arr_delay,cancellations\n1,12.5,3\n2,8.0,1\n"),
		dataset.TableCarriers: csvTable(t, "UniqueCarrier,CarrierDelay,WeatherDelay,NASDelay,SecurityDelay,LateAircraftDelay\nAA,10,1,2,0,5\n"),
	}}
	src := dataset.NewSource(snap, dataset.MonthAll)

	var buf bytes.Buffer
	if err := Workbook(src, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Top Routes", "Top Airports", "Monthly Trend", "Cancellation Reasons", "Carrier Delay Causes"}
	sheets := f.GetSheetList()
	if len(sheets) != len(want) {
		t.Fatalf("Expected %d sheets, got %v", len(want), sheets)
	}
	for _, name := range want {
		if idx, _ := f.GetSheetIndex(name); idx < 0 {
			t.Errorf("Missing sheet %q", name)
		}
	}

	if cell, _ := f.GetCellValue("Top Routes", "A2"); cell != "JFK-LAX" {
		t.Errorf("Expected JFK-LAX in A2, got %q", cell)
	}
	if cell, _ := f.GetCellValue("Top Routes", "B2"); cell != "100" {
		t.Errorf("Expected 100 flights in B2, got %q", cell)
	}
	if cell, _ := f.GetCellValue("Monthly Trend", "A1"); cell != "Month" {
		t.Errorf("Expected Month header, got %q", cell)
	}
	if cell, _ := f.GetCellValue("Carrier Delay Causes", "B2"); cell != "CarrierDelay" {
		t.Errorf("Expected CarrierDelay cause in B2, got %q", cell)
	}

	// No full table, so the cancellations sheet carries the info cell.
	if cell, _ := f.GetCellValue("Cancellation Reasons", "A1"); !strings.Contains(cell, "No data source") {
		t.Errorf("Expected unavailable note, got %q", cell)
	}
}

func TestWorkbook_EmptySnapshot(t *testing.T) {
	snap := &dataset.Snapshot{Tables: map[string]dataframe.DataFrame{}}
	src := dataset.NewSource(snap, dataset.MonthAll)

	var buf bytes.Buffer
	if err := Workbook(src, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Failed to reopen workbook: %v", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		cell, _ := f.GetCellValue(name, "A1")
		if !strings.Contains(cell, "No data source") {
			t.Errorf("Sheet %q: expected unavailable note, got %q", name, cell)
		}
	}
}
