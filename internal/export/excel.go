package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Yuthish27/DV-AirFly-Insights-Yuthish/internal/dataset"
)

// Workbook writes the five aggregate tables to one xlsx workbook, a sheet
// per chart. Unavailable aggregations get a single informational cell so
// the workbook mirrors the dashboard's degraded widgets.
func Workbook(src *dataset.Source, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRoutes(f, src); err != nil {
		return err
	}
	if err := writeAirports(f, src); err != nil {
		return err
	}
	if err := writeMonthly(f, src); err != nil {
		return err
	}
	if err := writeCancellations(f, src); err != nil {
		return err
	}
	if err := writeCarriers(f, src); err != nil {
		return err
	}

	// The default sheet is replaced by the first chart sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	return f.Write(w)
}

func writeRoutes(f *excelize.File, src *dataset.Source) error {
	rows, res := src.TopRoutes()
	sheet := "Top Routes"
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	if res == dataset.ResolutionUnavailable {
		return unavailableSheet(f, sheet)
	}
	if err := setRow(f, sheet, 1, "Route", "Flights", "Avg Arr Delay"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r.Route, r.Flights, r.AvgArrDelay); err != nil {
			return err
		}
	}
	return nil
}

func writeAirports(f *excelize.File, src *dataset.Source) error {
	rows, res := src.TopAirports()
	sheet := "Top Airports"
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	if res == dataset.ResolutionUnavailable {
		return unavailableSheet(f, sheet)
	}
	if err := setRow(f, sheet, 1, "Airport", "Departures", "Avg Arr Delay"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r.Airport, r.Departures, r.AvgArrDelay); err != nil {
			return err
		}
	}
	return nil
}

func writeMonthly(f *excelize.File, src *dataset.Source) error {
	rows, res := src.MonthlyTrend()
	sheet := "Monthly Trend"
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	if res == dataset.ResolutionUnavailable {
		return unavailableSheet(f, sheet)
	}
	if err := setRow(f, sheet, 1, "Month", "Avg Arr Delay", "Cancellations"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r.Month, r.AvgArrDelay, r.Cancellations); err != nil {
			return err
		}
	}
	return nil
}

func writeCancellations(f *excelize.File, src *dataset.Source) error {
	rows, res := src.CancellationReasons()
	sheet := "Cancellation Reasons"
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	if res == dataset.ResolutionUnavailable {
		return unavailableSheet(f, sheet)
	}
	if err := setRow(f, sheet, 1, "Reason", "Count"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r.Reason, r.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeCarriers(f *excelize.File, src *dataset.Source) error {
	rows, res := src.CarrierDelays()
	sheet := "Carrier Delay Causes"
	if err := newSheet(f, sheet); err != nil {
		return err
	}
	if res == dataset.ResolutionUnavailable {
		return unavailableSheet(f, sheet)
	}
	if err := setRow(f, sheet, 1, "Carrier", "Cause", "Minutes"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r.Carrier, r.Cause, r.Minutes); err != nil {
			return err
		}
	}
	return nil
}

func newSheet(f *excelize.File, name string) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	return nil
}

func unavailableSheet(f *excelize.File, name string) error {
	return f.SetCellValue(name, "A1", "No data source available for this chart")
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
