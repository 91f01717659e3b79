package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// Workbook sheet names.
const (
	SheetCutList = "Cut List"
	SheetSummary = "Summary"
)

// ExportXLSX writes a workbook with one row per placed or unplaced item on
// the cut list sheet and the overall totals on the summary sheet.
func ExportXLSX(path string, results []model.MaterialResult, u units.Unit) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetCutList); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	if err := writeRows(f, SheetCutList, cutListRows(results, u)); err != nil {
		return err
	}
	if err := writeRows(f, SheetSummary, summaryRows(results, u)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func cutListRows(results []model.MaterialResult, u units.Unit) [][]interface{} {
	rows := [][]interface{}{{
		"Material", "Bin", "Stock", "Part",
		fmt.Sprintf("Length (%s)", u), fmt.Sprintf("Width (%s)", u),
		fmt.Sprintf("X (%s)", u), fmt.Sprintf("Y (%s)", u), "Rotated",
	}}
	for _, ref := range flattenBins(results) {
		for _, it := range ref.Bin.Items {
			rows = append(rows, []interface{}{
				ref.Material, ref.Index, ref.Bin.Stock.Name, it.Name,
				units.FromMM(it.W, u), units.FromMM(it.H, u),
				units.FromMM(it.X, u), units.FromMM(it.Y, u), it.Rotated,
			})
		}
	}
	for _, mr := range results {
		for _, it := range mr.Unplaced {
			rows = append(rows, []interface{}{
				mr.Material, "unplaced", "", it.Name,
				units.FromMM(it.W, u), units.FromMM(it.H, u), "", "", false,
			})
		}
	}
	return rows
}

// summaryRows lists the overall totals, a blank row, then one row per bin.
func summaryRows(results []model.MaterialResult, u units.Unit) [][]interface{} {
	s := model.Summarize(results)
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Materials", s.Materials},
		{"Materials without stock", s.MaterialsNoStock},
		{"Bins used", s.BinsUsed},
		{"Parts placed", s.ItemsPlaced},
		{"Parts unplaced", s.ItemsUnplaced},
		{"Efficiency (%)", s.Efficiency},
		{"Waste (sq mm)", s.Waste},
		{"Stock cost", s.StockCost},
		{},
		{"Material", "Bin", "Stock", fmt.Sprintf("Length (%s)", u), fmt.Sprintf("Width (%s)", u), "Parts", "Waste (%)", "Cost"},
	}
	for _, ref := range flattenBins(results) {
		b := ref.Bin
		rows = append(rows, []interface{}{
			ref.Material, ref.Index, b.Stock.Name,
			units.FromMM(b.Stock.Length, u), units.FromMM(b.Stock.Width, u),
			len(b.Items), b.WastePercent(), b.Stock.Cost,
		})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}
