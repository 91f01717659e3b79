package widgets

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// EmptyResultsText is shown before anything has been optimized.
const EmptyResultsText = "No results yet. Load a project or run the optimizer."

// BinHeader describes one bin above its canvas.
func BinHeader(material string, index int, b model.Bin, u units.Unit) string {
	return fmt.Sprintf("%s - Bin %d: %s (%s x %s), %d parts, %.1f%% waste",
		material, index, b.Stock.Name,
		units.Format(b.Stock.Length, u), units.Format(b.Stock.Width, u),
		len(b.Items), b.WastePercent())
}

// RenderResults builds a scrollable list of every bin followed by the
// unplaced warnings and the overall totals.
func RenderResults(results []model.MaterialResult, u units.Unit) fyne.CanvasObject {
	if len(results) == 0 {
		return widget.NewLabel(EmptyResultsText)
	}

	var items []fyne.CanvasObject
	for _, mr := range results {
		if mr.HasError() {
			warning := widget.NewLabel(fmt.Sprintf("%s: %s", mr.Material, mr.Error))
			warning.Importance = widget.DangerImportance
			items = append(items, warning, widget.NewSeparator())
			continue
		}

		for i, b := range mr.Bins {
			header := widget.NewLabel(BinHeader(mr.Material, i+1, b, u))
			header.TextStyle = fyne.TextStyle{Bold: true}
			items = append(items, header, NewBinCanvas(b, u, 600, 400), widget.NewSeparator())
		}

		if len(mr.Unplaced) > 0 {
			warning := widget.NewLabel(UnplacedWarning(mr))
			warning.Importance = widget.DangerImportance
			items = append(items, warning)
		}
	}

	if breakdown := StockSizeBreakdown(results, u); len(breakdown) > 1 {
		items = append(items, widget.NewSeparator())
		breakdownHeader := widget.NewLabel("Stock Size Breakdown:")
		breakdownHeader.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, breakdownHeader)
		for _, line := range breakdown {
			items = append(items, widget.NewLabel(line))
		}
	}

	sum := model.Summarize(results)
	summaryText := fmt.Sprintf("Total: %d bins used, %.1f%% overall efficiency", sum.BinsUsed, sum.Efficiency)
	if sum.StockCost > 0 {
		summaryText += fmt.Sprintf(" | Stock cost: %.2f", sum.StockCost)
	}
	summary := widget.NewLabel(summaryText)
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// UnplacedWarning names the items of a material that did not fit.
func UnplacedWarning(mr model.MaterialResult) string {
	names := make([]string, len(mr.Unplaced))
	for i, it := range mr.Unplaced {
		names[i] = it.Name
	}
	return fmt.Sprintf("WARNING: %d %s part(s) could not be placed: %s",
		len(mr.Unplaced), mr.Material, strings.Join(names, ", "))
}

// StockSizeBreakdown groups bins by material and board size, in order of
// first appearance, and reports count, parts and efficiency for each group.
func StockSizeBreakdown(results []model.MaterialResult, u units.Unit) []string {
	type sizeKey struct {
		material string
		l, w     float64
	}
	type sizeStats struct {
		count      int
		totalParts int
		usedArea   float64
		totalArea  float64
	}

	var order []sizeKey
	statsMap := make(map[sizeKey]*sizeStats)

	for _, mr := range results {
		for _, b := range mr.Bins {
			key := sizeKey{mr.Material, b.Stock.Length, b.Stock.Width}
			if _, exists := statsMap[key]; !exists {
				order = append(order, key)
				statsMap[key] = &sizeStats{}
			}
			s := statsMap[key]
			s.count++
			s.totalParts += len(b.Items)
			s.usedArea += b.UsedArea()
			s.totalArea += b.Area()
		}
	}

	var lines []string
	for _, key := range order {
		s := statsMap[key]
		eff := 0.0
		if s.totalArea > 0 {
			eff = (s.usedArea / s.totalArea) * 100.0
		}
		lines = append(lines, fmt.Sprintf(
			"  %s %s x %s: %d bin(s), %d parts, %.1f%% efficiency",
			key.material, units.Format(key.l, u), units.Format(key.w, u), s.count, s.totalParts, eff,
		))
	}
	return lines
}
