package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/piwi3910/OpenCutList/internal/engine"
	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	okColor     = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	errColor    = color.New(color.FgRed, color.Bold)
)

func dims(l, w float64, u units.Unit) string {
	return units.Format(l, u) + " x " + units.Format(w, u)
}

// printResults writes one block per material followed by the totals.
func printResults(w io.Writer, results []model.MaterialResult, u units.Unit) {
	for _, mr := range results {
		headerColor.Fprintf(w, "Material: %s\n", mr.Material)
		if mr.HasError() {
			errColor.Fprintf(w, "  %s\n", mr.Error)
			continue
		}
		for i, b := range mr.Bins {
			line := fmt.Sprintf("  Bin %d: %s (%s) %d parts, waste %.1f%%",
				i+1, b.Stock.Name, dims(b.Stock.Length, b.Stock.Width, u), len(b.Items), b.WastePercent())
			if b.Imperfect {
				warnColor.Fprintln(w, line)
			} else {
				okColor.Fprintln(w, line)
			}
			for _, it := range b.Items {
				rot := ""
				if it.Rotated {
					rot = " rotated"
				}
				fmt.Fprintf(w, "    %-24s %-16s @ (%s, %s)%s\n",
					it.Name, dims(it.W, it.H, u), units.Format(it.X, u), units.Format(it.Y, u), rot)
			}
		}
		for _, it := range mr.Unplaced {
			warnColor.Fprintf(w, "  Unplaced: %s (%s)\n", it.Name, dims(it.W, it.H, u))
		}
	}
	printSummary(w, model.Summarize(results))
}

func printSummary(w io.Writer, s model.Summary) {
	c := okColor
	if s.ItemsUnplaced > 0 || s.MaterialsNoStock > 0 {
		c = warnColor
	}
	c.Fprintf(w, "Summary: %d bins, %d placed, %d unplaced, %.1f%% efficiency, stock cost %.2f\n",
		s.BinsUsed, s.ItemsPlaced, s.ItemsUnplaced, s.Efficiency, s.StockCost)
}

func printOffcuts(w io.Writer, offcuts []model.Offcut, u units.Unit) {
	headerColor.Fprintf(w, "Usable offcuts: %d\n", len(offcuts))
	for _, o := range offcuts {
		fmt.Fprintf(w, "  %-16s bin %d  %-16s @ (%s, %s)\n",
			o.Material, o.BinIndex+1, dims(o.Width, o.Height, u), units.Format(o.X, u), units.Format(o.Y, u))
	}
}

func printEstimates(w io.Writer, estimates []materialEstimate) {
	for _, e := range estimates {
		warnColor.Fprintf(w, "To place the rest of %s buy about %d more %q (%.2f)\n",
			e.Material, e.Estimate.BoardsWithWaste, e.Board, e.Estimate.EstimatedCost)
	}
}

func printComparison(w io.Writer, rows []engine.ComparisonResult) {
	headerColor.Fprintf(w, "%-24s %6s %8s %9s %10s\n", "Scenario", "Bins", "Waste", "Unplaced", "Cost")
	for _, r := range rows {
		fmt.Fprintf(w, "%-24s %6d %7.1f%% %9d %10.2f\n",
			r.Scenario.Name, r.BinsUsed, r.WastePercent, r.UnplacedCount, r.StockCost)
	}
}
