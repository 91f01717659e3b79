package export

import (
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

// ExportPDF writes a cut list document: an overview page with the stock
// inventory and the parts list, one page per bin with its layout, and a
// summary page.
func ExportPDF(path string, proj model.Project, results []model.MaterialResult, u units.Unit) error {
	bins := flattenBins(results)
	if len(bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(proj.Name, true)

	pdf.AddPage()
	renderOverviewPage(pdf, proj, u)

	for _, ref := range bins {
		pdf.AddPage()
		renderBinPage(pdf, ref, u)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, results, proj.Settings, u)

	return pdf.OutputFileAndClose(path)
}

// renderOverviewPage lists the stock inventory and the parts list.
func renderOverviewPage(pdf *fpdf.Fpdf, proj model.Project, u units.Unit) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "OpenCutList Export", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+10)
	pdf.CellFormat(200, 5, fmt.Sprintf("%s - %s", proj.Name, time.Now().Format("2006-01-02")), "", 0, "L", false, 0, "")

	y := marginTop + 20
	y = drawListTable(pdf, y, "Stock Inventory", u, stockRows(proj.Stock, u))
	y += 8
	drawListTable(pdf, y, "Parts List", u, partRows(proj.Parts, u))
}

func stockRows(stock []model.StockPiece, u units.Unit) [][]string {
	rows := make([][]string, 0, len(stock))
	for _, s := range stock {
		rows = append(rows, []string{
			s.Name,
			dimsText(s.Length, s.Width, s.Thickness, u),
			fmt.Sprintf("%d", s.Quantity),
			model.MaterialKey(s.Material),
		})
	}
	return rows
}

func partRows(parts []model.Part, u units.Unit) [][]string {
	rows := make([][]string, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, []string{
			p.Name,
			dimsText(p.Length, p.Width, p.Thickness, u),
			fmt.Sprintf("%d", p.Quantity),
			model.MaterialKey(p.Material),
		})
	}
	return rows
}

func dimsText(length, width, thickness float64, u units.Unit) string {
	return fmt.Sprintf("%s x %s x %s", units.Format(length, u), units.Format(width, u), units.Format(thickness, u))
}

// drawListTable renders a titled four-column table and returns the y
// position below it. Rows past the bottom margin are summarized.
func drawListTable(pdf *fpdf.Fpdf, y float64, title string, u units.Unit, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{80, 80, 20, 80}
	headers := []string{"Name", fmt.Sprintf("Dims (%s)", u), "Qty", "Material"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.SetXY(marginLeft, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("... and %d more", len(rows)-i), "", 0, "L", false, 0, "")
			return y + 5
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight
	}
	return y
}

// renderBinPage draws a single bin layout on the current PDF page.
func renderBinPage(pdf *fpdf.Fpdf, ref binRef, u units.Unit) {
	bin := ref.Bin
	boardW, boardH := bin.Stock.Length, bin.Stock.Width

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Material: %s - Bin %d (%s)", ref.Material, ref.Index, bin.Stock.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop)
	stock := fmt.Sprintf("Stock: %s x %s - Waste: %.1f%%",
		units.FormatWithUnit(boardW, u), units.FormatWithUnit(boardH, u), bin.WastePercent())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, stock, "", 0, "R", false, 0, "")

	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Parts: %d | Offcuts: %d | Efficiency: %.1f%%",
		len(bin.Items), len(bin.Offcuts), bin.Efficiency())
	if bin.Imperfect {
		stats += " | Some items did not fit"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight
	scale := math.Min(drawWidth/boardW, drawHeight/boardH)

	canvasW := boardW * scale
	canvasH := boardH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	pdf.SetFillColor(229, 229, 229)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Offcuts are outlined with a dashed line.
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	for _, r := range bin.Offcuts {
		pdf.Rect(offsetX+r.X*scale, offsetY+r.Y*scale, r.W*scale, r.H*scale, "D")
	}
	pdf.SetDashPattern([]float64{}, 0)

	for i, it := range bin.Items {
		col := partColors[i%len(partColors)]
		pw := it.W * scale
		ph := it.H * scale
		px := offsetX + it.X*scale
		py := offsetY + it.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(255, 255, 255)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := it.Name
			dims := fmt.Sprintf("%s x %s", units.Format(it.W, u), units.Format(it.H, u))
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, boardW, boardH, u, offsetX, offsetY, canvasW, canvasH)
	drawPartsLegend(pdf, bin, u, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds length and width labels outside the board rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, boardW, boardH float64, u units.Unit, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := units.FormatWithUnit(boardW, u)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := units.FormatWithUnit(boardH, u)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPartsLegend renders a compact legend of placed items below the board.
func drawPartsLegend(pdf *fpdf.Fpdf, bin model.Bin, u units.Unit, startY float64) {
	if len(bin.Items) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Parts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, it := range bin.Items {
		col := partColors[i%len(partColors)]
		label := fmt.Sprintf("%s (%s x %s)", it.Name, units.Format(it.W, u), units.Format(it.H, u))
		if it.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final page with overall statistics, the
// per-bin breakdown and anything left unplaced.
func renderSummaryPage(pdf *fpdf.Fpdf, results []model.MaterialResult, settings model.CutSettings, u units.Unit) {
	sum := model.Summarize(results)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut Optimization Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Bins Used", fmt.Sprintf("%d", sum.BinsUsed)},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", sum.Efficiency)},
		{"Parts Placed", fmt.Sprintf("%d", sum.ItemsPlaced)},
		{"Unplaced Parts", fmt.Sprintf("%d", sum.ItemsUnplaced)},
		{"Stock Cost", fmt.Sprintf("%.2f", sum.StockCost)},
		{"Kerf", units.FormatWithUnit(settings.Kerf, u)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Bin Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{45, 15, 55, 55, 25, 30}
	headers := []string{"Material", "Bin", "Stock", "Dimensions", "Parts", "Waste"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += rowHeight

	pdf.SetFont("Helvetica", "", 9)
	for i, ref := range flattenBins(results) {
		if y+rowHeight > pageHeight-marginBottom-10 {
			break
		}
		b := ref.Bin
		rowData := []string{
			ref.Material,
			fmt.Sprintf("%d", ref.Index),
			b.Stock.Name,
			fmt.Sprintf("%s x %s", units.Format(b.Stock.Length, u), units.Format(b.Stock.Width, u)),
			fmt.Sprintf("%d", len(b.Items)),
			fmt.Sprintf("%.1f%%", b.WastePercent()),
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += rowHeight
	}

	var problems []string
	for _, mr := range results {
		if mr.HasError() {
			problems = append(problems, fmt.Sprintf("- %s: %s", mr.Material, mr.Error))
			continue
		}
		for _, it := range mr.Unplaced {
			problems = append(problems, fmt.Sprintf("- %s: %s (%s x %s)",
				mr.Material, it.Name, units.Format(it.W, u), units.Format(it.H, u)))
		}
	}
	if len(problems) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Parts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, text := range problems {
			if y > pageHeight-marginBottom-5 {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by OpenCutList", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
