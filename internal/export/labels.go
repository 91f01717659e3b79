package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// LabelInfo holds the data encoded into each item label's QR code.
type LabelInfo struct {
	Seq       int     `json:"seq"`
	PartID    string  `json:"part_id"`
	Name      string  `json:"name"`
	Material  string  `json:"material"`
	BinIndex  int     `json:"bin"`
	StockName string  `json:"stock"`
	Width     float64 `json:"width_mm"`
	Height    float64 `json:"height_mm"`
	X         float64 `json:"x_mm"`
	Y         float64 `json:"y_mm"`
	Rotated   bool    `json:"rotated"`
}

// Label layout for Avery 5160-compatible sheets (3 columns, 10 rows on US Letter).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels, one per placed item.
func ExportLabels(path string, results []model.MaterialResult, u units.Unit) error {
	labels := CollectLabelInfos(results)
	if len(labels) == 0 {
		return fmt.Errorf("no parts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		x := labelMarginLeft + float64(posOnPage%labelCols)*labelWidth
		y := labelMarginTop + float64(posOnPage/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, label, u); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo, u units.Unit) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", info.Seq)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncateToWidth(pdf, info.Name, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%s x %s", units.FormatWithUnit(info.Width, u), units.FormatWithUnit(info.Height, u))
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	binInfo := fmt.Sprintf("%s bin %d", info.Material, info.BinIndex)
	pdf.CellFormat(textW, 3, truncateToWidth(pdf, binInfo, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pos := fmt.Sprintf("@ (%s, %s)", units.Format(info.X, u), units.Format(info.Y, u))
	pdf.CellFormat(textW, 3, pos, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+16)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

func truncateToWidth(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos lists one label per placed item in result order.
// BinIndex is 1-based within the item's material.
func CollectLabelInfos(results []model.MaterialResult) []LabelInfo {
	var labels []LabelInfo
	for _, ref := range flattenBins(results) {
		for _, it := range ref.Bin.Items {
			labels = append(labels, LabelInfo{
				Seq:       it.Seq,
				PartID:    it.OriginalID,
				Name:      it.Name,
				Material:  ref.Material,
				BinIndex:  ref.Index,
				StockName: ref.Bin.Stock.Name,
				Width:     it.W,
				Height:    it.H,
				X:         it.X,
				Y:         it.Y,
				Rotated:   it.Rotated,
			})
		}
	}
	return labels
}
