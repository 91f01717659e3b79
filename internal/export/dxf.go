package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/OpenCutList/internal/model"
)

// DXF layer names.
const (
	LayerStock   = "STOCK"
	LayerParts   = "PARTS"
	LayerOffcuts = "OFFCUTS"
	LayerLabels  = "LABELS"
)

// dxfBinGap separates neighbouring bins in the drawing, in mm.
const dxfBinGap = 100.0

// ExportDXF writes every bin as outlines in millimetres, laid out left to
// right. Board coordinates run from the top-left corner, so y is flipped
// to match the DXF convention of y pointing up.
func ExportDXF(path string, results []model.MaterialResult) error {
	bins := flattenBins(results)
	if len(bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	d := dxf.NewDrawing()
	for _, l := range []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerStock, color.White},
		{LayerParts, color.Green},
		{LayerOffcuts, color.Cyan},
		{LayerLabels, color.Red},
	} {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	originX := 0.0
	for _, ref := range bins {
		if err := drawBin(d, ref, originX); err != nil {
			return fmt.Errorf("failed to draw %s bin %d: %w", ref.Material, ref.Index, err)
		}
		originX += ref.Bin.Stock.Length + dxfBinGap
	}

	return d.SaveAs(path)
}

func drawBin(d *drawing.Drawing, ref binRef, originX float64) error {
	b := ref.Bin
	boardH := b.Stock.Width
	rect := func(x, y, w, h float64) error {
		// Convert from top-left origin to bottom-left origin.
		x0 := originX + x
		y0 := boardH - y - h
		x1, y1 := x0+w, y0+h
		for _, seg := range [][4]float64{
			{x0, y0, x1, y0},
			{x1, y0, x1, y1},
			{x1, y1, x0, y1},
			{x0, y1, x0, y0},
		} {
			if _, err := d.Line(seg[0], seg[1], 0, seg[2], seg[3], 0); err != nil {
				return err
			}
		}
		return nil
	}

	if err := d.ChangeLayer(LayerStock); err != nil {
		return err
	}
	if err := rect(0, 0, b.Stock.Length, b.Stock.Width); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerOffcuts); err != nil {
		return err
	}
	for _, r := range b.Offcuts {
		if err := rect(r.X, r.Y, r.W, r.H); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerParts); err != nil {
		return err
	}
	for _, it := range b.Items {
		if err := rect(it.X, it.Y, it.W, it.H); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	title := fmt.Sprintf("%s - Bin %d (%s)", ref.Material, ref.Index, b.Stock.Name)
	if _, err := d.Text(title, originX, boardH+20, 0, 25); err != nil {
		return err
	}
	for _, it := range b.Items {
		height := textHeight(it.W, it.H)
		if _, err := d.Text(it.Name, originX+it.X+5, boardH-it.Y-it.H/2, 0, height); err != nil {
			return err
		}
	}
	return nil
}

// textHeight sizes an item label to its smaller side.
func textHeight(w, h float64) float64 {
	s := w
	if h < s {
		s = h
	}
	switch {
	case s > 300:
		return 40
	case s > 100:
		return 20
	default:
		return 8
	}
}
