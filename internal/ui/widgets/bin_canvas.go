// Package widgets holds the custom fyne widgets used to draw bin layouts.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// Item colors cycle by placement index.
var itemColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var (
	boardColor  = color.NRGBA{R: 229, G: 229, B: 229, A: 255}
	offcutColor = color.NRGBA{R: 160, G: 160, B: 160, A: 90}
	borderColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
)

// BinCanvas renders one bin: the board, its offcuts and the placed items.
type BinCanvas struct {
	widget.BaseWidget
	bin       model.Bin
	unit      units.Unit
	maxWidth  float32
	maxHeight float32
}

// NewBinCanvas scales the bin to fit within maxW x maxH.
func NewBinCanvas(bin model.Bin, unit units.Unit, maxW, maxH float32) *BinCanvas {
	bc := &BinCanvas{
		bin:       bin,
		unit:      unit,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	bc.ExtendBaseWidget(bc)
	return bc
}

// SetBin replaces the displayed bin and redraws.
func (bc *BinCanvas) SetBin(bin model.Bin) {
	bc.bin = bin
	bc.Refresh()
}

// scale returns the factor mapping board millimetres to canvas units.
func (bc *BinCanvas) scale() float32 {
	boardW := float32(bc.bin.Stock.Length)
	boardH := float32(bc.bin.Stock.Width)
	if boardW <= 0 || boardH <= 0 {
		return 0
	}
	scale := bc.maxWidth / boardW
	if s := bc.maxHeight / boardH; s < scale {
		scale = s
	}
	return scale
}

func (bc *BinCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &binCanvasRenderer{bc: bc}
	r.rebuild()
	return r
}

type binCanvasRenderer struct {
	bc      *BinCanvas
	objects []fyne.CanvasObject
}

func (r *binCanvasRenderer) rebuild() {
	r.objects = nil

	bin := r.bc.bin
	scale := r.bc.scale()
	canvasW := float32(bin.Stock.Length) * scale
	canvasH := float32(bin.Stock.Width) * scale

	bg := canvas.NewRectangle(boardColor)
	bg.StrokeColor = borderColor
	bg.StrokeWidth = 2
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	for _, o := range bin.Offcuts {
		rect := canvas.NewRectangle(offcutColor)
		rect.Resize(fyne.NewSize(float32(o.W)*scale, float32(o.H)*scale))
		rect.Move(fyne.NewPos(float32(o.X)*scale, float32(o.Y)*scale))
		r.objects = append(r.objects, rect)
	}

	for i, it := range bin.Items {
		pw := float32(it.W) * scale
		ph := float32(it.H) * scale
		px := float32(it.X) * scale
		py := float32(it.Y) * scale

		rect := canvas.NewRectangle(itemColors[i%len(itemColors)])
		rect.StrokeColor = color.White
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(pw, ph))
		rect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, rect)

		if pw > 30 && ph > 16 {
			label := canvas.NewText(ItemLabel(it, r.bc.unit), color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

// ItemLabel is the text drawn on a placed item.
func ItemLabel(it model.PlacementItem, u units.Unit) string {
	label := fmt.Sprintf("%s %s x %s", it.Name, units.Format(it.W, u), units.Format(it.H, u))
	if it.Rotated {
		label += " (R)"
	}
	return label
}

func (r *binCanvasRenderer) Layout(size fyne.Size)        {}
func (r *binCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *binCanvasRenderer) Destroy()                     {}
func (r *binCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *binCanvasRenderer) MinSize() fyne.Size {
	scale := r.bc.scale()
	return fyne.NewSize(float32(r.bc.bin.Stock.Length)*scale, float32(r.bc.bin.Stock.Width)*scale)
}
