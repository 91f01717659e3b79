package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left on a board after cutting.
type Offcut struct {
	ID        string  `json:"id"`
	Material  string  `json:"material"`
	StockName string  `json:"stock_name"` // Which board it came from
	BinIndex  int     `json:"bin_index"`  // Index of the source bin within its material
	X         float64 `json:"x"`          // Position on the board (mm from left)
	Y         float64 `json:"y"`          // Position on the board (mm from top)
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
	Cost      float64 `json:"cost"` // Share of the board cost proportional to area
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToStockPiece converts an offcut into a single board for reuse in future projects.
func (o Offcut) ToStockPiece() StockPiece {
	s := NewStockPiece("Offcut "+o.StockName, o.Width, o.Height, 1)
	s.Material = o.Material
	s.Thickness = o.Thickness
	s.Cost = o.Cost
	return s
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// UsableOffcuts filters a bin's free rectangles down to remnants worth keeping.
// The result is sorted by area, largest first.
func UsableOffcuts(b Bin, binIndex int, minDimension, minArea float64) []Offcut {
	var offcuts []Offcut
	boardArea := b.Area()
	for _, r := range b.Offcuts {
		if r.W < minDimension || r.H < minDimension || r.Area() < minArea {
			continue
		}
		o := Offcut{
			ID:        uuid.New().String()[:8],
			Material:  b.Stock.Material,
			StockName: b.Stock.Name,
			BinIndex:  binIndex,
			X:         r.X,
			Y:         r.Y,
			Width:     r.W,
			Height:    r.H,
			Thickness: b.Stock.Thickness,
		}
		if b.Stock.Cost > 0 && boardArea > 0 {
			o.Cost = (o.Area() / boardArea) * b.Stock.Cost
		}
		offcuts = append(offcuts, o)
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// CollectOffcuts finds usable offcuts across every bin of every material.
func CollectOffcuts(results []MaterialResult, minDimension, minArea float64) []Offcut {
	var all []Offcut
	for _, mr := range results {
		for i, b := range mr.Bins {
			all = append(all, UsableOffcuts(b, i, minDimension, minArea)...)
		}
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
