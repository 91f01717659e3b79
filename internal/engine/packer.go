package engine

import (
	"math"

	"github.com/piwi3910/OpenCutList/internal/model"
)

// guillotinePacker packs items onto a single board.
// It maintains a list of free rectangles and replaces the one it cuts from
// with at most two smaller rectangles on every placement.
type guillotinePacker struct {
	freeRects    []rect
	placed       []model.PlacementItem
	kerf         float64
	respectGrain bool
}

type rect struct {
	x, y, w, h float64
}

func (r rect) area() float64 {
	return r.w * r.h
}

func newGuillotinePacker(width, height, kerf float64) *guillotinePacker {
	return &guillotinePacker{
		freeRects: []rect{{0, 0, width, height}},
		kerf:      kerf,
	}
}

// candidate is an eligible (rectangle, orientation) pair.
type candidate struct {
	idx     int
	w, h    float64
	rotated bool
	score   float64
}

// fit places as many of the items as possible, in the order given, and
// returns the ones that were placed with their position and orientation set.
// Items that fit nowhere are skipped.
func (gp *guillotinePacker) fit(items []model.PlacementItem) []model.PlacementItem {
	for _, it := range items {
		c, ok := gp.bestFit(it)
		if !ok {
			continue
		}
		gp.place(it, c)
	}
	return gp.placed
}

// bestFit finds the eligible pair with the smallest leftover area (Best Area
// Fit). The first rectangle wins ties, and within a rectangle the unrotated
// orientation wins.
func (gp *guillotinePacker) bestFit(it model.PlacementItem) (candidate, bool) {
	best := candidate{idx: -1}
	canRotate := !(gp.respectGrain && it.GrainDirection)

	try := func(i int, r rect, w, h float64, rotated bool) {
		if w > r.w || h > r.h {
			return
		}
		score := r.area() - w*h
		if best.idx < 0 || score < best.score {
			best = candidate{idx: i, w: w, h: h, rotated: rotated, score: score}
		}
	}

	for i, r := range gp.freeRects {
		try(i, r, it.W, it.H, false)
		if canRotate {
			try(i, r, it.H, it.W, true)
		}
	}
	return best, best.idx >= 0
}

// place records the item at the chosen rectangle's origin and performs the
// guillotine split.
func (gp *guillotinePacker) place(it model.PlacementItem, c candidate) {
	r := gp.freeRects[c.idx]

	it.X = r.x
	it.Y = r.y
	it.W = c.w
	it.H = c.h
	it.Rotated = c.rotated
	gp.placed = append(gp.placed, it)

	// Kerf is only charged on the two edges the cut creates.
	wk := c.w + gp.kerf
	hk := c.h + gp.kerf

	// Vertical cut first: right spans the full height.
	aRight := rect{r.x + wk, r.y, nonNeg(r.w - wk), r.h}
	aBelow := rect{r.x, r.y + hk, c.w, nonNeg(r.h - hk)}

	// Horizontal cut first: below spans the full width.
	bBelow := rect{r.x, r.y + hk, r.w, nonNeg(r.h - hk)}
	bRight := rect{r.x + wk, r.y, nonNeg(r.w - wk), c.h}

	var split []rect
	if aRight.area() > bBelow.area() {
		split = []rect{aRight, aBelow}
	} else {
		split = []rect{bBelow, bRight}
	}

	gp.freeRects = append(gp.freeRects[:c.idx:c.idx], gp.freeRects[c.idx+1:]...)
	for _, s := range split {
		if s.w > 0 && s.h > 0 {
			gp.freeRects = append(gp.freeRects, s)
		}
	}
}

// offcuts returns the remaining free rectangles.
func (gp *guillotinePacker) offcuts() []model.FreeRect {
	out := make([]model.FreeRect, 0, len(gp.freeRects))
	for _, r := range gp.freeRects {
		out = append(out, model.FreeRect{X: r.x, Y: r.y, W: r.w, H: r.h})
	}
	return out
}

func nonNeg(v float64) float64 {
	return math.Max(v, 0)
}
