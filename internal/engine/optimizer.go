package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/OpenCutList/internal/model"
)

// Optimizer runs the 2D guillotine packing across boards and materials.
type Optimizer struct {
	Settings model.CutSettings
}

// New creates an Optimizer that packs with the given kerf and grain mode.
func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize packs parts onto stock with the given kerf. Rotation is always
// permitted; use an Optimizer with RespectGrain set to honor grain direction.
func Optimize(parts []model.Part, stock []model.StockPiece, kerf float64) []model.MaterialResult {
	return New(model.CutSettings{Kerf: kerf}).Optimize(parts, stock)
}

// Optimize takes parts and stock boards and returns one result per material,
// in the order the materials first appear among the parts.
func (o *Optimizer) Optimize(parts []model.Part, stock []model.StockPiece) []model.MaterialResult {
	// A background context is never cancelled, so no error can occur.
	results, _ := o.OptimizeContext(context.Background(), parts, stock)
	return results
}

// OptimizeContext is Optimize with a cancellation check between boards.
// On cancellation it returns the results completed so far and the context error.
func (o *Optimizer) OptimizeContext(ctx context.Context, parts []model.Part, stock []model.StockPiece) ([]model.MaterialResult, error) {
	groups := groupByMaterial(parts, stock)

	results := make([]model.MaterialResult, 0, len(groups))
	for _, g := range groups {
		if len(g.stock) == 0 {
			results = append(results, model.MaterialResult{
				Material: g.material,
				Error:    model.ErrNoStockAvailable,
			})
			continue
		}
		mr, err := o.packMaterial(ctx, g)
		if err != nil {
			return results, fmt.Errorf("failed to optimize %s: %w", g.material, err)
		}
		results = append(results, mr)
	}
	return results, nil
}

// materialGroup holds the parts and stock for a single material.
type materialGroup struct {
	material string
	parts    []model.Part
	stock    []model.StockPiece
}

// groupByMaterial splits parts into groups by material in first-appearance
// order, and attaches the stock of the same material to each group. Empty
// material names on either side count as UnknownMaterial. Stock of a material
// no part uses is ignored.
func groupByMaterial(parts []model.Part, stock []model.StockPiece) []materialGroup {
	index := make(map[string]int)
	var groups []materialGroup

	for _, p := range parts {
		key := model.MaterialKey(p.Material)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, materialGroup{material: key})
		}
		groups[i].parts = append(groups[i].parts, p)
	}

	for _, s := range stock {
		if i, ok := index[model.MaterialKey(s.Material)]; ok {
			groups[i].stock = append(groups[i].stock, s)
		}
	}
	return groups
}

// packMaterial fills boards largest first until every item is placed or the
// boards run out. A board on which nothing fits is skipped without a bin.
func (o *Optimizer) packMaterial(ctx context.Context, g materialGroup) (model.MaterialResult, error) {
	remaining := ExpandParts(g.parts)
	boards := ExpandStock(g.stock)

	mr := model.MaterialResult{
		Material: g.material,
		Bins:     []model.Bin{},
		Unplaced: []model.PlacementItem{},
	}
	for _, board := range boards {
		if len(remaining) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return mr, err
		}

		packer := newGuillotinePacker(board.Length, board.Width, o.Settings.Kerf)
		packer.respectGrain = o.Settings.RespectGrain
		placed := packer.fit(remaining)
		if len(placed) == 0 {
			continue
		}

		remaining = withoutPlaced(remaining, placed)

		var used float64
		for _, it := range placed {
			used += it.Area()
		}
		mr.Bins = append(mr.Bins, model.Bin{
			Stock:     board,
			Items:     placed,
			Offcuts:   packer.offcuts(),
			Waste:     board.Area() - used,
			Imperfect: len(remaining) > 0,
		})
	}

	if len(remaining) > 0 {
		mr.Unplaced = remaining
	}
	return mr, nil
}

// withoutPlaced returns the items whose Seq is not among the placed ones,
// preserving order.
func withoutPlaced(items, placed []model.PlacementItem) []model.PlacementItem {
	done := make(map[int]bool, len(placed))
	for _, it := range placed {
		done[it.Seq] = true
	}
	var rest []model.PlacementItem
	for _, it := range items {
		if !done[it.Seq] {
			rest = append(rest, it)
		}
	}
	return rest
}
