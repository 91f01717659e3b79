package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/OpenCutList/internal/model"
)

// ExpandParts turns each part into one placement item per unit, largest
// area first. Items of equal area keep their input order.
func ExpandParts(parts []model.Part) []model.PlacementItem {
	var expanded []model.PlacementItem
	seq := 0
	for _, p := range parts {
		for i := 0; i < p.Quantity; i++ {
			expanded = append(expanded, model.PlacementItem{
				Seq:            seq,
				OriginalID:     p.ID,
				Name:           p.Name,
				Material:       model.MaterialKey(p.Material),
				GrainDirection: p.GrainDirection,
				W:              p.Length,
				H:              p.Width,
			})
			seq++
		}
	}

	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Area() > expanded[j].Area()
	})
	return expanded
}

// ExpandStock turns each stock record into one board per unit, largest area
// first. Each board gets quantity 1 and an ID of the form "<id>_<n>".
func ExpandStock(stock []model.StockPiece) []model.StockPiece {
	var pool []model.StockPiece
	for _, s := range stock {
		for i := 0; i < s.Quantity; i++ {
			cp := s
			cp.ID = instanceID(s.ID, i)
			cp.Quantity = 1
			pool = append(pool, cp)
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Area() > pool[j].Area()
	})
	return pool
}

func instanceID(id string, n int) string {
	return fmt.Sprintf("%s_%d", id, n)
}
