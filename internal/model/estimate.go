package model

import "math"

// PurchaseEstimate holds the results of a board purchasing calculation.
type PurchaseEstimate struct {
	TotalItemArea     float64 `json:"total_item_area"`     // Total area of all items incl. kerf (sq mm)
	TotalBoardFeet    float64 `json:"total_board_feet"`    // 1 bf = 144 sq in = 92903.04 sq mm
	BoardArea         float64 `json:"board_area"`          // Area of one board (sq mm)
	BoardsNeededExact float64 `json:"boards_needed_exact"` // Exact fractional number of boards
	BoardsNeededMin   int     `json:"boards_needed_min"`   // Ceiling of exact
	BoardsWithWaste   int     `json:"boards_with_waste"`   // Recommended boards including waste factor
	WastePercent      float64 `json:"waste_percent"`
	EstimatedCost     float64 `json:"estimated_cost"`
	CostPerBoard      float64 `json:"cost_per_board"`
	Kerf              float64 `json:"kerf"`
}

// sqmmPerBoardFoot is the number of square millimeters in one board foot.
// 1 board foot = 12" x 12" x 1" (area) = 144 sq inches = 144 * 645.16 sq mm = 92903.04 sq mm.
const sqmmPerBoardFoot = 92903.04

// EstimatePurchase computes how many boards of the given size to buy to cover
// a list of items, usually the unplaced remainder of an optimization.
// The estimate is area based, so it is a lower bound for what a packer needs.
func EstimatePurchase(items []PlacementItem, board StockPiece, kerf, wastePercent float64) PurchaseEstimate {
	var totalArea float64
	for _, it := range items {
		totalArea += (it.W + kerf) * (it.H + kerf)
	}

	boardArea := board.Area()
	if boardArea <= 0 {
		return PurchaseEstimate{
			TotalItemArea:  totalArea,
			TotalBoardFeet: totalArea / sqmmPerBoardFoot,
			WastePercent:   wastePercent,
			Kerf:           kerf,
		}
	}

	exact := totalArea / boardArea
	minBoards := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minBoards {
		withWaste = minBoards
	}

	return PurchaseEstimate{
		TotalItemArea:     totalArea,
		TotalBoardFeet:    totalArea / sqmmPerBoardFoot,
		BoardArea:         boardArea,
		BoardsNeededExact: exact,
		BoardsNeededMin:   minBoards,
		BoardsWithWaste:   withWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(withWaste) * board.Cost,
		CostPerBoard:      board.Cost,
		Kerf:              kerf,
	}
}

// LargestStock returns the largest board of the given material, or false when
// there is none.
func LargestStock(stock []StockPiece, material string) (StockPiece, bool) {
	var best StockPiece
	found := false
	key := MaterialKey(material)
	for _, s := range stock {
		if MaterialKey(s.Material) != key {
			continue
		}
		if !found || s.Area() > best.Area() {
			best = s
			found = true
		}
	}
	return best, found
}
