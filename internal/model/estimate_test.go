package model

import (
	"math"
	"testing"
)

func TestEstimatePurchaseBasic(t *testing.T) {
	items := []PlacementItem{
		{W: 500, H: 300}, {W: 500, H: 300}, {W: 500, H: 300}, {W: 500, H: 300},
	}
	board := StockPiece{Length: 2440, Width: 1220, Cost: 45.00}
	est := EstimatePurchase(items, board, 3.0, 15.0)

	// Each item with kerf: 503 x 303 = 152409 sq mm, x4 = 609636
	expectedArea := 503.0 * 303.0 * 4
	if math.Abs(est.TotalItemArea-expectedArea) > 0.1 {
		t.Errorf("expected total area %.1f, got %.1f", expectedArea, est.TotalItemArea)
	}
	if est.TotalBoardFeet <= 0 {
		t.Error("expected positive board feet")
	}
	if est.BoardsNeededMin != 1 {
		t.Errorf("expected 1 board, got %d", est.BoardsNeededMin)
	}
	if est.BoardsWithWaste < est.BoardsNeededMin {
		t.Error("boards with waste should be >= minimum boards")
	}
	if est.EstimatedCost != float64(est.BoardsWithWaste)*45.00 {
		t.Errorf("expected cost %.2f, got %.2f", float64(est.BoardsWithWaste)*45.00, est.EstimatedCost)
	}
}

func TestEstimatePurchaseZeroBoardArea(t *testing.T) {
	items := []PlacementItem{{W: 100, H: 100}}
	est := EstimatePurchase(items, StockPiece{}, 0, 10)
	if est.BoardsNeededMin != 0 {
		t.Errorf("expected 0 boards for zero board area, got %d", est.BoardsNeededMin)
	}
	if est.TotalItemArea <= 0 {
		t.Error("expected positive total item area even with zero board")
	}
}

func TestEstimatePurchaseOversizedItem(t *testing.T) {
	// The Scenario B panel: bigger than the only board, area says two boards.
	items := []PlacementItem{{W: 2500, H: 1300}}
	est := EstimatePurchase(items, StockPiece{Length: 2440, Width: 1220}, 0, 0)
	if est.BoardsNeededMin != 2 {
		t.Errorf("expected 2 boards by area, got %d", est.BoardsNeededMin)
	}
}

func TestBoardFeetConversion(t *testing.T) {
	items := []PlacementItem{{W: 304.8, H: 304.8}} // 12" x 12"
	est := EstimatePurchase(items, StockPiece{Length: 2440, Width: 1220}, 0, 0)
	if math.Abs(est.TotalBoardFeet-1.0) > 0.01 {
		t.Errorf("expected ~1.0 board feet, got %.4f", est.TotalBoardFeet)
	}
}

func TestLargestStock(t *testing.T) {
	stock := []StockPiece{
		{Name: "Small", Length: 1220, Width: 610, Material: "MDF"},
		{Name: "Big", Length: 2440, Width: 1220, Material: "MDF"},
		{Name: "Other", Length: 3000, Width: 1500, Material: "Oak"},
		{Name: "Bare", Length: 500, Width: 500},
	}

	s, ok := LargestStock(stock, "MDF")
	if !ok || s.Name != "Big" {
		t.Errorf("expected Big, got %q (found=%v)", s.Name, ok)
	}

	s, ok = LargestStock(stock, "")
	if !ok || s.Name != "Bare" {
		t.Errorf("expected empty material to match Unknown stock, got %q", s.Name)
	}

	if _, ok := LargestStock(stock, "Walnut"); ok {
		t.Error("expected no stock for Walnut")
	}
}
