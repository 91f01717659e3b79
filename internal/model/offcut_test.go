package model

import (
	"testing"
)

func TestUsableOffcutsKeepsLargeRemnants(t *testing.T) {
	b := Bin{
		Stock: StockPiece{Name: "Sheet1", Length: 2440, Width: 1220, Material: "Birch"},
		Offcuts: []FreeRect{
			{X: 1003, Y: 0, W: 1437, H: 1220},
			{X: 0, Y: 603, W: 1000, H: 617},
		},
	}
	offcuts := UsableOffcuts(b, 0, MinOffcutDimension, MinOffcutArea)
	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(offcuts))
	}
	if offcuts[0].Width != 1437 {
		t.Errorf("expected largest offcut first, got %.0fx%.0f", offcuts[0].Width, offcuts[0].Height)
	}
	if offcuts[0].Material != "Birch" {
		t.Errorf("expected material Birch, got %s", offcuts[0].Material)
	}
}

func TestUsableOffcutsSmallRemnantIgnored(t *testing.T) {
	b := Bin{
		Stock: StockPiece{Name: "Sheet1", Length: 500, Width: 500},
		Offcuts: []FreeRect{
			{X: 483, Y: 0, W: 17, H: 500},
			{X: 0, Y: 483, W: 480, H: 17},
		},
	}
	offcuts := UsableOffcuts(b, 0, MinOffcutDimension, MinOffcutArea)
	if len(offcuts) != 0 {
		t.Errorf("expected 0 offcuts for near-full board, got %d", len(offcuts))
	}
}

func TestUsableOffcutsMinAreaApplies(t *testing.T) {
	b := Bin{
		Stock:   StockPiece{Length: 1000, Width: 1000},
		Offcuts: []FreeRect{{X: 0, Y: 0, W: 60, H: 60}}, // 3600 sq mm
	}
	if got := UsableOffcuts(b, 0, 50, MinOffcutArea); len(got) != 0 {
		t.Errorf("expected remnant below min area to be dropped, got %d", len(got))
	}
	if got := UsableOffcuts(b, 0, 50, 0); len(got) != 1 {
		t.Errorf("expected remnant kept without area limit, got %d", len(got))
	}
}

func TestUsableOffcutsPricingProportional(t *testing.T) {
	b := Bin{
		Stock:   StockPiece{Name: "Sheet1", Length: 2000, Width: 1000, Cost: 100.0},
		Offcuts: []FreeRect{{X: 1000, Y: 0, W: 1000, H: 1000}},
	}
	offcuts := UsableOffcuts(b, 0, 0, 0)
	if len(offcuts) != 1 {
		t.Fatalf("expected 1 offcut, got %d", len(offcuts))
	}
	if offcuts[0].Cost != 50.0 {
		t.Errorf("expected half the board cost, got %.2f", offcuts[0].Cost)
	}
}

func TestCollectOffcuts(t *testing.T) {
	results := []MaterialResult{
		{
			Material: "Plywood",
			Bins: []Bin{
				{Stock: StockPiece{Length: 2440, Width: 1220}, Offcuts: []FreeRect{{X: 1003, W: 1437, H: 1220}}},
				{Stock: StockPiece{Length: 2440, Width: 1220}, Offcuts: []FreeRect{{X: 503, W: 1937, H: 1220}}},
			},
		},
		{Material: "Walnut", Error: ErrNoStockAvailable},
	}
	offcuts := CollectOffcuts(results, MinOffcutDimension, MinOffcutArea)
	if len(offcuts) != 2 {
		t.Fatalf("expected 2 offcuts, got %d", len(offcuts))
	}
	if offcuts[1].BinIndex != 1 {
		t.Errorf("expected second offcut from bin 1, got %d", offcuts[1].BinIndex)
	}
}

func TestOffcutArea(t *testing.T) {
	o := Offcut{Width: 500, Height: 300}
	if o.Area() != 150000 {
		t.Errorf("expected area 150000, got %.0f", o.Area())
	}
}

func TestOffcutToStockPiece(t *testing.T) {
	o := Offcut{
		ID:        "abc",
		StockName: "Plywood",
		Material:  "Birch Plywood",
		Width:     800,
		Height:    400,
		Thickness: 19.05,
		Cost:      12.50,
	}
	s := o.ToStockPiece()
	if s.Length != 800 || s.Width != 400 {
		t.Errorf("expected 800x400, got %.0fx%.0f", s.Length, s.Width)
	}
	if s.Cost != 12.50 {
		t.Errorf("expected cost 12.50, got %.2f", s.Cost)
	}
	if s.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", s.Quantity)
	}
	if s.Material != "Birch Plywood" || s.Thickness != 19.05 {
		t.Errorf("expected material and thickness carried over, got %q %.2f", s.Material, s.Thickness)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("expected offcut stock to validate: %v", err)
	}
}

func TestTotalOffcutArea(t *testing.T) {
	offcuts := []Offcut{
		{Width: 500, Height: 300},
		{Width: 200, Height: 100},
	}
	total := TotalOffcutArea(offcuts)
	expected := 500*300 + 200*100.0
	if total != expected {
		t.Errorf("expected total area %.0f, got %.0f", expected, total)
	}
}
