package model

// Summary aggregates statistics across all material results.
type Summary struct {
	Materials        int     `json:"materials"`
	MaterialsNoStock int     `json:"materialsNoStock"`
	BinsUsed         int     `json:"binsUsed"`
	ItemsPlaced      int     `json:"itemsPlaced"`
	ItemsUnplaced    int     `json:"itemsUnplaced"`
	TotalArea        float64 `json:"totalArea"` // sq mm of used boards
	UsedArea         float64 `json:"usedArea"`
	Waste            float64 `json:"waste"`
	Efficiency       float64 `json:"efficiency"` // percent
	StockCost        float64 `json:"stockCost"`
}

// Summarize computes totals for a set of results. Materials reported with
// a no-stock error contribute no bins and no unplaced items.
func Summarize(results []MaterialResult) Summary {
	s := Summary{Materials: len(results)}
	for _, mr := range results {
		if mr.HasError() {
			s.MaterialsNoStock++
			continue
		}
		s.ItemsUnplaced += len(mr.Unplaced)
		for _, b := range mr.Bins {
			s.BinsUsed++
			s.ItemsPlaced += len(b.Items)
			s.TotalArea += b.Area()
			s.UsedArea += b.UsedArea()
			s.Waste += b.Waste
			s.StockCost += b.Stock.Cost
		}
	}
	if s.TotalArea > 0 {
		s.Efficiency = (s.UsedArea / s.TotalArea) * 100.0
	}
	return s
}

// AllBins flattens the bins of every material in result order.
func AllBins(results []MaterialResult) []Bin {
	var bins []Bin
	for _, mr := range results {
		bins = append(bins, mr.Bins...)
	}
	return bins
}
