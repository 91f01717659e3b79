package engine

import (
	"fmt"

	"github.com/piwi3910/OpenCutList/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string            `json:"name"`
	Settings model.CutSettings `json:"settings"`
}

// ComparisonResult holds the optimization result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario     `json:"scenario"`
	Results       []model.MaterialResult `json:"results"`
	BinsUsed      int                    `json:"binsUsed"`
	ItemsPlaced   int                    `json:"itemsPlaced"`
	Waste         float64                `json:"waste"`
	WastePercent  float64                `json:"wastePercent"`
	UnplacedCount int                    `json:"unplacedCount"`
	StockCost     float64                `json:"stockCost"`
}

// CompareScenarios runs optimization for each scenario and returns the results
// in scenario order. This enables side-by-side comparison of different
// parameters such as kerf width or grain handling.
func CompareScenarios(scenarios []ComparisonScenario, parts []model.Part, stock []model.StockPiece) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := New(scenario.Settings)
		res := opt.Optimize(parts, stock)
		sum := model.Summarize(res)

		wastePercent := 0.0
		if sum.TotalArea > 0 {
			wastePercent = 100.0 - sum.Efficiency
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Results:       res,
			BinsUsed:      sum.BinsUsed,
			ItemsPlaced:   sum.ItemsPlaced,
			Waste:         sum.Waste,
			WastePercent:  wastePercent,
			UnplacedCount: sum.ItemsUnplaced,
			StockCost:     sum.StockCost,
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.CutSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: No kerf (theoretical best case)
	if baseSettings.Kerf > 0 {
		noKerf := baseSettings
		noKerf.Kerf = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Kerf",
			Settings: noKerf,
		})
	}

	// Scenario: Tighter kerf (simulate thinner blade)
	if baseSettings.Kerf > 1.0 {
		tightKerf := baseSettings
		tightKerf.Kerf = baseSettings.Kerf * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Kerf %.1fmm (half)", tightKerf.Kerf),
			Settings: tightKerf,
		})
	}

	// Scenario: Flip grain handling
	grain := baseSettings
	grain.RespectGrain = !baseSettings.RespectGrain
	name := "Respect Grain"
	if baseSettings.RespectGrain {
		name = "Ignore Grain"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: grain,
	})

	return scenarios
}
