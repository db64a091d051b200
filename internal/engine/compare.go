package engine

import (
	"fmt"

	"github.com/piwi3910/DoorBeading/internal/model"
)

// ComparisonScenario defines a named configuration to compare.
type ComparisonScenario struct {
	Name   string
	Config model.DoorConfig
}

// ComparisonResult holds the cut result and headline figures for a single
// scenario.
type ComparisonResult struct {
	Scenario           ComparisonScenario
	Result             model.CutResult
	IsValid            bool
	PanelBeadingGap    float64
	TopPanelHeight     float64
	BottomPanelHeight  float64
	TotalBeadingLength float64
	WarningCount       int
}

// CompareScenarios computes every scenario in order. This enables
// side-by-side comparison of alternatives to the current measurements
// (row split, panel width, beading profile).
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res := ComputeCutResult(scenario.Config)
		results = append(results, ComparisonResult{
			Scenario:           scenario,
			Result:             res,
			IsValid:            res.IsValid,
			PanelBeadingGap:    res.PanelBeadingGap,
			TopPanelHeight:     res.TopPanelHeight,
			BottomPanelHeight:  res.BottomPanelHeight,
			TotalBeadingLength: res.TotalBeadingLength(),
			WarningCount:       len(res.HandleWarnings),
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if alternatives to the given
// configuration, varying one measurement at a time.
func BuildDefaultScenarios(base model.DoorConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Settings",
			Config: base,
		},
	}

	// Scenario: equal rows
	if base.TopPanelRatio != 50 {
		even := base
		even.TopPanelRatio = 50
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "Even Rows (50/50)",
			Config: even,
		})
	}

	// Scenario: panel as wide as the frame allows
	if maxWidth := MaxPanelWidth(base); maxWidth > 0 && maxWidth != base.MDFPanelWidth {
		widest := base
		widest.MDFPanelWidth = maxWidth
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Widest Panel (%.1fmm)", maxWidth),
			Config: widest,
		})
	}

	// Scenario: slimmer beading
	if base.BeadingWidth > 10 {
		slim := base
		slim.BeadingWidth = base.BeadingWidth * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Beading %.1fmm (half)", slim.BeadingWidth),
			Config: slim,
		})
	}

	// Scenario: handle-side margin widened to clear the hardware
	if base.HandleSpread > base.HandleMargin() {
		cleared := base
		if base.HandleSide == model.HandleLeft {
			cleared.LeftMargin = base.HandleSpread
		} else {
			cleared.RightMargin = base.HandleSpread
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Clear Handle (%s margin %.0fmm)", base.HandleSide, base.HandleSpread),
			Config: cleared,
		})
	}

	return scenarios
}
