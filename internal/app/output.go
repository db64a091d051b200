package app

import (
	"github.com/piwi3910/DoorBeading/internal/engine"
	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/piwi3910/DoorBeading/internal/report"
)

// doorOutput is one element of the -format json array.
type doorOutput struct {
	Door               model.Door              `json:"door"`
	Result             model.CutResult         `json:"result"`
	PanelPieces        []model.PanelPiece      `json:"panel_pieces,omitempty"`
	BeadingPieces      []model.BeadingPiece    `json:"beading_pieces,omitempty"`
	TotalBeadingLength float64                 `json:"total_beading_length"`
	Estimate           *model.MaterialEstimate `json:"estimate,omitempty"`
	Comparison         []scenarioOutput        `json:"comparison,omitempty"`
}

// scenarioOutput is the headline of one what-if scenario.
type scenarioOutput struct {
	Name               string  `json:"name"`
	IsValid            bool    `json:"is_valid"`
	PanelBeadingGap    float64 `json:"panel_beading_gap"`
	TopPanelHeight     float64 `json:"top_panel_height"`
	BottomPanelHeight  float64 `json:"bottom_panel_height"`
	TotalBeadingLength float64 `json:"total_beading_length"`
	WarningCount       int     `json:"warning_count"`
}

func newDoorOutput(d model.Door, res model.CutResult, ro report.Options) doorOutput {
	out := doorOutput{
		Door:     d,
		Result:   res,
		Estimate: ro.Estimate,
	}
	// Invalid results carry no cut list.
	if res.IsValid {
		out.PanelPieces = res.PanelPieces()
		out.BeadingPieces = res.BeadingPieces()
		out.TotalBeadingLength = res.TotalBeadingLength()
	}
	for _, cr := range ro.Comparison {
		out.Comparison = append(out.Comparison, newScenarioOutput(cr))
	}
	return out
}

func newScenarioOutput(cr engine.ComparisonResult) scenarioOutput {
	return scenarioOutput{
		Name:               cr.Scenario.Name,
		IsValid:            cr.IsValid,
		PanelBeadingGap:    cr.PanelBeadingGap,
		TopPanelHeight:     cr.TopPanelHeight,
		BottomPanelHeight:  cr.BottomPanelHeight,
		TotalBeadingLength: cr.TotalBeadingLength,
		WarningCount:       cr.WarningCount,
	}
}
