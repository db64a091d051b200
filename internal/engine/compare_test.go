package engine

import (
	"testing"

	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultScenarios_Defaults(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultDoorConfig())

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"Current Settings",
		"Even Rows (50/50)",
		"Widest Panel (221.0mm)",
		"Beading 10.0mm (half)",
	}, names)
}

func TestBuildDefaultScenarios_HandleClearance(t *testing.T) {
	cfg := model.DefaultDoorConfig()
	cfg.HandleSide = model.HandleLeft
	cfg.HandleSpread = 140
	cfg.TopPanelRatio = 50

	scenarios := BuildDefaultScenarios(cfg)

	last := scenarios[len(scenarios)-1]
	assert.Equal(t, "Clear Handle (left margin 140mm)", last.Name)
	assert.Equal(t, 140.0, last.Config.LeftMargin)
	assert.Equal(t, cfg.RightMargin, last.Config.RightMargin)

	for _, s := range scenarios {
		assert.NotEqual(t, "Even Rows (50/50)", s.Name, "already even")
	}
}

func TestCompareScenarios(t *testing.T) {
	cfg := model.DefaultDoorConfig()
	cfg.HandleSide = model.HandleLeft
	cfg.HandleSpread = 140

	results := CompareScenarios(BuildDefaultScenarios(cfg))
	require.NotEmpty(t, results)

	current := results[0]
	assert.Equal(t, "Current Settings", current.Scenario.Name)
	assert.True(t, current.IsValid)
	assert.Equal(t, 1, current.WarningCount)
	assert.Equal(t, current.Result.TotalBeadingLength(), current.TotalBeadingLength)

	var widest, cleared *ComparisonResult
	for i := range results {
		switch results[i].Scenario.Name {
		case "Widest Panel (221.0mm)":
			widest = &results[i]
		case "Clear Handle (left margin 140mm)":
			cleared = &results[i]
		}
	}
	require.NotNil(t, widest)
	assert.Equal(t, 0.0, widest.PanelBeadingGap)
	assert.True(t, widest.IsValid)

	require.NotNil(t, cleared)
	assert.Equal(t, 0, cleared.WarningCount)
}

func TestCompareScenarios_WidestPanelFitsOddUnitWidth(t *testing.T) {
	cfg := model.DefaultDoorConfig()
	cfg.DoorWidth = 762.5

	var widest *ComparisonResult
	results := CompareScenarios(BuildDefaultScenarios(cfg))
	for i := range results {
		if results[i].Scenario.Name == "Widest Panel (221.2mm)" {
			widest = &results[i]
		}
	}
	require.NotNil(t, widest)
	assert.True(t, widest.IsValid, "errors: %v", widest.Result.Errors)
}

func TestCompareScenarios_Empty(t *testing.T) {
	assert.Empty(t, CompareScenarios(nil))
}
