package model

import (
	"math"
	"testing"
)

func TestCalculateMaterialEstimateBasic(t *testing.T) {
	est := CalculateMaterialEstimate(sampleResult(), 2400, 10)

	if est.TotalBeadingLength != 8892 {
		t.Errorf("expected total beading 8892, got %.1f", est.TotalBeadingLength)
	}
	if math.Abs(est.TotalBeadingM-8.892) > 1e-9 {
		t.Errorf("expected 8.892 m, got %f", est.TotalBeadingM)
	}
	if est.LengthsNeededMin != 4 {
		t.Errorf("expected 4 lengths minimum, got %d", est.LengthsNeededMin)
	}
	if est.LengthsWithWaste != 5 {
		t.Errorf("expected 5 lengths with waste, got %d", est.LengthsWithWaste)
	}
	if est.LongestPiece != 1020.6 {
		t.Errorf("expected longest piece 1020.6, got %.1f", est.LongestPiece)
	}
	if est.PieceExceedsStock {
		t.Error("no piece should exceed a 2400mm length")
	}
	if est.PanelCount != 4 {
		t.Errorf("expected 4 panels, got %d", est.PanelCount)
	}
	if est.PanelAreaM2 != 0.692 {
		t.Errorf("expected 0.692 m2 of MDF, got %v", est.PanelAreaM2)
	}
}

func TestCalculateMaterialEstimateNoWaste(t *testing.T) {
	est := CalculateMaterialEstimate(sampleResult(), 2400, 0)
	if est.LengthsWithWaste != est.LengthsNeededMin {
		t.Errorf("expected %d lengths with 0%% waste, got %d", est.LengthsNeededMin, est.LengthsWithWaste)
	}
}

func TestCalculateMaterialEstimateShortStock(t *testing.T) {
	est := CalculateMaterialEstimate(sampleResult(), 1000, 10)
	if !est.PieceExceedsStock {
		t.Error("expected 1020.6mm strip to exceed 1000mm stock")
	}
}

func TestCalculateMaterialEstimateZeroStockLength(t *testing.T) {
	est := CalculateMaterialEstimate(sampleResult(), 0, 10)
	if est.LengthsNeededMin != 0 || est.LengthsWithWaste != 0 {
		t.Errorf("expected no length counts without a stock length, got %+v", est)
	}
	if est.TotalBeadingLength <= 0 {
		t.Error("expected the total to be reported anyway")
	}
}
