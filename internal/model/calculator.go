package model

import "math"

// MaterialEstimate holds the results of a beading and MDF purchasing calculation.
type MaterialEstimate struct {
	TotalBeadingLength float64 `json:"total_beading_length"` // Long point, all 16 pieces (mm)
	TotalBeadingM      float64 `json:"total_beading_m"`      // Same in metres
	StockLength        float64 `json:"stock_length"`         // Length beading is sold in (mm)
	LengthsNeededExact float64 `json:"lengths_needed_exact"` // Fractional number of stock lengths
	LengthsNeededMin   int     `json:"lengths_needed_min"`   // Ceiling of exact
	LengthsWithWaste   int     `json:"lengths_with_waste"`   // Recommended lengths including waste factor
	WastePercent       float64 `json:"waste_percent"`        // Waste factor applied (e.g., 10 for 10%)
	LongestPiece       float64 `json:"longest_piece"`        // Longest single strip (mm)
	PieceExceedsStock  bool    `json:"piece_exceeds_stock"`  // A strip is longer than one stock length
	PanelCount         int     `json:"panel_count"`
	PanelAreaM2        float64 `json:"panel_area_m2"` // Total MDF face area
}

// sqmmPerSqm is the number of square millimetres in one square metre.
const sqmmPerSqm = 1_000_000.0

// CalculateMaterialEstimate works out how many stock lengths of beading to
// buy and how much MDF the panels use. Lengths are estimated from the total
// run; mitre offcuts are covered by wastePercent.
func CalculateMaterialEstimate(r CutResult, stockLength, wastePercent float64) MaterialEstimate {
	var longest float64
	for _, p := range r.BeadingPieces() {
		longest = math.Max(longest, p.LongPoint)
	}

	var panelArea float64
	var panelCount int
	for _, p := range r.PanelPieces() {
		panelArea += p.Width * p.Height * float64(p.Quantity)
		panelCount += p.Quantity
	}

	total := r.TotalBeadingLength()
	est := MaterialEstimate{
		TotalBeadingLength: total,
		TotalBeadingM:      total / 1000.0,
		StockLength:        stockLength,
		WastePercent:       wastePercent,
		LongestPiece:       longest,
		PanelCount:         panelCount,
		PanelAreaM2:        math.Round(panelArea/sqmmPerSqm*1000) / 1000,
	}
	if stockLength <= 0 {
		return est
	}

	exact := total / stockLength
	minLengths := int(math.Ceil(exact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	withWaste := int(math.Ceil(exact * wasteFactor))
	if withWaste < minLengths {
		withWaste = minLengths
	}

	est.LengthsNeededExact = exact
	est.LengthsNeededMin = minLengths
	est.LengthsWithWaste = withWaste
	est.PieceExceedsStock = longest > stockLength
	return est
}
