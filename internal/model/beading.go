package model

import "math"

// Round1 rounds to one decimal place, halves toward +Inf. Every figure in a
// CutResult goes through it so exported totals match a re-computation from
// the printed numbers.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// Orientation of a beading strip on the door.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Row of the 2x2 grid.
type Row string

const (
	RowTop    Row = "top"
	RowBottom Row = "bottom"
)

// PiecesPerLine is how many strips share one length: two per frame, one
// frame per column.
const PiecesPerLine = 4

// BeadingPiece is one line of the beading cut list.
type BeadingPiece struct {
	Label       string      `json:"label"`
	Row         Row         `json:"row"`
	Orientation Orientation `json:"orientation"`
	LongPoint   float64     `json:"long_point"`
	ShortPoint  float64     `json:"short_point"`
	Quantity    int         `json:"quantity"`
}

// TotalLength returns the long-point length of all pieces on this line.
func (p BeadingPiece) TotalLength() float64 {
	return p.LongPoint * float64(p.Quantity)
}

// BeadingPieces expands the result into the 16 mitred strips, grouped into
// four lines of identical length.
func (r CutResult) BeadingPieces() []BeadingPiece {
	return []BeadingPiece{
		{
			Label:       "Top horizontal",
			Row:         RowTop,
			Orientation: Horizontal,
			LongPoint:   r.TopHorizontalBeading,
			ShortPoint:  r.TopHorizontalBeadingShort,
			Quantity:    PiecesPerLine,
		},
		{
			Label:       "Top vertical",
			Row:         RowTop,
			Orientation: Vertical,
			LongPoint:   r.TopVerticalBeading,
			ShortPoint:  r.TopVerticalBeadingShort,
			Quantity:    PiecesPerLine,
		},
		{
			Label:       "Bottom horizontal",
			Row:         RowBottom,
			Orientation: Horizontal,
			LongPoint:   r.BottomHorizontalBeading,
			ShortPoint:  r.BottomHorizontalBeadingShort,
			Quantity:    PiecesPerLine,
		},
		{
			Label:       "Bottom vertical",
			Row:         RowBottom,
			Orientation: Vertical,
			LongPoint:   r.BottomVerticalBeading,
			ShortPoint:  r.BottomVerticalBeadingShort,
			Quantity:    PiecesPerLine,
		},
	}
}

// TotalBeadingLength sums the rounded long-point lengths of all 16 pieces.
func (r CutResult) TotalBeadingLength() float64 {
	var total float64
	for _, p := range r.BeadingPieces() {
		total += p.TotalLength()
	}
	return Round1(total)
}

// PanelPiece is one MDF panel line of the cut list.
type PanelPiece struct {
	Label    string  `json:"label"`
	Row      Row     `json:"row"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
}

// PanelPieces returns the two MDF panel sizes, two of each.
func (r CutResult) PanelPieces() []PanelPiece {
	return []PanelPiece{
		{Label: "Top panel", Row: RowTop, Width: r.PanelWidth, Height: r.TopPanelHeight, Quantity: 2},
		{Label: "Bottom panel", Row: RowBottom, Width: r.PanelWidth, Height: r.BottomPanelHeight, Quantity: 2},
	}
}
