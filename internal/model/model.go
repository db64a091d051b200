package model

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// HandleSide is the door edge the handle is mounted on.
type HandleSide string

const (
	HandleLeft  HandleSide = "left"
	HandleRight HandleSide = "right"
)

func (s HandleSide) String() string {
	return string(s)
}

// DoorConfig holds the measurements a four-panel overlay is derived from.
// All lengths are in mm, measured on the face of the door.
type DoorConfig struct {
	DoorWidth  float64 `json:"door_width" yaml:"door_width"`
	DoorHeight float64 `json:"door_height" yaml:"door_height"`

	// Offsets from the door edge to the outer edge of the beading frames
	TopMargin    float64 `json:"top_margin" yaml:"top_margin"`
	BottomMargin float64 `json:"bottom_margin" yaml:"bottom_margin"`
	LeftMargin   float64 `json:"left_margin" yaml:"left_margin"`
	RightMargin  float64 `json:"right_margin" yaml:"right_margin"`

	HorizontalGap float64 `json:"horizontal_gap" yaml:"horizontal_gap"` // Between the two columns
	VerticalGap   float64 `json:"vertical_gap" yaml:"vertical_gap"`     // Between the two rows

	BeadingWidth  float64 `json:"beading_width" yaml:"beading_width"`
	MDFPanelWidth float64 `json:"mdf_panel_width" yaml:"mdf_panel_width"`
	TopPanelRatio float64 `json:"top_panel_ratio" yaml:"top_panel_ratio"` // Percent of the available height given to the top row

	HandleSide   HandleSide `json:"handle_side" yaml:"handle_side"`
	HandleHeight float64    `json:"handle_height" yaml:"handle_height"` // Handle centre from the door top
	HandleIndent float64    `json:"handle_indent" yaml:"handle_indent"` // Handle centre from the handle-side edge
	HandleSpread float64    `json:"handle_spread" yaml:"handle_spread"` // Reach of the hardware from the door edge
}

// DefaultDoorConfig returns the measurements of a standard 762 x 1981 mm
// internal door.
func DefaultDoorConfig() DoorConfig {
	return DoorConfig{
		DoorWidth:     762,
		DoorHeight:    1981,
		TopMargin:     100,
		BottomMargin:  100,
		LeftMargin:    80,
		RightMargin:   80,
		HorizontalGap: 80,
		VerticalGap:   80,
		BeadingWidth:  20,
		MDFPanelWidth: 215,
		TopPanelRatio: 40,
		HandleSide:    HandleRight,
		HandleHeight:  1000,
		HandleIndent:  60,
		HandleSpread:  60,
	}
}

// BottomPanelRatio is the share of the available height given to the bottom row.
func (c DoorConfig) BottomPanelRatio() float64 {
	return 100 - c.TopPanelRatio
}

// HandleMargin returns the margin on the side the handle is mounted.
func (c DoorConfig) HandleMargin() float64 {
	if c.HandleSide == HandleLeft {
		return c.LeftMargin
	}
	return c.RightMargin
}

// Validate checks that a configuration read from a file or a form is
// physically meaningful. The cut engine accepts any configuration; this is
// for loaders that want to reject typos before computing.
func (c DoorConfig) Validate() error {
	for _, name := range MeasurementFields {
		if v, _ := c.Field(name); math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", name, v)
		}
	}
	if c.DoorWidth <= 0 || c.DoorHeight <= 0 {
		return fmt.Errorf("door width and height must be > 0")
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"top margin", c.TopMargin},
		{"bottom margin", c.BottomMargin},
		{"left margin", c.LeftMargin},
		{"right margin", c.RightMargin},
		{"horizontal gap", c.HorizontalGap},
		{"vertical gap", c.VerticalGap},
		{"beading width", c.BeadingWidth},
		{"MDF panel width", c.MDFPanelWidth},
		{"handle height", c.HandleHeight},
		{"handle indent", c.HandleIndent},
		{"handle spread", c.HandleSpread},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%s must be >= 0, got %.1f", f.name, f.value)
		}
	}
	if c.TopPanelRatio < 0 || c.TopPanelRatio > 100 {
		return fmt.Errorf("top panel ratio must be between 0 and 100, got %.1f", c.TopPanelRatio)
	}
	if c.HandleSide != HandleLeft && c.HandleSide != HandleRight {
		return fmt.Errorf("handle side must be %q or %q, got %q", HandleLeft, HandleRight, c.HandleSide)
	}
	return nil
}

// ParseHandleSide converts user input into a HandleSide.
func ParseHandleSide(s string) (HandleSide, bool) {
	switch s {
	case "left", "Left", "LEFT", "l", "L":
		return HandleLeft, true
	case "right", "Right", "RIGHT", "r", "R":
		return HandleRight, true
	default:
		return "", false
	}
}

// Door is a named configuration, the unit the CLI and exporters work on.
type Door struct {
	ID     string     `json:"id" yaml:"id"`
	Name   string     `json:"name" yaml:"name"`
	Config DoorConfig `json:"config" yaml:"config"`
}

func NewDoor(name string, cfg DoorConfig) Door {
	return Door{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Config: cfg,
	}
}

// UnitPosition locates one quadrant's beading frame on the door, measured
// from the door's top-left corner.
type UnitPosition struct {
	Label         string  `json:"label"`
	BeadingLeftX  float64 `json:"beading_left_x"`  // Long point, left end of the top strip
	BeadingRightX float64 `json:"beading_right_x"` // Long point, right end of the top strip
	BeadingY      float64 `json:"beading_y"`       // Outer edge of the top strip
	PinX          float64 `json:"pin_x"`
	PinY          float64 `json:"pin_y"`
}

// Unit labels in row-major order.
const (
	UnitTopLeft     = "Top-Left"
	UnitTopRight    = "Top-Right"
	UnitBottomLeft  = "Bottom-Left"
	UnitBottomRight = "Bottom-Right"
)

// UnitLabels lists the grid cells in row-major order.
var UnitLabels = []string{UnitTopLeft, UnitTopRight, UnitBottomLeft, UnitBottomRight}

// CutResult is everything derived from one DoorConfig. Numbers are rounded
// to one decimal. When IsValid is false the numbers are kept for display
// but must not be exported as a cut list.
type CutResult struct {
	// Layout
	AvailableWidth   float64 `json:"available_width"`
	AvailableHeight  float64 `json:"available_height"`
	PanelUnitWidth   float64 `json:"panel_unit_width"`
	TopUnitHeight    float64 `json:"top_unit_height"`
	BottomUnitHeight float64 `json:"bottom_unit_height"`

	// MDF panels
	PanelWidth        float64 `json:"panel_width"`
	TopPanelHeight    float64 `json:"top_panel_height"`
	BottomPanelHeight float64 `json:"bottom_panel_height"`

	// Beading, long point
	TopHorizontalBeading    float64 `json:"top_horizontal_beading"`
	TopVerticalBeading      float64 `json:"top_vertical_beading"`
	BottomHorizontalBeading float64 `json:"bottom_horizontal_beading"`
	BottomVerticalBeading   float64 `json:"bottom_vertical_beading"`

	// Beading, short point
	TopHorizontalBeadingShort    float64 `json:"top_horizontal_beading_short"`
	TopVerticalBeadingShort      float64 `json:"top_vertical_beading_short"`
	BottomHorizontalBeadingShort float64 `json:"bottom_horizontal_beading_short"`
	BottomVerticalBeadingShort   float64 `json:"bottom_vertical_beading_short"`

	PanelBeadingGap float64 `json:"panel_beading_gap"`

	UnitPositions  []UnitPosition `json:"unit_positions"`
	HandleWarnings []string       `json:"handle_warnings"`
	IsValid        bool           `json:"is_valid"`
	Errors         []string       `json:"errors"`
}

// Unit returns the position with the given label, or false.
func (r CutResult) Unit(label string) (UnitPosition, bool) {
	for _, u := range r.UnitPositions {
		if u.Label == label {
			return u, true
		}
	}
	return UnitPosition{}, false
}
