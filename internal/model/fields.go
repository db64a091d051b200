package model

// MeasurementFields lists the numeric DoorConfig fields by JSON name, in
// declaration order.
var MeasurementFields = []string{
	"door_width", "door_height",
	"top_margin", "bottom_margin", "left_margin", "right_margin",
	"horizontal_gap", "vertical_gap",
	"beading_width", "mdf_panel_width", "top_panel_ratio",
	"handle_height", "handle_indent", "handle_spread",
}

// field returns a pointer to the numeric field with the given JSON name.
func (c *DoorConfig) field(name string) *float64 {
	switch name {
	case "door_width":
		return &c.DoorWidth
	case "door_height":
		return &c.DoorHeight
	case "top_margin":
		return &c.TopMargin
	case "bottom_margin":
		return &c.BottomMargin
	case "left_margin":
		return &c.LeftMargin
	case "right_margin":
		return &c.RightMargin
	case "horizontal_gap":
		return &c.HorizontalGap
	case "vertical_gap":
		return &c.VerticalGap
	case "beading_width":
		return &c.BeadingWidth
	case "mdf_panel_width":
		return &c.MDFPanelWidth
	case "top_panel_ratio":
		return &c.TopPanelRatio
	case "handle_height":
		return &c.HandleHeight
	case "handle_indent":
		return &c.HandleIndent
	case "handle_spread":
		return &c.HandleSpread
	}
	return nil
}

// SetField sets a numeric measurement by JSON name. It reports false for
// unknown names, including handle_side.
func (c *DoorConfig) SetField(name string, v float64) bool {
	p := c.field(name)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Field returns a numeric measurement by JSON name.
func (c DoorConfig) Field(name string) (float64, bool) {
	p := c.field(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}
