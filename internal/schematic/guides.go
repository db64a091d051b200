package schematic

import "sort"

// Guide names a diagnostic overlay: the dimensions that explain how one
// input measurement changes the drawing.
type Guide string

const (
	GuideNone    Guide = ""
	GuideDoor    Guide = "door"
	GuideMargins Guide = "margins"
	GuideGaps    Guide = "gaps"
	GuideBeading Guide = "beading"
	GuidePanel   Guide = "panel"
	GuideRatio   Guide = "ratio"
	GuideHandle  Guide = "handle"
)

// fieldGuides maps DoorConfig JSON field names to the overlay that
// highlights them.
var fieldGuides = map[string]Guide{
	"door_width":      GuideDoor,
	"door_height":     GuideDoor,
	"top_margin":      GuideMargins,
	"bottom_margin":   GuideMargins,
	"left_margin":     GuideMargins,
	"right_margin":    GuideMargins,
	"horizontal_gap":  GuideGaps,
	"vertical_gap":    GuideGaps,
	"beading_width":   GuideBeading,
	"mdf_panel_width": GuidePanel,
	"top_panel_ratio": GuideRatio,
	"handle_side":     GuideHandle,
	"handle_height":   GuideHandle,
	"handle_indent":   GuideHandle,
	"handle_spread":   GuideHandle,
}

// GuideFor returns the overlay for a configuration field, or GuideNone.
func GuideFor(field string) Guide {
	return fieldGuides[field]
}

// Fields lists the configuration fields that have a guide, sorted.
func Fields() []string {
	fields := make([]string, 0, len(fieldGuides))
	for f := range fieldGuides {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
