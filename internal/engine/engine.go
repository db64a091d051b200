// Package engine derives the beading cut list for a four-panel door overlay.
//
// The layout is always a 2x2 grid of units. Each unit is a mitred beading
// frame around an MDF panel, with the same gap between panel and beading on
// every side of every unit. The gap is solved from the width axis and reused
// on the height axis.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/DoorBeading/internal/model"
)

// HandleBackplateHalfHeight is half the height of the handle hardware, used
// for the collision check against the beading rows.
const HandleBackplateHalfHeight = 80.0

// layout holds the unrounded intermediate figures of one computation.
type layout struct {
	availableWidth    float64
	availableHeight   float64
	unitWidth         float64
	gap               float64
	topUnitHeight     float64
	bottomUnitHeight  float64
	topPanelHeight    float64
	bottomPanelHeight float64
}

func deriveLayout(c model.DoorConfig) layout {
	var l layout
	l.availableWidth = c.DoorWidth - c.LeftMargin - c.RightMargin - c.HorizontalGap
	l.availableHeight = c.DoorHeight - c.TopMargin - c.BottomMargin - c.VerticalGap

	l.unitWidth = l.availableWidth / 2
	l.gap = (l.unitWidth - 2*c.BeadingWidth - c.MDFPanelWidth) / 2

	l.topUnitHeight = l.availableHeight * c.TopPanelRatio / 100
	l.bottomUnitHeight = l.availableHeight * (100 - c.TopPanelRatio) / 100

	// The width-derived gap is applied to the height axis as well.
	l.topPanelHeight = l.topUnitHeight - 2*c.BeadingWidth - 2*l.gap
	l.bottomPanelHeight = l.bottomUnitHeight - 2*c.BeadingWidth - 2*l.gap
	return l
}

// ComputeCutResult derives panel sizes, beading lengths, fitting pins and
// diagnostics from a door configuration. It accepts any input: impossible
// layouts come back with IsValid false and the offending numbers intact.
// The function is pure and safe to call from any goroutine.
func ComputeCutResult(c model.DoorConfig) model.CutResult {
	l := deriveLayout(c)
	b := c.BeadingWidth
	r1 := model.Round1

	res := model.CutResult{
		AvailableWidth:   r1(l.availableWidth),
		AvailableHeight:  r1(l.availableHeight),
		PanelUnitWidth:   r1(l.unitWidth),
		TopUnitHeight:    r1(l.topUnitHeight),
		BottomUnitHeight: r1(l.bottomUnitHeight),

		PanelWidth:        r1(c.MDFPanelWidth),
		TopPanelHeight:    r1(l.topPanelHeight),
		BottomPanelHeight: r1(l.bottomPanelHeight),

		// Horizontal strips span the unit corner to corner on their outer edge.
		TopHorizontalBeading:    r1(l.unitWidth),
		TopVerticalBeading:      r1(l.topUnitHeight),
		BottomHorizontalBeading: r1(l.unitWidth),
		BottomVerticalBeading:   r1(l.bottomUnitHeight),

		// Each mitred end is set back by the strip's own width.
		TopHorizontalBeadingShort:    r1(l.unitWidth - 2*b),
		TopVerticalBeadingShort:      r1(l.topUnitHeight - 2*b),
		BottomHorizontalBeadingShort: r1(l.unitWidth - 2*b),
		BottomVerticalBeadingShort:   r1(l.bottomUnitHeight - 2*b),

		PanelBeadingGap: r1(l.gap),
	}

	res.Errors = validate(c, l)
	res.IsValid = len(res.Errors) == 0
	res.HandleWarnings = handleWarnings(c, l)
	res.UnitPositions = unitPositions(c, l)
	return res
}

// validate returns the blocking errors for a layout. Each message names the
// measurement most likely to fix it.
func validate(c model.DoorConfig, l layout) []string {
	errs := []string{}
	for _, name := range model.MeasurementFields {
		if v, _ := c.Field(name); math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("%s must be a finite number, got %v. Enter a measurement in mm.", name, v))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	// Comparisons are written so that NaN fails them.
	if !(c.MDFPanelWidth > 0) {
		errs = append(errs, "MDF panel width must be greater than 0mm. Enter the width of the inset panel.")
	}
	if !(l.gap >= 0) {
		errs = append(errs, fmt.Sprintf(
			"Panel too wide: %smm panel plus 2 x %smm beading needs %smm but each unit is only %smm wide. "+
				"Reduce the panel width to %smm or less, or reduce the beading width, side margins or horizontal gap.",
			mm(c.MDFPanelWidth), mm(c.BeadingWidth), mm(c.MDFPanelWidth+2*c.BeadingWidth),
			mm(l.unitWidth), mm(maxPanelWidth(c, l))))
	}
	if !(l.topPanelHeight > 0) {
		errs = append(errs, fmt.Sprintf(
			"Top panel height is %smm. Increase the top panel ratio or door height, or reduce the top margin, vertical gap or beading width.",
			mm(l.topPanelHeight)))
	}
	if !(l.bottomPanelHeight > 0) {
		errs = append(errs, fmt.Sprintf(
			"Bottom panel height is %smm. Decrease the top panel ratio or increase the door height, or reduce the bottom margin, vertical gap or beading width.",
			mm(l.bottomPanelHeight)))
	}
	return errs
}

// handleWarnings checks whether the handle hardware reaches past the margin
// on its side at the height of either beading row. Warnings never affect
// validity.
func handleWarnings(c model.DoorConfig, l layout) []string {
	warnings := []string{}
	margin := c.HandleMargin()
	if c.HandleSpread <= margin {
		return warnings
	}

	handleTop := c.HandleHeight - HandleBackplateHalfHeight
	handleBottom := c.HandleHeight + HandleBackplateHalfHeight

	topStart := c.TopMargin
	topEnd := c.TopMargin + l.topUnitHeight
	bottomStart := topEnd + c.VerticalGap
	bottomEnd := c.DoorHeight - c.BottomMargin

	var rows []string
	if overlaps(handleTop, handleBottom, topStart, topEnd) {
		rows = append(rows, string(model.RowTop))
	}
	if overlaps(handleTop, handleBottom, bottomStart, bottomEnd) {
		rows = append(rows, string(model.RowBottom))
	}
	if len(rows) == 0 {
		return warnings
	}

	return append(warnings, fmt.Sprintf(
		"Handle on the %s side reaches %smm into the beading of the %s row (spread %smm, %s margin %smm). "+
			"Increase the %s margin to at least %smm or move the handle clear of the panels.",
		c.HandleSide, mm(c.HandleSpread-margin), strings.Join(rows, " and "),
		mm(c.HandleSpread), c.HandleSide, mm(margin),
		c.HandleSide, mm(c.HandleSpread)))
}

// overlaps reports whether the open intervals (a0, a1) and (b0, b1) intersect.
func overlaps(a0, a1, b0, b1 float64) bool {
	return a1 > b0 && a0 < b1
}

// unitPositions places the four frames on the door in row-major order. The
// fitting pin sits at the horizontal centre of the unit, halfway across the
// top beading strip.
func unitPositions(c model.DoorConfig, l layout) []model.UnitPosition {
	r1 := model.Round1
	colX := [2]float64{c.LeftMargin, c.LeftMargin + l.unitWidth + c.HorizontalGap}
	rowY := [2]float64{c.TopMargin, c.TopMargin + l.topUnitHeight + c.VerticalGap}

	units := make([]model.UnitPosition, 0, len(model.UnitLabels))
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			x, y := colX[col], rowY[row]
			units = append(units, model.UnitPosition{
				Label:         model.UnitLabels[row*2+col],
				BeadingLeftX:  r1(x),
				BeadingRightX: r1(x + l.unitWidth),
				BeadingY:      r1(y),
				PinX:          r1(x + l.unitWidth/2),
				PinY:          r1(y + c.BeadingWidth/2),
			})
		}
	}
	return units
}

// MaxPanelWidth returns the widest MDF panel, in whole tenths of a
// millimetre, that still leaves a gap of zero or more to the beading.
func MaxPanelWidth(c model.DoorConfig) float64 {
	return maxPanelWidth(c, deriveLayout(c))
}

func maxPanelWidth(c model.DoorConfig, l layout) float64 {
	// Round down; the epsilon keeps exact tenths from dropping a step.
	return math.Floor((l.unitWidth-2*c.BeadingWidth)*10+1e-6) / 10
}

// mm formats a length for messages: one decimal, trailing zero dropped.
func mm(v float64) string {
	return strconv.FormatFloat(model.Round1(v), 'f', -1, 64)
}
