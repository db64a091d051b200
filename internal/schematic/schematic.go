// Package schematic turns a door configuration and its cut result into
// door-space geometry (mm, origin top-left, Y down) that exporters draw.
package schematic

import (
	"fmt"

	"github.com/piwi3910/DoorBeading/internal/engine"
	"github.com/piwi3910/DoorBeading/internal/model"
)

// Rect is an axis-aligned rectangle in door coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the X of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the Y of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Line is a segment in door coordinates.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Point is a labelled location in door coordinates.
type Point struct {
	X, Y  float64
	Label string
}

// Frame is one unit: the beading frame, the MDF panel inside it and the
// four mitre joints.
type Frame struct {
	Label  string
	Outer  Rect    // Long-point outline
	Inner  Rect    // Short-point outline
	Panel  Rect    // MDF panel
	Mitres [4]Line // Outer corner to inner corner, clockwise from top-left
}

// Drawing is everything a schematic shows.
type Drawing struct {
	Door           Rect
	Frames         []Frame
	Pins           []Point
	Handle         Rect  // Backplate footprint
	HandleCenter   Point // Where the handle spindle sits
	HandleCollides bool
}

// Build lays out the schematic for a computed door.
func Build(c model.DoorConfig, r model.CutResult) Drawing {
	d := Drawing{
		Door:           Rect{W: c.DoorWidth, H: c.DoorHeight},
		HandleCollides: len(r.HandleWarnings) > 0,
	}

	for i, u := range r.UnitPositions {
		h := r.TopUnitHeight
		if i >= 2 {
			h = r.BottomUnitHeight
		}
		outer := Rect{X: u.BeadingLeftX, Y: u.BeadingY, W: u.BeadingRightX - u.BeadingLeftX, H: h}
		inner := outer.Inset(c.BeadingWidth)
		d.Frames = append(d.Frames, Frame{
			Label: u.Label,
			Outer: outer,
			Inner: inner,
			Panel: inner.Inset(r.PanelBeadingGap),
			Mitres: [4]Line{
				{outer.X, outer.Y, inner.X, inner.Y},
				{outer.Right(), outer.Y, inner.Right(), inner.Y},
				{outer.Right(), outer.Bottom(), inner.Right(), inner.Bottom()},
				{outer.X, outer.Bottom(), inner.X, inner.Bottom()},
			},
		})
		d.Pins = append(d.Pins, Point{X: u.PinX, Y: u.PinY, Label: u.Label})
	}

	half := engine.HandleBackplateHalfHeight
	if c.HandleSide == model.HandleLeft {
		d.Handle = Rect{X: 0, Y: c.HandleHeight - half, W: c.HandleSpread, H: 2 * half}
		d.HandleCenter = Point{X: c.HandleIndent, Y: c.HandleHeight, Label: "Handle"}
	} else {
		d.Handle = Rect{X: c.DoorWidth - c.HandleSpread, Y: c.HandleHeight - half, W: c.HandleSpread, H: 2 * half}
		d.HandleCenter = Point{X: c.DoorWidth - c.HandleIndent, Y: c.HandleHeight, Label: "Handle"}
	}

	return d
}

// Dimension is a measured span drawn as a guide, with its label.
type Dimension struct {
	Line
	Text string
}

// Dimensions returns the guide lines for g. Frames must be present.
func (d Drawing) Dimensions(g Guide) []Dimension {
	if len(d.Frames) < 4 {
		return nil
	}
	tl, tr, bl := d.Frames[0], d.Frames[1], d.Frames[2]

	switch g {
	case GuideDoor:
		return []Dimension{
			dim(0, -20, d.Door.W, -20, d.Door.W),
			dim(-20, 0, -20, d.Door.H, d.Door.H),
		}
	case GuideMargins:
		midX := tl.Outer.X + tl.Outer.W/2
		midY := tl.Outer.Y + tl.Outer.H/2
		return []Dimension{
			dim(midX, 0, midX, tl.Outer.Y, tl.Outer.Y),
			dim(midX, bl.Outer.Bottom(), midX, d.Door.H, d.Door.H-bl.Outer.Bottom()),
			dim(0, midY, tl.Outer.X, midY, tl.Outer.X),
			dim(tr.Outer.Right(), midY, d.Door.W, midY, d.Door.W-tr.Outer.Right()),
		}
	case GuideGaps:
		midY := tl.Outer.Y + tl.Outer.H/2
		midX := tl.Outer.X + tl.Outer.W/2
		return []Dimension{
			dim(tl.Outer.Right(), midY, tr.Outer.X, midY, tr.Outer.X-tl.Outer.Right()),
			dim(midX, tl.Outer.Bottom(), midX, bl.Outer.Y, bl.Outer.Y-tl.Outer.Bottom()),
		}
	case GuideBeading:
		x := tl.Outer.X + tl.Outer.W/2
		return []Dimension{dim(x, tl.Outer.Y, x, tl.Inner.Y, tl.Inner.Y-tl.Outer.Y)}
	case GuidePanel:
		y := tl.Panel.Y + tl.Panel.H/2
		return []Dimension{
			dim(tl.Panel.X, y, tl.Panel.Right(), y, tl.Panel.W),
			dim(tl.Inner.X, y+30, tl.Panel.X, y+30, tl.Panel.X-tl.Inner.X),
		}
	case GuideRatio:
		x := tr.Outer.Right() + 20
		return []Dimension{
			dim(x, tl.Outer.Y, x, tl.Outer.Bottom(), tl.Outer.H),
			dim(x, bl.Outer.Y, x, bl.Outer.Bottom(), bl.Outer.H),
		}
	case GuideHandle:
		y := d.Handle.Y + d.Handle.H/2
		return []Dimension{
			dim(d.Handle.X, y, d.Handle.Right(), y, d.Handle.W),
			dim(d.HandleCenter.X, 0, d.HandleCenter.X, d.HandleCenter.Y, d.HandleCenter.Y),
		}
	}
	return nil
}

func dim(x1, y1, x2, y2, length float64) Dimension {
	return Dimension{
		Line: Line{X1: x1, Y1: y1, X2: x2, Y2: y2},
		Text: fmt.Sprintf("%.1f", model.Round1(length)),
	}
}
