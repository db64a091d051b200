package export

import (
	"fmt"

	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/piwi3910/DoorBeading/internal/schematic"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	LayerDoor    = "DOOR"
	LayerBeading = "BEADING"
	LayerPanel   = "PANEL"
	LayerPins    = "PINS"
	LayerHandle  = "HANDLE"
	LayerGuides  = "GUIDES"
)

// pinRadius is the drawn radius of a fitting pin marker (mm).
const pinRadius = 2.0

// ExportDXF writes the door schematic at 1:1 scale in millimetres. CAD
// convention puts Y up, so the drawing is flipped with the door's bottom
// edge on Y=0.
func ExportDXF(path string, door model.Door, res model.CutResult, guides ...schematic.Guide) error {
	if err := checkValid(door, res); err != nil {
		return err
	}

	s := schematic.Build(door.Config, res)
	w := &dxfWriter{d: dxf.NewDrawing(), height: s.Door.H}

	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerDoor, color.White},
		{LayerBeading, color.Yellow},
		{LayerPanel, color.Green},
		{LayerPins, color.Red},
		{LayerHandle, color.Magenta},
		{LayerGuides, color.Cyan},
	}
	for _, l := range layers {
		if _, err := w.d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	w.layer(LayerDoor)
	w.rect(s.Door)

	w.layer(LayerBeading)
	for _, f := range s.Frames {
		w.rect(f.Outer)
		w.rect(f.Inner)
		for _, m := range f.Mitres {
			w.line(m)
		}
	}

	w.layer(LayerPanel)
	for _, f := range s.Frames {
		w.rect(f.Panel)
	}

	w.layer(LayerPins)
	for _, p := range s.Pins {
		w.circle(p, pinRadius)
		w.text(p.Label, p.X+pinRadius+1, p.Y, 8)
	}

	w.layer(LayerHandle)
	w.rect(s.Handle)
	w.circle(s.HandleCenter, pinRadius)

	w.layer(LayerGuides)
	for _, g := range guides {
		for _, dm := range s.Dimensions(g) {
			w.line(dm.Line)
			w.text(dm.Text, (dm.X1+dm.X2)/2, (dm.Y1+dm.Y2)/2, 10)
		}
	}

	if w.err != nil {
		return fmt.Errorf("failed to build DXF: %w", w.err)
	}
	if err := w.d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// dxfWriter draws door-space geometry into a DXF drawing and keeps the
// first error.
type dxfWriter struct {
	d      *drawing.Drawing
	height float64
	err    error
}

func (w *dxfWriter) y(v float64) float64 { return w.height - v }

func (w *dxfWriter) layer(name string) {
	if w.err != nil {
		return
	}
	w.err = w.d.ChangeLayer(name)
}

func (w *dxfWriter) line(l schematic.Line) {
	if w.err != nil {
		return
	}
	_, w.err = w.d.Line(l.X1, w.y(l.Y1), 0, l.X2, w.y(l.Y2), 0)
}

func (w *dxfWriter) rect(r schematic.Rect) {
	w.line(schematic.Line{X1: r.X, Y1: r.Y, X2: r.Right(), Y2: r.Y})
	w.line(schematic.Line{X1: r.Right(), Y1: r.Y, X2: r.Right(), Y2: r.Bottom()})
	w.line(schematic.Line{X1: r.Right(), Y1: r.Bottom(), X2: r.X, Y2: r.Bottom()})
	w.line(schematic.Line{X1: r.X, Y1: r.Bottom(), X2: r.X, Y2: r.Y})
}

func (w *dxfWriter) circle(p schematic.Point, r float64) {
	if w.err != nil {
		return
	}
	_, w.err = w.d.Circle(p.X, w.y(p.Y), 0, r)
}

func (w *dxfWriter) text(s string, x, y, h float64) {
	if w.err != nil {
		return
	}
	_, w.err = w.d.Text(s, x, w.y(y), 0, h)
}
