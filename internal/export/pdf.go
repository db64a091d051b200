package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/piwi3910/DoorBeading/internal/schematic"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 12.0
	marginBottom = 12.0
	headerHeight = 10.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	drawWidth    = 88.0
	tableLeft    = marginLeft + drawWidth + 12.0
	tableWidth   = pageWidth - marginRight - tableLeft
)

// ExportPDF writes a one-page cut sheet for a door: a scaled schematic with
// the requested guide dimensions, the panel and beading tables, fitting
// pin positions and any handle warnings.
func ExportPDF(path string, door model.Door, res model.CutResult, guides ...schematic.Guide) error {
	if err := checkValid(door, res); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	title := "Door Beading Cut Sheet"
	if door.Name != "" {
		title += ": " + door.Name
	}
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	c := door.Config
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Door %.0f x %.0f mm | Beading %.1f mm | Rows %.0f/%.0f %% | Handle %s at %.0f mm",
		c.DoorWidth, c.DoorHeight, c.BeadingWidth, c.TopPanelRatio, c.BottomPanelRatio(), c.HandleSide, c.HandleHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawing := schematic.Build(c, res)
	drawSchematic(pdf, drawing, guides)

	y := drawAreaTop
	y = drawPanelTable(pdf, res, y)
	y = drawBeadingTable(pdf, res, y+6)
	y = drawPinTable(pdf, res, y+6)
	drawWarnings(pdf, res, y+6)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by DoorBeading - overlay beading cut list", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

// drawSchematic renders the door outline, frames, panels, pins and handle
// footprint scaled into the left column.
func drawSchematic(pdf *fpdf.Fpdf, d schematic.Drawing, guides []schematic.Guide) {
	drawHeight := pageHeight - drawAreaTop - marginBottom - 10
	scale := math.Min(drawWidth/d.Door.W, drawHeight/d.Door.H)
	offsetX := marginLeft + (drawWidth-d.Door.W*scale)/2
	offsetY := drawAreaTop

	px := func(x float64) float64 { return offsetX + x*scale }
	py := func(y float64) float64 { return offsetY + y*scale }
	rect := func(r schematic.Rect, style string) {
		pdf.Rect(px(r.X), py(r.Y), r.W*scale, r.H*scale, style)
	}

	// Door leaf
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.5)
	rect(d.Door, "FD")

	for _, f := range d.Frames {
		// Beading strip between long and short point
		pdf.SetFillColor(210, 180, 140)
		pdf.SetDrawColor(90, 60, 30)
		pdf.SetLineWidth(0.2)
		rect(f.Outer, "FD")
		pdf.SetFillColor(245, 240, 230)
		rect(f.Inner, "FD")
		for _, m := range f.Mitres {
			pdf.Line(px(m.X1), py(m.Y1), px(m.X2), py(m.Y2))
		}

		pdf.SetFillColor(200, 220, 200)
		pdf.SetDrawColor(40, 100, 40)
		rect(f.Panel, "FD")
	}

	// Handle backplate footprint
	if d.HandleCollides {
		pdf.SetDrawColor(200, 0, 0)
	} else {
		pdf.SetDrawColor(120, 120, 120)
	}
	pdf.SetLineWidth(0.3)
	rect(d.Handle, "D")
	pdf.Circle(px(d.HandleCenter.X), py(d.HandleCenter.Y), 1.2, "D")

	pdf.SetFillColor(200, 0, 0)
	for _, p := range d.Pins {
		pdf.Circle(px(p.X), py(p.Y), 0.8, "F")
	}

	// Guide dimensions
	pdf.SetDrawColor(33, 150, 243)
	pdf.SetTextColor(33, 150, 243)
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "", 6)
	for _, g := range guides {
		for _, dm := range d.Dimensions(g) {
			x1, y1, x2, y2 := px(dm.X1), py(dm.Y1), px(dm.X2), py(dm.Y2)
			pdf.Line(x1, y1, x2, y2)
			w := pdf.GetStringWidth(dm.Text)
			pdf.SetXY((x1+x2)/2-w/2, (y1+y2)/2-2)
			pdf.CellFormat(w, 3, dm.Text, "", 0, "C", false, 0, "")
		}
	}

	// Overall size annotations
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	canvasW := d.Door.W * scale
	canvasH := d.Door.H * scale
	widthLabel := fmt.Sprintf("%.0f mm", d.Door.W)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", d.Door.H)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawTable renders a bordered table with a shaded header and returns the
// Y below it.
func drawTable(pdf *fpdf.Fpdf, title string, y float64, colWidths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(tableLeft, y)
	pdf.CellFormat(tableWidth, 6, title, "", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	x := tableLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 5, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 5

	pdf.SetFont("Helvetica", "", 8)
	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x = tableLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 5
	}
	return y
}

func drawPanelTable(pdf *fpdf.Fpdf, res model.CutResult, y float64) float64 {
	var rows [][]string
	for _, p := range res.PanelPieces() {
		rows = append(rows, []string{p.Label, fmt.Sprintf("%.1f", p.Width), fmt.Sprintf("%.1f", p.Height), fmt.Sprintf("%d", p.Quantity)})
	}
	y = drawTable(pdf, "MDF Panels", y, []float64{30, 18, 18, 10}, []string{"Panel", "Width", "Height", "Qty"}, rows)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(tableLeft, y+1)
	pdf.CellFormat(tableWidth, 4, fmt.Sprintf("Panel-to-beading gap: %.1f mm", res.PanelBeadingGap), "", 0, "L", false, 0, "")
	return y + 5
}

func drawBeadingTable(pdf *fpdf.Fpdf, res model.CutResult, y float64) float64 {
	var rows [][]string
	for _, p := range res.BeadingPieces() {
		rows = append(rows, []string{p.Label, fmt.Sprintf("%.1f", p.LongPoint), fmt.Sprintf("%.1f", p.ShortPoint), fmt.Sprintf("%d", p.Quantity)})
	}
	y = drawTable(pdf, "Beading (45\xb0 mitre)", y, []float64{30, 18, 18, 10}, []string{"Piece", "Long pt", "Short pt", "Qty"}, rows)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(tableLeft, y+1)
	pdf.CellFormat(tableWidth, 4, fmt.Sprintf("Total beading: %.1f mm", res.TotalBeadingLength()), "", 0, "L", false, 0, "")
	return y + 5
}

func drawPinTable(pdf *fpdf.Fpdf, res model.CutResult, y float64) float64 {
	var rows [][]string
	for _, u := range res.UnitPositions {
		rows = append(rows, []string{u.Label, fmt.Sprintf("%.1f", u.PinX), fmt.Sprintf("%.1f", u.PinY)})
	}
	return drawTable(pdf, "Fitting Pins", y, []float64{34, 21, 21}, []string{"Unit", "X", "Y"}, rows)
}

func drawWarnings(pdf *fpdf.Fpdf, res model.CutResult, y float64) {
	if len(res.HandleWarnings) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(200, 0, 0)
	pdf.SetXY(tableLeft, y)
	pdf.CellFormat(tableWidth, 6, "WARNING: Handle clearance", "", 0, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(0, 0, 0)
	for _, w := range res.HandleWarnings {
		pdf.SetXY(tableLeft, y)
		pdf.MultiCell(tableWidth, 3.5, w, "", "L", false)
		y = pdf.GetY() + 1
	}
}
