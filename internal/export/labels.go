package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/DoorBeading/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each beading piece label's QR code.
type LabelInfo struct {
	Door        string            `json:"door"`
	DoorID      string            `json:"door_id"`
	Piece       string            `json:"piece"`
	Row         model.Row         `json:"row"`
	Orientation model.Orientation `json:"orientation"`
	LongPoint   float64           `json:"long_point_mm"`
	ShortPoint  float64           `json:"short_point_mm"`
	Number      int               `json:"number"` // 1..Quantity within its line
	Of          int               `json:"of"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per beading strip
// (16 for a door). Each label shows the piece, its long and short point and
// which row and orientation it belongs to.
func ExportLabels(path string, door model.Door, res model.CutResult) error {
	if err := checkValid(door, res); err != nil {
		return err
	}

	labels := CollectLabelInfos(door, res)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Piece, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.DoorID, idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("%s %d/%d", info.Piece, info.Number, info.Of), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Long %.1f mm", info.LongPoint), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+8.5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("Short %.1f mm", info.ShortPoint), "", 1, "L", false, 0, "")

	// Door name, truncated to fit
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	name := info.Door
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 3, name, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos expands a result into one label per beading strip, in
// cut-list order.
func CollectLabelInfos(door model.Door, res model.CutResult) []LabelInfo {
	var labels []LabelInfo
	for _, p := range res.BeadingPieces() {
		for n := 1; n <= p.Quantity; n++ {
			labels = append(labels, LabelInfo{
				Door:        door.Name,
				DoorID:      door.ID,
				Piece:       p.Label,
				Row:         p.Row,
				Orientation: p.Orientation,
				LongPoint:   p.LongPoint,
				ShortPoint:  p.ShortPoint,
				Number:      n,
				Of:          p.Quantity,
			})
		}
	}
	return labels
}
