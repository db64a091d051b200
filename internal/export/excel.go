package export

import (
	"fmt"

	"github.com/piwi3910/DoorBeading/internal/engine"
	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/xuri/excelize/v2"
)

// Sheet names used in exported workbooks.
const (
	SheetCutList = "Cut List"
	SheetPins    = "Fitting Pins"
)

var (
	cutListHeader = []interface{}{"Door", "Piece", "Qty", "Width / Long point (mm)", "Height / Short point (mm)", "Total length (mm)"}
	pinsHeader    = []interface{}{"Door", "Unit", "Pin X (mm)", "Pin Y (mm)", "Frame left X (mm)", "Frame right X (mm)", "Frame Y (mm)"}
)

// ExportExcel computes every door and writes a workbook with a cut list
// sheet (one block of rows per door) and a fitting pin sheet. Any invalid
// door aborts the export.
func ExportExcel(path string, doors []model.Door) error {
	if len(doors) == 0 {
		return fmt.Errorf("no doors to export")
	}

	results := make([]model.CutResult, len(doors))
	for i, d := range doors {
		results[i] = engine.ComputeCutResult(d.Config)
		if err := checkValid(d, results[i]); err != nil {
			return err
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCutList); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetPins); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	cutRows := [][]interface{}{cutListHeader}
	pinRows := [][]interface{}{pinsHeader}
	var totalRows []int

	for i, d := range doors {
		res := results[i]
		name := d.Name
		if name == "" {
			name = fmt.Sprintf("Door %d", i+1)
		}

		for _, p := range res.PanelPieces() {
			cutRows = append(cutRows, []interface{}{name, p.Label, p.Quantity, p.Width, p.Height, nil})
		}
		for _, p := range res.BeadingPieces() {
			cutRows = append(cutRows, []interface{}{name, p.Label, p.Quantity, p.LongPoint, p.ShortPoint, model.Round1(p.TotalLength())})
		}
		cutRows = append(cutRows, []interface{}{name, "Total beading", nil, nil, nil, res.TotalBeadingLength()})
		totalRows = append(totalRows, len(cutRows))
		cutRows = append(cutRows, nil)

		for _, u := range res.UnitPositions {
			pinRows = append(pinRows, []interface{}{name, u.Label, u.PinX, u.PinY, u.BeadingLeftX, u.BeadingRightX, u.BeadingY})
		}
	}

	if err := writeRows(f, SheetCutList, cutRows); err != nil {
		return err
	}
	if err := writeRows(f, SheetPins, pinRows); err != nil {
		return err
	}

	for _, sheet := range []string{SheetCutList, SheetPins} {
		if err := f.SetCellStyle(sheet, "A1", "G1", bold); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
		if err := f.SetColWidth(sheet, "A", "G", 20); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	for _, row := range totalRows {
		cell, _ := excelize.CoordinatesToCellName(2, row)
		end, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(SheetCutList, cell, end, bold); err != nil {
			return fmt.Errorf("failed to style total: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
