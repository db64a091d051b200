// Package importer provides CSV and Excel import of door lists. Each row is
// one door; columns are matched by header name, case-insensitively, and
// any measurement without a column keeps its value from the base
// configuration.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/DoorBeading/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Doors    []model.Door
	Errors   []string
	Warnings []string
}

// Options control how rows become doors.
type Options struct {
	Base      model.DoorConfig // Values for columns the file does not have
	Inventory model.Inventory  // Beading profiles the "profile" column may name
}

// DefaultOptions starts from the default door and the default inventory.
func DefaultOptions() Options {
	return Options{Base: model.DefaultDoorConfig(), Inventory: model.DefaultInventory()}
}

// Column roles besides the DoorConfig fields.
const (
	colName    = "name"
	colProfile = "profile"
)

// ColumnMapping maps a column role (a DoorConfig JSON field name, "name"
// or "profile") to its index in the data.
type ColumnMapping map[string]int

// Index returns the column for role, or -1.
func (m ColumnMapping) Index(role string) int {
	if i, ok := m[role]; ok {
		return i
	}
	return -1
}

// columnOrder is the positional layout used when a file has no header.
var columnOrder = []string{
	colName,
	"door_width", "door_height",
	"top_margin", "bottom_margin", "left_margin", "right_margin",
	"horizontal_gap", "vertical_gap",
	"beading_width", "mdf_panel_width", "top_panel_ratio",
	"handle_side", "handle_height", "handle_indent", "handle_spread",
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	colName:           {"name", "door", "label", "door name", "description", "room"},
	colProfile:        {"profile", "beading", "beading profile", "moulding", "molding"},
	"door_width":      {"door_width", "door width", "width", "w"},
	"door_height":     {"door_height", "door height", "height", "h"},
	"top_margin":      {"top_margin", "top margin", "top"},
	"bottom_margin":   {"bottom_margin", "bottom margin", "bottom"},
	"left_margin":     {"left_margin", "left margin", "left"},
	"right_margin":    {"right_margin", "right margin", "right"},
	"horizontal_gap":  {"horizontal_gap", "horizontal gap", "column gap", "h gap"},
	"vertical_gap":    {"vertical_gap", "vertical gap", "row gap", "v gap"},
	"beading_width":   {"beading_width", "beading width", "bead width", "moulding width"},
	"mdf_panel_width": {"mdf_panel_width", "mdf panel width", "panel width", "mdf width", "panel"},
	"top_panel_ratio": {"top_panel_ratio", "top panel ratio", "ratio", "top ratio", "top %"},
	"handle_side":     {"handle_side", "handle side", "side", "hand"},
	"handle_height":   {"handle_height", "handle height"},
	"handle_indent":   {"handle_indent", "handle indent", "indent"},
	"handle_spread":   {"handle_spread", "handle spread", "spread", "backplate"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// returns the positional layout and false when no cell names a known
// column or any cell is a number.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{}

	numeric := false
	for i, cell := range row {
		if _, err := parseNumber(cell); err == nil {
			numeric = true
		}
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				if _, taken := mapping[role]; !taken {
					mapping[role] = i
				}
			}
		}
	}

	if len(mapping) == 0 || numeric {
		positional := ColumnMapping{}
		for i, role := range columnOrder {
			positional[role] = i
		}
		return positional, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts a decimal comma as well as a point.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "mm")
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// parseRow builds a Door from a row. It returns the door, an error message
// that rejects the row, and warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, doorCount int, opts Options) (model.Door, string, []string) {
	var warnings []string
	cfg := opts.Base

	name := getCell(row, mapping.Index(colName))
	if name == "" {
		name = fmt.Sprintf("Door %d", doorCount+1)
	}

	// The profile sets the beading width; an explicit beading_width column wins.
	if profile := getCell(row, mapping.Index(colProfile)); profile != "" {
		if bp := opts.Inventory.FindBeadingByName(profile); bp != nil {
			bp.ApplyToConfig(&cfg)
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown beading profile '%s', keeping %.1fmm", rowLabel, profile, cfg.BeadingWidth))
		}
	}

	for _, field := range model.MeasurementFields {
		s := getCell(row, mapping.Index(field))
		if s == "" {
			continue
		}
		v, err := parseNumber(s)
		if err != nil {
			return model.Door{}, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, strings.ReplaceAll(field, "_", " "), s), nil
		}
		cfg.SetField(field, v)
	}

	if s := getCell(row, mapping.Index("handle_side")); s != "" {
		side, ok := model.ParseHandleSide(s)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown handle side '%s', keeping %s", rowLabel, s, cfg.HandleSide))
		} else {
			cfg.HandleSide = side
		}
	}

	if err := cfg.Validate(); err != nil {
		return model.Door{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}

	return model.NewDoor(name, cfg), "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports doors from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, opts Options) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings, opts)
}

// ImportCSVFromReader imports doors from a CSV reader with a specific delimiter.
// This is useful for piping data in or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune, opts Options) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil, opts)
}

// ImportExcel imports doors from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, opts Options) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil, opts)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a door.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string, opts Options) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var defaulted []string
		for _, field := range columnOrder[1:] {
			if mapping.Index(field) == -1 && !(field == "beading_width" && mapping.Index(colProfile) != -1) {
				defaulted = append(defaulted, field)
			}
		}
		if len(defaulted) == len(columnOrder)-1 && mapping.Index(colProfile) == -1 {
			result.Errors = append(result.Errors, "No door measurement columns found in header")
			return result
		}
		if len(defaulted) > 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Using default values for: %s", strings.Join(defaulted, ", ")))
		}
	} else if len(rows[0]) >= 2 {
		// No known header: a non-numeric width means an unrecognized header row.
		if _, err := parseNumber(rows[0][1]); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		door, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Doors), opts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Doors = append(result.Doors, door)
	}

	if len(result.Doors) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}

	return result
}
