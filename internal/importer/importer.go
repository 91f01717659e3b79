// Package importer provides CSV and Excel import functionality for cut lists.
// It supports automatic delimiter detection, flexible column mapping,
// case-insensitive header recognition and unit suffixes in headers such as
// "Length (inch)".
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// DefaultThickness is used for rows without a thickness value (3/4").
const DefaultThickness = 19.05

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Parts    []model.Part
	Stock    []model.StockPiece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// Unit is set when a dimension header names its unit.
type ColumnMapping struct {
	Type      int
	Name      int
	Length    int
	Width     int
	Thickness int
	Quantity  int
	Material  int
	Cost      int
	Grain     int
	Unit      units.Unit
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"type":      {"type", "kind", "row type"},
	"name":      {"name", "label", "part", "part name", "description", "desc", "piece", "item"},
	"length":    {"length", "len", "l", "height", "h"},
	"width":     {"width", "w", "depth", "d"},
	"thickness": {"thickness", "thick", "thk", "t"},
	"quantity":  {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"material":  {"material", "mat", "species", "stock material"},
	"cost":      {"cost", "price", "cost per board"},
	"grain":     {"grain", "grain direction", "grain dir", "direction"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := newCSVReader(bytes.NewReader(data), delim)
		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
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

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// splitHeader separates "Length (inch)" into "length" and the unit text.
func splitHeader(cell string) (string, string) {
	name := strings.ToLower(strings.TrimSpace(cell))
	open := strings.LastIndex(name, "(")
	if open < 0 || !strings.HasSuffix(name, ")") {
		return name, ""
	}
	return strings.TrimSpace(name[:open]), strings.TrimSpace(name[open+1 : len(name)-1])
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (Name, Length, Width, Quantity, Material) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Type: -1, Name: -1, Length: -1, Width: -1, Thickness: -1,
		Quantity: -1, Material: -1, Cost: -1, Grain: -1,
	}
	slots := map[string]*int{
		"type":      &mapping.Type,
		"name":      &mapping.Name,
		"length":    &mapping.Length,
		"width":     &mapping.Width,
		"thickness": &mapping.Thickness,
		"quantity":  &mapping.Quantity,
		"material":  &mapping.Material,
		"cost":      &mapping.Cost,
		"grain":     &mapping.Grain,
	}

	isHeader := false
	for i, cell := range row {
		name, unitText := splitHeader(cell)
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if name != alias {
					continue
				}
				isHeader = true
				if *slots[role] == -1 {
					*slots[role] = i
				}
				if unitText != "" && mapping.Unit == "" {
					if u, err := units.ParseUnit(unitText); err == nil {
						mapping.Unit = u
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Type: -1, Name: 0, Length: 1, Width: 2, Thickness: -1,
			Quantity: 3, Material: 4, Cost: -1, Grain: -1,
		}, false
	}

	return mapping, true
}

// parseGrain converts a grain column value into the GrainDirection flag.
// It returns the flag and whether the text was recognized.
func parseGrain(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "x", "1", "length", "lengthwise":
		return true, true
	case "", "no", "n", "false", "0", "none", "-":
		return false, true
	default:
		return false, false
	}
}

// isStockType reports whether a Type cell marks a stock row.
func isStockType(s string) (stock bool, known bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stock", "board", "sheet", "s":
		return true, true
	case "", "part", "p", "cut":
		return false, true
	}
	return false, false
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// rowParser converts rows with a fixed mapping and unit.
type rowParser struct {
	mapping ColumnMapping
	unit    units.Unit
}

func (rp rowParser) dimension(row []string, idx int, field, rowLabel string, required bool) (float64, string) {
	text := getCell(row, idx)
	if text == "" {
		if required {
			return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field)
		}
		return 0, ""
	}
	v, err := units.ParseDimension(text, rp.unit)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, text)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(field[:1])+field[1:])
	}
	return v, ""
}

// parsed is one successfully converted row.
type parsed struct {
	part    *model.Part
	stock   *model.StockPiece
	warning string
}

// parseRow extracts a Part or StockPiece from a row.
// Returns the parsed value, or an error message.
func (rp rowParser) parseRow(row []string, rowLabel string, index int) (parsed, string) {
	var out parsed
	m := rp.mapping

	typeText := getCell(row, m.Type)
	isStock, known := isStockType(typeText)
	if !known {
		out.warning = fmt.Sprintf("%s: Unknown type '%s', treating as part", rowLabel, typeText)
	}

	length, errMsg := rp.dimension(row, m.Length, "length", rowLabel, true)
	if errMsg != "" {
		return out, errMsg
	}
	width, errMsg := rp.dimension(row, m.Width, "width", rowLabel, true)
	if errMsg != "" {
		return out, errMsg
	}
	thickness, errMsg := rp.dimension(row, m.Thickness, "thickness", rowLabel, false)
	if errMsg != "" {
		return out, errMsg
	}
	if thickness == 0 {
		thickness = DefaultThickness
	}

	qty := 1
	if qtyStr := getCell(row, m.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			return out, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr)
		}
		if n <= 0 {
			return out, fmt.Sprintf("%s: Quantity must be positive", rowLabel)
		}
		qty = n
	}

	name := getCell(row, m.Name)
	material := getCell(row, m.Material)

	if isStock {
		if name == "" {
			name = fmt.Sprintf("Stock %d", index+1)
		}
		s := model.NewStockPiece(name, length, width, qty)
		s.Thickness = thickness
		s.Material = material
		if costStr := getCell(row, m.Cost); costStr != "" {
			cost, err := strconv.ParseFloat(strings.TrimPrefix(costStr, "$"), 64)
			if err != nil || cost < 0 {
				return out, fmt.Sprintf("%s: Invalid cost '%s'", rowLabel, costStr)
			}
			s.Cost = cost
		}
		out.stock = &s
		return out, ""
	}

	if name == "" {
		name = fmt.Sprintf("Part %d", index+1)
	}
	p := model.NewPart(name, length, width, qty)
	p.Thickness = thickness
	p.Material = material
	if grainStr := getCell(row, m.Grain); grainStr != "" {
		grain, ok := parseGrain(grainStr)
		if ok {
			p.GrainDirection = grain
		} else {
			out.warning = fmt.Sprintf("%s: Unknown grain value '%s', ignoring", rowLabel, grainStr)
		}
	}
	out.part = &p
	return out, ""
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

// ImportCSV imports parts and stock from a CSV file. Values are read in
// unit unless a header names its own unit. It automatically detects the
// delimiter and maps columns by header names.
func ImportCSV(path string, unit units.Unit) ImportResult {
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

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", unit, result.Warnings)
}

// ImportCSVFromReader imports from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune, unit units.Unit) ImportResult {
	result := ImportResult{}

	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", unit, nil)
}

// ImportExcel imports parts and stock from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, unit units.Unit) ImportResult {
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

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", unit, nil)
}

// ImportFile dispatches on the file extension: .xlsx and .xlsm go through
// ImportExcel, everything else through ImportCSV.
func ImportFile(path string, unit units.Unit) ImportResult {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return ImportExcel(path, unit)
	}
	return ImportCSV(path, unit)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row.
func importFromRows(rows [][]string, rowPrefix string, unit units.Unit, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := units.ParseDimension(rows[0][1], unit); err != nil {
			// Unrecognized header: skip it but keep positional mapping
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	rp := rowParser{mapping: mapping, unit: unit}
	if mapping.Unit != "" {
		rp.unit = mapping.Unit
		if mapping.Unit != unit {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Reading dimensions in %s from header", mapping.Unit))
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		out, errMsg := rp.parseRow(row, rowLabel, len(result.Parts)+len(result.Stock))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if out.warning != "" {
			result.Warnings = append(result.Warnings, out.warning)
		}
		if out.stock != nil {
			result.Stock = append(result.Stock, *out.stock)
		} else {
			result.Parts = append(result.Parts, *out.part)
		}
	}

	return result
}
