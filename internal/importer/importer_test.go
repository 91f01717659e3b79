package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/OpenCutList/internal/units"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	cases := map[rune]string{
		',':  "Name,Length,Width,Qty\nShelf,600,300,2\nDoor,400,800,1\n",
		';':  "Name;Length;Width;Qty\nShelf;600;300;2\nDoor;400;800;1\n",
		'\t': "Name\tLength\tWidth\tQty\nShelf\t600\t300\t2\nDoor\t400\t800\t1\n",
		'|':  "Name|Length|Width|Qty\nShelf|600|300|2\nDoor|400|800|1\n",
	}
	for want, data := range cases {
		assert.Equal(t, want, DetectCSVDelimiter([]byte(data)), "data %q", data)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_ExporterHeader(t *testing.T) {
	row := []string{"Type", "Name", "Length (inch)", "Width (inch)", "Thickness (inch)", "Quantity", "Material", "Cost"}
	mapping, isHeader := DetectColumns(row)

	require.True(t, isHeader)
	assert.Equal(t, 0, mapping.Type)
	assert.Equal(t, 1, mapping.Name)
	assert.Equal(t, 2, mapping.Length)
	assert.Equal(t, 3, mapping.Width)
	assert.Equal(t, 4, mapping.Thickness)
	assert.Equal(t, 5, mapping.Quantity)
	assert.Equal(t, 6, mapping.Material)
	assert.Equal(t, 7, mapping.Cost)
	assert.Equal(t, -1, mapping.Grain)
	assert.Equal(t, units.Inch, mapping.Unit)
}

func TestDetectColumns_CaseInsensitiveAliases(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", "label", "LEN", "w", "Grain Direction"})

	require.True(t, isHeader)
	assert.Equal(t, 0, mapping.Quantity)
	assert.Equal(t, 1, mapping.Name)
	assert.Equal(t, 2, mapping.Length)
	assert.Equal(t, 3, mapping.Width)
	assert.Equal(t, 4, mapping.Grain)
	assert.Equal(t, units.Unit(""), mapping.Unit)
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Shelf", "600", "300", "2"})

	assert.False(t, isHeader)
	assert.Equal(t, 0, mapping.Name)
	assert.Equal(t, 1, mapping.Length)
	assert.Equal(t, 2, mapping.Width)
	assert.Equal(t, 3, mapping.Quantity)
	assert.Equal(t, 4, mapping.Material)
}

// ─── CSV Reader Import Tests ───────────────────────────────

func TestImportCSVFromReader_PartsAndStock(t *testing.T) {
	data := "Type,Name,Length (mm),Width (mm),Thickness (mm),Quantity,Material,Cost\n" +
		"Part,Side,762,600,19.05,2,Birch,\n" +
		"Stock,Full Sheet,2440,1220,19.05,1,Birch,45\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.Inch)

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 1)
	require.Len(t, result.Stock, 1)

	p := result.Parts[0]
	assert.Equal(t, "Side", p.Name)
	assert.Equal(t, 762.0, p.Length)
	assert.Equal(t, 600.0, p.Width)
	assert.Equal(t, 2, p.Quantity)
	assert.Equal(t, "Birch", p.Material)
	assert.NotEmpty(t, p.ID)

	s := result.Stock[0]
	assert.Equal(t, "Full Sheet", s.Name)
	assert.Equal(t, 45.0, s.Cost)
	assert.NoError(t, s.Validate())
}

func TestImportCSVFromReader_InchFractions(t *testing.T) {
	data := "Name,Length (inch),Width (inch),Qty\nShelf,23 5/8,11 3/4,3\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.MM)

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 1)
	assert.InDelta(t, 600.075, result.Parts[0].Length, 1e-9)
	assert.InDelta(t, 298.45, result.Parts[0].Width, 1e-9)
	assert.Equal(t, DefaultThickness, result.Parts[0].Thickness)
}

func TestImportCSVFromReader_DefaultUnitApplies(t *testing.T) {
	data := "Name,Length,Width\nShelf,60,30\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.CM)

	require.Len(t, result.Parts, 1)
	assert.Equal(t, 600.0, result.Parts[0].Length)
	assert.Equal(t, 1, result.Parts[0].Quantity, "missing quantity defaults to 1")
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Shelf,600,300,2,Oak\nDoor,400,800,1,Oak\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.MM)

	require.Len(t, result.Parts, 2, "errors: %v", result.Errors)
	assert.Equal(t, "Oak", result.Parts[1].Material)
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	data := "Name,Length,Width,Quantity,Type,Cost\n" +
		"Good,600,300,2,,\n" +
		"BadLength,abc,300,1,,\n" +
		"Negative,-5,300,1,,\n" +
		"ZeroQty,100,100,0,,\n" +
		"BadQty,100,100,x,,\n" +
		"BadCost,100,100,1,stock,cheap\n" +
		"MissingWidth,100,,1,,\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.MM)

	assert.Len(t, result.Parts, 1)
	assert.Empty(t, result.Stock)
	assert.Len(t, result.Errors, 6)
}

func TestImportCSVFromReader_GrainAndUnknownType(t *testing.T) {
	data := "Name,Length,Width,Grain,Type\n" +
		"A,100,50,yes,part\n" +
		"B,100,50,no,\n" +
		"C,100,50,sideways,\n" +
		"D,100,50,,offcut\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.MM)

	require.Len(t, result.Parts, 4)
	assert.True(t, result.Parts[0].GrainDirection)
	assert.False(t, result.Parts[1].GrainDirection)
	assert.False(t, result.Parts[2].GrainDirection)

	var grainWarn, typeWarn bool
	for _, w := range result.Warnings {
		grainWarn = grainWarn || strings.Contains(w, "sideways")
		typeWarn = typeWarn || strings.Contains(w, "offcut")
	}
	assert.True(t, grainWarn)
	assert.True(t, typeWarn)
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	data := "Name,Length,Qty\nShelf,600,2\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.MM)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Width")
}

func TestImportCSVFromReader_EmptyRowsAndLabels(t *testing.T) {
	data := "Name,Length,Width\n,600,300\n\n,,\nDoor,400,800\n"

	result := ImportCSVFromReader(strings.NewReader(data), ',', units.MM)

	require.Len(t, result.Parts, 2)
	assert.Equal(t, "Part 1", result.Parts[0].Name)
	assert.Equal(t, "Door", result.Parts[1].Name)
}

func TestImportCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',', units.MM)
	assert.NotEmpty(t, result.Errors)
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	content := "Name;Length;Width;Quantity\nShelf;600;300;2\nDoor;400;800;1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result := ImportCSV(path, units.MM)

	assert.Len(t, result.Parts, 2, "errors: %v", result.Errors)
	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	assert.True(t, hasSemicolonWarning, "expected warning about semicolon delimiter detection")
}

func TestImportCSV_FileErrors(t *testing.T) {
	assert.NotEmpty(t, ImportCSV("/nonexistent/path/file.csv", units.MM).Errors)

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))
	assert.NotEmpty(t, ImportCSV(path, units.MM).Errors)
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cutlist.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cellRef, cell))
		}
	}

	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Type", "Name", "Length", "Width", "Quantity", "Material", "Cost"},
		{"part", "Shelf", 600, 300, 2, "MDF", ""},
		{"stock", "Sheet", 2440, 1220, 1, "MDF", 30},
	})

	result := ImportFile(path, units.MM)

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, 1)
	require.Len(t, result.Stock, 1)
	assert.Equal(t, "Shelf", result.Parts[0].Name)
	assert.Equal(t, 600.0, result.Parts[0].Length)
	assert.Equal(t, 30.0, result.Stock[0].Cost)
}

func TestImportExcel_InvalidData(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Length", "Width", "Quantity"},
		{"Shelf", "abc", 300, 2},
	})

	result := ImportExcel(path, units.MM)

	assert.NotEmpty(t, result.Errors)
}

func TestImportExcel_FileNotFound(t *testing.T) {
	assert.NotEmpty(t, ImportExcel("/nonexistent/file.xlsx", units.MM).Errors)
}

// ─── parseGrain Tests ──────────────────────────────────────

func TestParseGrain(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		ok       bool
	}{
		{"yes", true, true},
		{"Y", true, true},
		{"true", true, true},
		{"x", true, true},
		{"  1 ", true, true},
		{"no", false, true},
		{"", false, true},
		{"-", false, true},
		{"none", false, true},
		{"diagonal", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			grain, ok := parseGrain(tt.input)
			assert.Equal(t, tt.expected, grain)
			assert.Equal(t, tt.ok, ok)
		})
	}
}
