package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/OpenCutList/internal/importer"
	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

func TestWriteCSV_Layout(t *testing.T) {
	p := model.ExampleProject()
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, p, units.MM))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1+len(p.Parts)+len(p.Stock))
	assert.Equal(t, "Type,Name,Length (mm),Width (mm),Thickness (mm),Quantity,Material,Cost", lines[0])
	assert.Equal(t, "Part,Cabinet Side,762,600,19.1,2,Birch Plywood,", lines[1])
	assert.Equal(t, "Stock,Full Sheet,2440,1220,19.1,1,Birch Plywood,45", lines[len(p.Parts)+1])
}

func TestWriteCSV_Inches(t *testing.T) {
	p := model.NewProject()
	p.Parts = []model.Part{{Name: "Shelf", Length: 600.075, Width: 298.45, Thickness: 19.05, Quantity: 3, Material: "Oak"}}
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, p, units.Inch))

	assert.Contains(t, buf.String(), "Part,Shelf,23 5/8,11 3/4,3/4,3,Oak,")
}

func TestWriteCSV_ReimportsCleanly(t *testing.T) {
	p := model.ExampleProject()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, p, units.Inch))

	result := importer.ImportCSVFromReader(&buf, ',', units.MM)

	require.Empty(t, result.Errors)
	require.Len(t, result.Parts, len(p.Parts))
	require.Len(t, result.Stock, len(p.Stock))
	for i, part := range p.Parts {
		got := result.Parts[i]
		assert.Equal(t, part.Name, got.Name)
		assert.Equal(t, part.Quantity, got.Quantity)
		assert.Equal(t, part.Material, got.Material)
		// Inch output is rounded to 1/64".
		assert.InDelta(t, part.Length, got.Length, units.MMPerInch/64)
		assert.InDelta(t, part.Width, got.Width, units.MMPerInch/64)
	}
	assert.Equal(t, 12.5, result.Stock[1].Cost)
}

func TestExportCSV_CreatesFile(t *testing.T) {
	path := tempPath(t, "cutlist.csv")
	require.NoError(t, ExportCSV(path, model.ExampleProject(), units.MM))
	requireNonEmptyFile(t, path, 100)
}

func TestExportCSV_BadPath(t *testing.T) {
	assert.Error(t, ExportCSV("/nonexistent/dir/cutlist.csv", model.ExampleProject(), units.MM))
}
