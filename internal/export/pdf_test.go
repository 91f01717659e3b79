package export

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/OpenCutList/internal/engine"
	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	p, results := exampleResults(t)
	path := tempPath(t, "cutlist.pdf")

	require.NoError(t, ExportPDF(path, p, results, units.Inch))

	// Overview, three bins and a summary page; anything under 1KB is broken.
	requireNonEmptyFile(t, path, 1000)
}

func TestExportPDF_EmptyResult(t *testing.T) {
	err := ExportPDF(tempPath(t, "empty.pdf"), model.NewProject(), nil, units.MM)
	assert.Error(t, err)
}

func TestExportPDF_OnlyErrors(t *testing.T) {
	results := []model.MaterialResult{{Material: "Oak", Error: model.ErrNoStockAvailable}}
	err := ExportPDF(tempPath(t, "errors.pdf"), model.NewProject(), results, units.MM)
	assert.Error(t, err)
}

func TestExportPDF_ManyParts(t *testing.T) {
	p := model.NewProject()
	p.Stock = []model.StockPiece{{ID: "s", Name: "Sheet", Length: 2440, Width: 1220, Thickness: 18, Quantity: 5, Material: "MDF"}}
	for i := 0; i < 60; i++ {
		p.Parts = append(p.Parts, model.Part{
			ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Part %d", i),
			Length: 300, Width: 200, Thickness: 18, Quantity: 1, Material: "MDF",
		})
	}
	results := engine.Optimize(p.Parts, p.Stock, 3)
	path := tempPath(t, "many.pdf")

	require.NoError(t, ExportPDF(path, p, results, units.MM))
	requireNonEmptyFile(t, path, 1000)
}

func TestStockAndPartRows(t *testing.T) {
	p := model.ExampleProject()

	stock := stockRows(p.Stock, units.MM)
	parts := partRows(p.Parts, units.MM)

	require.Len(t, stock, 2)
	assert.Equal(t, []string{"Full Sheet", "2440 x 1220 x 19.1", "1", "Birch Plywood"}, stock[0])
	require.Len(t, parts, 6)
	assert.Equal(t, "Oversized Panel", parts[5][0])
}

func TestLabelFontSize(t *testing.T) {
	assert.Equal(t, 8.0, labelFontSize(100, 50))
	assert.Equal(t, 7.0, labelFontSize(30, 100))
	assert.Equal(t, 6.0, labelFontSize(10, 10))
}
