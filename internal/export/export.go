// Package export writes cut lists and optimization results to CSV, PDF,
// label sheets, DXF drawings and Excel workbooks.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// partColor represents an RGB color for a placed item.
type partColor struct {
	R, G, B int
}

// partColors mirrors the color scheme used in the UI bin canvas widget.
var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// binRef is a bin together with its material and position in that material.
type binRef struct {
	Material string
	Index    int // 1-based within the material
	Bin      model.Bin
}

// flattenBins lists every bin across materials in result order.
func flattenBins(results []model.MaterialResult) []binRef {
	var refs []binRef
	for _, mr := range results {
		for i, b := range mr.Bins {
			refs = append(refs, binRef{Material: mr.Material, Index: i + 1, Bin: b})
		}
	}
	return refs
}

// ExportFile picks the exporter from the file name: .pdf (or a name ending
// in labels.pdf for a label sheet), .csv, .dxf or .xlsx.
func ExportFile(path string, proj model.Project, results []model.MaterialResult, u units.Unit) error {
	lower := strings.ToLower(path)
	switch filepath.Ext(lower) {
	case ".pdf":
		if strings.HasSuffix(lower, "labels.pdf") {
			return ExportLabels(path, results, u)
		}
		return ExportPDF(path, proj, results, u)
	case ".csv":
		return ExportCSV(path, proj, u)
	case ".dxf":
		return ExportDXF(path, results)
	case ".xlsx":
		return ExportXLSX(path, results, u)
	}
	return fmt.Errorf("unsupported export format for %s (use .pdf, .csv, .dxf or .xlsx)", path)
}
