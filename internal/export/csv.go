package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// csvHeader returns the cut list header for the given display unit.
func csvHeader(u units.Unit) []string {
	return []string{
		"Type",
		"Name",
		fmt.Sprintf("Length (%s)", u),
		fmt.Sprintf("Width (%s)", u),
		fmt.Sprintf("Thickness (%s)", u),
		"Quantity",
		"Material",
		"Cost",
	}
}

// WriteCSV writes the project's parts followed by its stock, with
// dimensions formatted in unit u. The importer reads this format back.
func WriteCSV(w io.Writer, proj model.Project, u units.Unit) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(u)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range proj.Parts {
		row := []string{
			"Part",
			p.Name,
			units.Format(p.Length, u),
			units.Format(p.Width, u),
			units.Format(p.Thickness, u),
			strconv.Itoa(p.Quantity),
			p.Material,
			"",
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write part %q: %w", p.Name, err)
		}
	}
	for _, s := range proj.Stock {
		row := []string{
			"Stock",
			s.Name,
			units.Format(s.Length, u),
			units.Format(s.Width, u),
			units.Format(s.Thickness, u),
			strconv.Itoa(s.Quantity),
			s.Material,
			strconv.FormatFloat(s.Cost, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write stock %q: %w", s.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the project cut list to a file.
func ExportCSV(path string, proj model.Project, u units.Unit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, proj, u); err != nil {
		return err
	}
	return f.Close()
}
