// Package ui is the desktop viewer for optimization results.
package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/OpenCutList/internal/engine"
	"github.com/piwi3910/OpenCutList/internal/export"
	"github.com/piwi3910/OpenCutList/internal/importer"
	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
	"github.com/piwi3910/OpenCutList/internal/ui/widgets"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// Tab indices in the main window.
const (
	TabLayout = iota
	TabParts
	TabCompare
)

// App holds the viewer state and the containers refreshed after each run.
type App struct {
	window  fyne.Window
	project model.Project
	results []model.MaterialResult
	unit    units.Unit
	logger  *slog.Logger
	tabs    *container.AppTabs

	resultContainer  *fyne.Container
	partsContainer   *fyne.Container
	compareContainer *fyne.Container
}

// NewApp shows proj in window. Existing results on the project are
// displayed as is; otherwise the project is optimized on Build.
func NewApp(window fyne.Window, proj model.Project, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	u, err := units.ParseUnit(proj.Settings.Unit)
	if err != nil {
		u = units.MM
	}
	return &App{
		window:  window,
		project: proj,
		results: proj.Results,
		unit:    u,
		logger:  logger,
	}
}

// Results returns what the viewer is currently showing.
func (a *App) Results() []model.MaterialResult {
	return a.results
}

// SetupMenus creates the native menu bar.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Project...", a.loadProject),
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Parts...", a.importParts),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", func() { a.exportTo("cutlist.pdf") }),
		fyne.NewMenuItem("Export Labels...", func() { a.exportTo("labels.pdf") }),
		fyne.NewMenuItem("Export CSV...", func() { a.exportTo("cutlist.csv") }),
		fyne.NewMenuItem("Export DXF...", func() { a.exportTo("cutlist.dxf") }),
		fyne.NewMenuItem("Export Excel...", func() { a.exportTo("cutlist.xlsx") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Optimize", func() {
			a.RunOptimize()
			a.tabs.SelectIndex(TabLayout)
		}),
		fyne.NewMenuItem("Compare Scenarios", func() {
			a.RunCompare()
			a.tabs.SelectIndex(TabCompare)
		}),
	)

	unitItems := make([]*fyne.MenuItem, 0, len(units.All))
	for _, u := range units.All {
		u := u
		unitItems = append(unitItems, fyne.NewMenuItem(string(u), func() { a.SetUnit(u) }))
	}

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu, fyne.NewMenu("Units", unitItems...)))
}

// Build constructs the tabs and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.resultContainer = container.NewStack()
	a.partsContainer = container.NewStack()
	a.compareContainer = container.NewStack(widget.NewLabel("Use Tools > Compare Scenarios."))

	a.tabs = container.NewAppTabs(
		container.NewTabItem("Layout", a.resultContainer),
		container.NewTabItem("Parts", a.partsContainer),
		container.NewTabItem("Compare", a.compareContainer),
	)
	a.tabs.SetTabLocation(container.TabLocationTop)

	if a.results == nil && len(a.project.Parts) > 0 {
		a.RunOptimize()
	} else {
		a.refresh()
	}
	return a.tabs
}

// SetUnit changes the display unit and redraws.
func (a *App) SetUnit(u units.Unit) {
	a.unit = u
	a.project.Settings.Unit = string(u)
	a.refresh()
}

func (a *App) refresh() {
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widgets.RenderResults(a.results, a.unit))
	a.resultContainer.Refresh()

	a.partsContainer.RemoveAll()
	a.partsContainer.Add(a.buildPartsTable())
	a.partsContainer.Refresh()
}

// buildPartsTable lists the project parts followed by the stock.
func (a *App) buildPartsTable() fyne.CanvasObject {
	rows := [][]string{{"Type", "Name", "Length", "Width", "Qty", "Material"}}
	for _, p := range a.project.Parts {
		rows = append(rows, []string{"Part", p.Name, units.Format(p.Length, a.unit), units.Format(p.Width, a.unit),
			fmt.Sprintf("%d", p.Quantity), model.MaterialKey(p.Material)})
	}
	for _, s := range a.project.Stock {
		rows = append(rows, []string{"Stock", s.Name, units.Format(s.Length, a.unit), units.Format(s.Width, a.unit),
			fmt.Sprintf("%d", s.Quantity), model.MaterialKey(s.Material)})
	}

	table := widget.NewTable(
		func() (int, int) { return len(rows), len(rows[0]) },
		func() fyne.CanvasObject { return widget.NewLabel("Cabinet Bottom Panel") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			label.SetText(rows[id.Row][id.Col])
			label.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
		},
	)
	return table
}

// RunOptimize re-packs the project with its current settings.
func (a *App) RunOptimize() {
	if err := model.ValidateInput(a.project.Parts, a.project.Stock, a.project.Settings.Kerf); err != nil {
		a.showError(err)
		return
	}
	a.results = engine.New(a.project.Settings).Optimize(a.project.Parts, a.project.Stock)
	a.project.Results = a.results
	sum := model.Summarize(a.results)
	a.logger.Debug("optimized", "bins", sum.BinsUsed, "unplaced", sum.ItemsUnplaced)
	a.refresh()
}

// RunCompare fills the compare tab with one row per default scenario.
func (a *App) RunCompare() {
	scenarios := engine.BuildDefaultScenarios(a.project.Settings)
	rows := engine.CompareScenarios(scenarios, a.project.Parts, a.project.Stock)

	box := container.NewVBox(container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Bins", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Waste", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Unplaced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Cost", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	))
	for _, r := range rows {
		box.Add(container.NewGridWithColumns(5,
			widget.NewLabel(r.Scenario.Name),
			widget.NewLabel(fmt.Sprintf("%d", r.BinsUsed)),
			widget.NewLabel(fmt.Sprintf("%.1f%%", r.WastePercent)),
			widget.NewLabel(fmt.Sprintf("%d", r.UnplacedCount)),
			widget.NewLabel(fmt.Sprintf("%.2f", r.StockCost)),
		))
	}

	a.compareContainer.RemoveAll()
	a.compareContainer.Add(container.NewVScroll(box))
	a.compareContainer.Refresh()
}

func (a *App) showError(err error) {
	a.logger.Warn("viewer error", "error", err)
	dialog.ShowError(err, a.window)
}

// ─── Files ─────────────────────────────────────────────────

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.Save(writer.URI().Path(), a.project); err != nil {
			a.showError(err)
		}
	}, a.window)
	d.SetFileName(a.project.Name + ".json")
	d.Show()
}

func (a *App) loadProject() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		proj, err := project.Load(reader.URI().Path())
		if err != nil {
			a.showError(err)
			return
		}
		a.project = proj
		a.results = nil
		a.RunOptimize()
	}, a.window)
}

func (a *App) importParts() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.ApplyImport(importer.ImportFile(reader.URI().Path(), a.unit))
	}, a.window)
}

// ApplyImport appends imported parts and stock to the project and re-packs.
func (a *App) ApplyImport(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		a.showError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(result.Errors, "\n")))
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import", "warning", w)
	}
	if len(result.Parts) == 0 && len(result.Stock) == 0 {
		return
	}
	a.project.Parts = append(a.project.Parts, result.Parts...)
	a.project.Stock = append(a.project.Stock, result.Stock...)
	a.RunOptimize()
}

func (a *App) exportTo(defaultName string) {
	if len(model.AllBins(a.results)) == 0 {
		dialog.ShowInformation("No results", "Run the optimizer first before exporting.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := a.ExportFile(path); err != nil {
			a.showError(err)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ExportFile writes the current results in the format implied by the path.
func (a *App) ExportFile(path string) error {
	return export.ExportFile(path, a.project, a.results, a.unit)
}
