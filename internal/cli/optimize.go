package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/engine"
	"github.com/piwi3910/OpenCutList/internal/export"
	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
	"github.com/piwi3910/OpenCutList/internal/units"
)

// defaultEstimateWaste is the extra percentage added to purchase estimates.
const defaultEstimateWaste = 10.0

type optimizeFlags struct {
	kerf         float64
	unit         string
	respectGrain bool
	output       string
	exports      []string
	offcuts      bool
	saveOffcuts  bool
}

// materialEstimate is a purchase estimate for a material's unplaced items.
type materialEstimate struct {
	Material string                 `json:"material"`
	Board    string                 `json:"board"`
	Estimate model.PurchaseEstimate `json:"estimate"`
}

type optimizeOutput struct {
	Results   []model.MaterialResult `json:"results"`
	Summary   model.Summary          `json:"summary"`
	Offcuts   []model.Offcut         `json:"offcuts,omitempty"`
	Estimates []materialEstimate     `json:"estimates,omitempty"`
}

func newOptimizeCommand(opts *globalOptions) *cobra.Command {
	flags := &optimizeFlags{}

	cmd := &cobra.Command{
		Use:   "optimize <project-file>",
		Short: "Pack a project's parts onto its stock",
		Long: `Load a project (JSON or YAML), pack every material and print the layout.

Examples:
  opencutlist optimize cabinet.json
  opencutlist optimize cabinet.yaml --kerf 3 --unit mm --export layout.pdf
  opencutlist optimize cabinet.json --json --offcuts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, opts, flags, args[0])
		},
	}

	cmd.Flags().Float64Var(&flags.kerf, "kerf", 0, "blade kerf in mm (default from project)")
	cmd.Flags().StringVar(&flags.unit, "unit", "", "display unit: mm, cm or inch (default from project)")
	cmd.Flags().BoolVar(&flags.respectGrain, "respect-grain", false, "never rotate parts with a grain direction")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "save the project with its results to this file")
	cmd.Flags().StringSliceVarP(&flags.exports, "export", "e", nil, "export to .pdf, .csv, .dxf, .xlsx or *labels.pdf (repeatable)")
	cmd.Flags().BoolVar(&flags.offcuts, "offcuts", false, "list usable offcuts")
	cmd.Flags().BoolVar(&flags.saveOffcuts, "save-offcuts", false, "add usable offcuts to the stock inventory")

	return cmd
}

// projectSettings applies flags that were set on top of the project settings.
func projectSettings(cmd *cobra.Command, proj model.Project, kerf float64, unit string, respectGrain bool) (model.CutSettings, units.Unit, error) {
	s := proj.Settings
	if cmd.Flags().Changed("kerf") {
		s.Kerf = kerf
	}
	if cmd.Flags().Changed("unit") {
		s.Unit = unit
	}
	if cmd.Flags().Changed("respect-grain") {
		s.RespectGrain = respectGrain
	}
	u, err := units.ParseUnit(s.Unit)
	if err != nil {
		return s, "", err
	}
	return s, u, nil
}

func runOptimize(cmd *cobra.Command, opts *globalOptions, flags *optimizeFlags, path string) error {
	proj, err := project.Load(path)
	if err != nil {
		return err
	}
	settings, u, err := projectSettings(cmd, proj, flags.kerf, flags.unit, flags.respectGrain)
	if err != nil {
		return err
	}
	proj.Settings = settings

	if err := model.ValidateInput(proj.Parts, proj.Stock, settings.Kerf); err != nil {
		return fmt.Errorf("invalid project %s: %w", path, err)
	}

	opts.logger.Debug("optimizing", "project", proj.Name, "parts", len(proj.Parts), "stock", len(proj.Stock), "kerf", settings.Kerf)
	results, err := engine.New(settings).OptimizeContext(cmd.Context(), proj.Parts, proj.Stock)
	if err != nil {
		return err
	}
	proj.Results = results

	out := optimizeOutput{
		Results:   results,
		Summary:   model.Summarize(results),
		Estimates: purchaseEstimates(proj, results),
	}
	if flags.offcuts || flags.saveOffcuts {
		out.Offcuts = model.CollectOffcuts(results, opts.config.MinOffcutDimension, opts.config.MinOffcutArea)
	}

	if flags.output != "" {
		if err := project.Save(flags.output, proj); err != nil {
			return err
		}
		opts.logger.Info("project saved", "path", flags.output)
	}
	for _, target := range flags.exports {
		if err := export.ExportFile(target, proj, results, u); err != nil {
			return err
		}
		opts.logger.Info("exported", "path", target)
	}
	if flags.saveOffcuts && len(out.Offcuts) > 0 {
		if err := saveOffcuts(opts, out.Offcuts); err != nil {
			return err
		}
	}

	rememberProject(opts, path)

	w := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(w, out)
	}
	printResults(w, results, u)
	if flags.offcuts {
		printOffcuts(w, out.Offcuts, u)
	}
	printEstimates(w, out.Estimates)
	return nil
}

// purchaseEstimates sizes extra boards for each material with unplaced items,
// using the largest board of that material.
func purchaseEstimates(proj model.Project, results []model.MaterialResult) []materialEstimate {
	var out []materialEstimate
	for _, mr := range results {
		if len(mr.Unplaced) == 0 {
			continue
		}
		board, ok := model.LargestStock(proj.Stock, mr.Material)
		if !ok {
			continue
		}
		out = append(out, materialEstimate{
			Material: mr.Material,
			Board:    board.Name,
			Estimate: model.EstimatePurchase(mr.Unplaced, board, proj.Settings.Kerf, defaultEstimateWaste),
		})
	}
	return out
}

func saveOffcuts(opts *globalOptions, offcuts []model.Offcut) error {
	inv, err := project.LoadInventory(opts.inventoryPath())
	if err != nil {
		return err
	}
	n := inv.AddOffcuts(offcuts)
	if err := project.SaveInventory(opts.inventoryPath(), inv); err != nil {
		return err
	}
	opts.logger.Info("offcuts added to inventory", "count", n)
	return nil
}

// rememberProject records path in the recent list; failures are only logged.
func rememberProject(opts *globalOptions, path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	opts.config.AddRecentProject(abs)
	if err := project.SaveAppConfig(opts.configPath, opts.config); err != nil {
		opts.logger.Warn("could not update recent projects", "error", err)
	}
}
