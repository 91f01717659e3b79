package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/engine"
	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
)

func newCompareCommand(opts *globalOptions) *cobra.Command {
	var kerf float64
	var respectGrain bool

	cmd := &cobra.Command{
		Use:   "compare <project-file>",
		Short: "Compare bins, waste and cost across kerf and grain scenarios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := project.Load(args[0])
			if err != nil {
				return err
			}
			settings, _, err := projectSettings(cmd, proj, kerf, "", respectGrain)
			if err != nil {
				return err
			}
			if err := model.ValidateInput(proj.Parts, proj.Stock, settings.Kerf); err != nil {
				return fmt.Errorf("invalid project %s: %w", args[0], err)
			}

			scenarios := engine.BuildDefaultScenarios(settings)
			opts.logger.Debug("comparing", "scenarios", len(scenarios))
			rows := engine.CompareScenarios(scenarios, proj.Parts, proj.Stock)

			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			printComparison(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().Float64Var(&kerf, "kerf", 0, "base kerf in mm (default from project)")
	cmd.Flags().BoolVar(&respectGrain, "respect-grain", false, "base scenario respects grain")
	return cmd
}
