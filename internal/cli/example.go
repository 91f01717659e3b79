package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
)

func newExampleCommand(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write or print a sample project",
		Long: `Write a two-material cabinet project to start from. Without --output the
project is printed as JSON.

Examples:
  opencutlist example -o cabinet.yaml
  opencutlist example | jq .parts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj := model.ExampleProject()
			proj.Settings.Unit = opts.config.DefaultUnit
			if output == "" {
				return writeJSON(cmd.OutOrStdout(), proj)
			}
			if err := project.Save(output, proj); err != nil {
				return err
			}
			opts.logger.Info("example written", "path", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (.json, .yaml or .yml)")
	return cmd
}
