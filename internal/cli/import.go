package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/importer"
	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
	"github.com/piwi3910/OpenCutList/internal/units"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var (
		unit   string
		output string
		name   string
	)

	cmd := &cobra.Command{
		Use:   "import <csv-or-xlsx>",
		Short: "Build a project from a CSV or Excel cut list",
		Long: `Read parts and stock from a CSV (comma, semicolon, tab or pipe separated)
or an Excel workbook and write a project file. Rows typed "stock" become
boards; everything else is a part.

Examples:
  opencutlist import cutlist.csv -o cabinet.json
  opencutlist import cutlist.xlsx --unit inch -o cabinet.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if unit == "" {
				unit = opts.config.DefaultUnit
			}
			u, err := units.ParseUnit(unit)
			if err != nil {
				return err
			}

			result := importer.ImportFile(args[0], u)
			for _, w := range result.Warnings {
				opts.logger.Warn("import", "warning", w)
			}
			if len(result.Errors) > 0 {
				return fmt.Errorf("failed to import %s:\n  %s", args[0], strings.Join(result.Errors, "\n  "))
			}

			proj := model.NewProject()
			opts.config.ApplyToSettings(&proj.Settings)
			proj.Settings.Unit = string(u)
			proj.Name = name
			if proj.Name == "" {
				proj.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			proj.Parts = append(proj.Parts, result.Parts...)
			proj.Stock = append(proj.Stock, result.Stock...)

			if output == "" {
				return writeJSON(cmd.OutOrStdout(), proj)
			}
			if err := project.Save(output, proj); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Imported %d parts and %d stock boards into %s\n",
				len(proj.Parts), len(proj.Stock), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&unit, "unit", "", "unit of unlabeled dimensions (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "project file to write (default: print JSON)")
	cmd.Flags().StringVar(&name, "name", "", "project name (default: file name)")
	return cmd
}
