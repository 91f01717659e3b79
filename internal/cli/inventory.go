package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/project"
	"github.com/piwi3910/OpenCutList/internal/units"
)

func newInventoryCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Manage the stock inventory kept next to the config file",
	}
	cmd.AddCommand(
		newInventoryListCommand(opts),
		newInventoryImportCommand(opts),
		newInventoryExportCommand(opts),
	)
	return cmd
}

func newInventoryListCommand(opts *globalOptions) *cobra.Command {
	var material string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List materials and stock boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(opts.inventoryPath())
			if err != nil {
				return err
			}
			if material != "" {
				inv.Stock = inv.StockFor(material)
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), inv)
			}

			u, err := units.ParseUnit(opts.config.DefaultUnit)
			if err != nil {
				u = units.MM
			}
			w := cmd.OutOrStdout()
			headerColor.Fprintf(w, "Materials (%d)\n", len(inv.Materials))
			for _, m := range inv.Materials {
				fmt.Fprintf(w, "  %-24s %-12s %s\n", m.Name, m.Type, units.FormatWithUnit(m.Thickness, u))
			}
			headerColor.Fprintf(w, "Stock (%d)\n", len(inv.Stock))
			for _, s := range inv.Stock {
				fmt.Fprintf(w, "  %-8s %-32s %-20s %s\n", s.ID, s.Name, dims(s.Length, s.Width, u), s.Material)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&material, "material", "", "only show stock of this material")
	return cmd
}

func newInventoryImportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge an exported inventory, skipping IDs already present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := project.LoadInventory(opts.inventoryPath())
			if err != nil {
				return err
			}
			merged, err := project.ImportInventory(args[0], existing)
			if err != nil {
				return err
			}
			if err := project.SaveInventory(opts.inventoryPath(), merged); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Inventory now has %d materials and %d boards (%d new)\n",
				len(merged.Materials), len(merged.Stock),
				len(merged.Materials)+len(merged.Stock)-len(existing.Materials)-len(existing.Stock))
			return nil
		},
	}
}

func newInventoryExportCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the inventory to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(opts.inventoryPath())
			if err != nil {
				return err
			}
			return project.ExportInventory(args[0], inv)
		},
	}
}
