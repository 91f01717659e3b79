package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/project"
)

func newBackupCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config and inventory together",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write config and inventory to one backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := project.LoadInventory(opts.inventoryPath())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], opts.config, inv); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace config and inventory with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			opts.logger.Debug("restoring backup", "version", data.Version, "created", data.CreatedAt)
			if err := project.SaveAppConfig(opts.configPath, data.Config); err != nil {
				return err
			}
			if err := project.SaveInventory(opts.inventoryPath(), data.Inventory); err != nil {
				return err
			}
			opts.config = data.Config
			okColor.Fprintf(cmd.OutOrStdout(), "Restored backup from %s (%s)\n", args[0], data.CreatedAt)
			return nil
		},
	})

	return cmd
}
