package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
)

func newConfigCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), opts.config)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", opts.configPath)
			}
			if err := project.SaveAppConfig(opts.configPath, model.DefaultAppConfig()); err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	cmd.AddCommand(initCmd)

	return cmd
}
