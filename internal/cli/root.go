// Package cli implements the cobra commands of the opencutlist binary.
//
// Each command lives in its own file. Commands write results to the
// command's stdout and logs to stderr, so they can be driven from tests
// through SetOut/SetErr/SetArgs.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/project"
)

// Build information, injected from main.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// globalOptions holds the persistent flags and what PersistentPreRunE loads.
type globalOptions struct {
	configPath string
	verbose    bool
	jsonOutput bool
	noColor    bool

	config model.AppConfig
	logger *slog.Logger
}

// inventoryPath keeps the inventory next to the config file.
func (o *globalOptions) inventoryPath() string {
	return filepath.Join(filepath.Dir(o.configPath), "inventory.json")
}

// NewRootCommand creates the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "opencutlist",
		Short: "Cut list optimizer for sheet goods and boards",
		Long: `opencutlist packs the parts of a cut list onto stock boards using
guillotine cuts, one material at a time, and reports layouts, offcuts and
anything that did not fit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			opts.logger = newLogger(cmd.ErrOrStderr(), opts.verbose)

			if opts.configPath == "" {
				opts.configPath = project.DefaultConfigPath()
			}
			cfg, err := project.LoadAppConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config from %s: %w", opts.configPath, err)
			}
			opts.config = cfg
			opts.logger.Debug("config loaded", "path", opts.configPath)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (default ~/.opencutlist/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable ANSI color output")

	rootCmd.AddCommand(
		newOptimizeCommand(opts),
		newCompareCommand(opts),
		newExampleCommand(opts),
		newImportCommand(opts),
		newServeCommand(opts),
		newViewCommand(opts),
		newInventoryCommand(opts),
		newConfigCommand(opts),
		newBackupCommand(opts),
	)

	return rootCmd
}

// newLogger logs text to w: debug with --verbose, warnings otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command and exits with status 1 on failure.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		asJSON, _ := rootCmd.PersistentFlags().GetBool("json")
		printError(rootCmd.ErrOrStderr(), err, asJSON)
		os.Exit(1)
	}
}

// printError writes err as text or as a JSON object.
func printError(w io.Writer, err error, asJSON bool) {
	if asJSON {
		data, _ := json.MarshalIndent(map[string]interface{}{
			"error": map[string]string{"message": err.Error()},
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "%s %s\n", color.RedString("Error:"), err)
}

// writeJSON writes v indented to w.
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
