package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/piwi3910/OpenCutList/internal/model"
	"github.com/piwi3910/OpenCutList/internal/server"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the optimizer as a JSON HTTP API",
		Long: `Start an HTTP server with the endpoints:

  GET  /healthz
  GET  /api/example
  POST /api/optimize   {"parts": [...], "stock": [...], "kerf": 3.175, "respectGrain": false}
  POST /api/compare    same body, returns one row per scenario`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			if addr == "" {
				addr = opts.config.ServerAddr
			}
			defaults := model.DefaultSettings()
			opts.config.ApplyToSettings(&defaults)
			return server.New(defaults, opts.logger).Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
