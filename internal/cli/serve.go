package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/sheetdash/internal/app"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard as a web page",
		Long: `Serve an HTML dashboard with the same status, search and refresh
behaviour as the terminal view. Routes:

  GET  /          dashboard page, ?q= filters rows
  POST /refresh   run a manual refresh (throttled, 429 when too frequent)
  GET  /api/rows  rows and status as JSON, CORS per [web] allowed_origins
  GET  /healthz   liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := root.appOptions()
			opts.Listen = listen
			return app.Serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from [web] listen, 127.0.0.1:8080)")
	return cmd
}
