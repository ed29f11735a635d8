package main

import (
	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/server"
)

func newServeCmd(c *cli) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard routes over HTTP",
		Long: `Start a local web server exposing the dashboard routes as JSON views.

Unauthenticated requests are redirected to /login?from=<path>; a role that
may not view a route is redirected to guard.forbidden_redirect.

Examples:
  stockdesk serve               # Listen on web.port (default 8470)
  stockdesk serve --port 8080   # Override port

Environment variables:
  STOCKDESK_API_BASE_URL        Inventory API base URL
  STOCKDESK_WEB_PORT            Server port
  STOCKDESK_SESSION_BACKEND     Session backend: file, keyring, sqlite, memory`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.RunWithSignalHandling(c.cfg, server.Config{Port: port, Version: Version})
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run server on (overrides config)")
	return cmd
}
