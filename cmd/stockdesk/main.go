package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/config"
	"github.com/stockdesk/stockdesk/internal/logger"
)

// Version is set via ldflags at build time
var Version = "dev"

// cli is the state shared by one command invocation.
type cli struct {
	configFile string
	output     string
	apiURL     string
	ephemeral  bool

	cfg *config.Config
	app *app.App
}

// setup loads configuration and the logger. It runs before every command.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	if c.apiURL != "" {
		cfg.API.BaseURL = c.apiURL
	}
	if c.ephemeral {
		cfg.Session.Backend = "memory"
	}
	logger.Init(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
	c.cfg = cfg
	return nil
}

// App builds the component graph on first use.
func (c *cli) App(cmd *cobra.Command) (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}
	errOut := cmd.ErrOrStderr()
	notifier := apiclient.NotifierFunc(func(msg string) { fmt.Fprintln(errOut, msg) })
	var opts []apiclient.Option
	if c.output == "table" || c.output == "" {
		if l := terminalLoader(errOut); l != nil {
			opts = append(opts, apiclient.WithProgress(l))
		}
	}
	a, err := app.New(c.cfg, notifier, opts...)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "stockdesk",
		Short: "Stockdesk - inventory dashboard for the terminal",
		Long: `Stockdesk signs in to an inventory API and shows role-scoped dashboards
and lists of products, categories, suppliers, orders, stock movements and users.`,
		Example: `  # Sign in and open your dashboard
  stockdesk login --email admin@example.com
  stockdesk dashboard

  # Record stock entering the warehouse
  stockdesk stock add 12 --quantity 30 --location A1

  # Serve the dashboard routes locally
  stockdesk serve --port 8470`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "Config file (default: ./config.yaml or the user config dir)")
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", "table", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "Inventory API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&c.ephemeral, "ephemeral", false, "Keep the session in memory only")

	rootCmd.AddGroup(
		&cobra.Group{ID: "session", Title: "Session Commands:"},
		&cobra.Group{ID: "views", Title: "View Commands:"},
		&cobra.Group{ID: "admin", Title: "Admin Commands:"},
	)

	for _, cmd := range []*cobra.Command{newLoginCmd(c), newLogoutCmd(c), newWhoamiCmd(c)} {
		cmd.GroupID = "session"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		newDashboardCmd(c),
		newProductsCmd(c),
		newCategoriesCmd(c),
		newSuppliersCmd(c),
		newOrdersCmd(c),
		newStockCmd(c),
		newStatsCmd(c),
	} {
		cmd.GroupID = "views"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{newUsersCmd(c), newServeCmd(c)} {
		cmd.GroupID = "admin"
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
