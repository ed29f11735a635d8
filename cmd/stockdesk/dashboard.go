package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/aggregate"
	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
)

func newDashboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard [admin|manager|employee|stock]",
		Short: "Show a dashboard (default: your role's)",
		Long: `Shows a summary dashboard. Without an argument the dashboard of the
signed-in role is shown.

Examples:
  stockdesk dashboard
  stockdesk dashboard stock -o json`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"admin", "manager", "employee", "stock"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				switch strings.ToLower(args[0]) {
				case "stock":
					path = guard.PathStock
				case "admin", "manager", "employee":
					path = "/dashboard/" + strings.ToLower(args[0])
				default:
					return fmt.Errorf("unknown dashboard %q", args[0])
				}
			} else {
				a, err := c.App(cmd)
				if err != nil {
					return err
				}
				sess := a.Holder.Current()
				if sess == nil {
					return errNotLoggedIn
				}
				path = guard.LandingPath(sess.User.Role)
			}

			a, _, err := c.enter(cmd, path)
			if err != nil {
				return err
			}
			switch path {
			case guard.PathDashboardAdmin:
				return c.showAdmin(cmd, a)
			case guard.PathDashboardManager:
				return c.showManager(cmd, a)
			case guard.PathDashboardEmployee:
				return c.showEmployee(cmd, a)
			default:
				return c.showStock(cmd, a)
			}
		},
	}
}

func printGroups(w *tabwriter.Writer, title string, groups []aggregate.Group) {
	fmt.Fprintf(w, "\n%s\tCOUNT\tQUANTITY\n", title)
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%d\t%.0f\n", g.Key, g.Count, g.Sum)
	}
}

func printProducts(w *tabwriter.Writer, title string, products []models.Product) {
	fmt.Fprintf(w, "\n%s\tID\tQUANTITY\n", title)
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%d\t%d\n", p.Name, p.ID, p.Quantity)
	}
}

func (c *cli) showAdmin(cmd *cobra.Command, a *app.App) error {
	d, err := a.Views.Admin(cmd.Context())
	if err != nil {
		return explain(err)
	}
	m := c.money()
	return c.render(cmd.OutOrStdout(), d, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Products:\t%d\n", d.TotalProducts)
		fmt.Fprintf(w, "Orders:\t%d\n", d.TotalOrders)
		fmt.Fprintf(w, "Units in stock:\t%d\n", d.TotalStock)
		fmt.Fprintf(w, "Stock value:\t%s\n", m.format(d.StockValue))
		fmt.Fprintf(w, "Out of stock:\t%d\n", d.OutOfStock)
		printGroups(w, "CATEGORY", d.ProductsByCategory)
		printGroups(w, "STATUS", d.OrdersByStatus)
		printProducts(w, "LOW STOCK", d.LowStock)
	})
}

func (c *cli) showManager(cmd *cobra.Command, a *app.App) error {
	d, err := a.Views.Manager(cmd.Context())
	if err != nil {
		return explain(err)
	}
	m := c.money()
	return c.render(cmd.OutOrStdout(), d, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Products:\t%d\n", d.TotalProducts)
		fmt.Fprintf(w, "Units in stock:\t%d\n", d.TotalStock)
		fmt.Fprintf(w, "Orders:\t%d\n", d.TotalOrders)
		fmt.Fprintf(w, "Pending orders:\t%d\n", d.PendingOrders)
		fmt.Fprintf(w, "Low stock:\t%d\n", d.LowStock)
		fmt.Fprintf(w, "\nCATEGORY\tPRODUCTS\tVALUE\n")
		for _, cat := range d.Categories {
			fmt.Fprintf(w, "%s\t%d\t%s\n", cat.Category, cat.Count, m.format(cat.Value))
		}
	})
}

func (c *cli) showEmployee(cmd *cobra.Command, a *app.App) error {
	d, err := a.Views.Employee(cmd.Context())
	if err != nil {
		return explain(err)
	}
	return c.render(cmd.OutOrStdout(), d, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Products:\t%d\n", d.TotalProducts)
		fmt.Fprintf(w, "Units in stock:\t%d\n", d.TotalStock)
		fmt.Fprintf(w, "Available / low / out:\t%d / %d / %d\n", d.Breakdown.Available, d.Breakdown.Low, d.Breakdown.Out)
		printProducts(w, "TOP STOCK", d.TopProducts)
		printProducts(w, "LOW STOCK", d.LowStock)
	})
}

func (c *cli) showStock(cmd *cobra.Command, a *app.App) error {
	d, err := a.Views.Stock(cmd.Context())
	if err != nil {
		return explain(err)
	}
	m := c.money()
	return c.render(cmd.OutOrStdout(), d, func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "Products:\t%d\n", d.TotalProducts)
		fmt.Fprintf(w, "Units in stock:\t%d\n", d.TotalStock)
		fmt.Fprintf(w, "Stock value:\t%s\n", m.format(d.StockValue))
		fmt.Fprintf(w, "Low / out:\t%d / %d\n", d.LowStock, d.OutOfStock)
		fmt.Fprintf(w, "Movements today:\t%d (in %d, out %d)\n", d.MovementsToday, d.TodayTotals.In, d.TodayTotals.Out)
		fmt.Fprintf(w, "\nCATEGORY\tPRODUCTS\tQUANTITY\tVALUE\n")
		for _, cat := range d.ByCategory {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", cat.Category, cat.Products, cat.Quantity, m.format(cat.Value))
		}
		title := "DATE"
		if d.Placeholder {
			title = "DATE (no data)"
		}
		fmt.Fprintf(w, "\n%s\tIN\tOUT\n", title)
		for _, p := range d.MovementSeries {
			fmt.Fprintf(w, "%s\t%d\t%d\n", p.Date, p.In, p.Out)
		}
	})
}
