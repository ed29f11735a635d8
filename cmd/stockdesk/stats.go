package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/guard"
)

func newStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the server-side inventory summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, _, err := c.enter(cmd, guard.PathDashboardManager)
			if err != nil {
				return err
			}
			st, err := a.Resources.Stats.Get(cmd.Context())
			if err != nil {
				return explain(err)
			}
			return c.render(cmd.OutOrStdout(), st, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "Units in stock:\t%d\n", st.TotalStock)
				fmt.Fprintln(w, "\nCATEGORY\tPRODUCTS")
				for _, cc := range st.ProductsByCategory {
					fmt.Fprintf(w, "%s\t%d\n", cc.Category, cc.Count)
				}
				fmt.Fprintln(w, "\nSTATUS\tORDERS")
				keys := make([]string, 0, len(st.OrdersByStatus))
				for k := range st.OrdersByStatus {
					keys = append(keys, k)
				}
				slices.Sort(keys)
				for _, k := range keys {
					fmt.Fprintf(w, "%s\t%d\n", k, st.OrdersByStatus[k])
				}
			})
		},
	}
}
