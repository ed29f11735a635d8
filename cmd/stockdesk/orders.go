package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/rbac"
)

func parseOrderStatus(s string) (models.OrderStatus, error) {
	st := models.OrderStatus(strings.ToUpper(s))
	switch st {
	case models.OrderPending, models.OrderCompleted, models.OrderCancelled:
		return st, nil
	}
	return "", fmt.Errorf("invalid order status %q (use PENDING, COMPLETED or CANCELLED)", s)
}

func newOrdersCmd(c *cli) *cobra.Command {
	relist := func(cmd *cobra.Command) func(a *app.App, role models.Role) error {
		return func(a *app.App, role models.Role) error {
			list, err := a.Views.Orders(cmd.Context(), role)
			if err != nil {
				return explain(err)
			}
			return c.render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tPRODUCT\tQUANTITY\tSTATUS")
				for _, o := range list.Items {
					product := o.ProductName
					if product == "" {
						product = fmt.Sprintf("#%d", o.ProductID)
					}
					fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", o.ID, product, o.Quantity, orDash(string(o.Status)))
				}
			})
		}
	}

	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "List and manage orders",
	}

	var quantity int
	create := &cobra.Command{
		Use:   "create <product-id>",
		Short: "Place an order for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if quantity <= 0 {
				return fmt.Errorf("--quantity must be positive")
			}
			return c.mutate(cmd, guard.PathOrders, rbac.Orders, rbac.ActionCreate,
				func(a *app.App) (string, error) {
					o, err := a.Resources.Orders.Create(cmd.Context(), models.OrderInput{ProductID: productID, Quantity: quantity})
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Created order %d", o.ID), nil
				}, relist(cmd))
		},
	}
	create.Flags().IntVar(&quantity, "quantity", 1, "Quantity to order")

	var status string
	var newQuantity int
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an order's status or quantity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var upd models.OrderUpdate
			if cmd.Flags().Changed("status") {
				st, err := parseOrderStatus(status)
				if err != nil {
					return err
				}
				upd.Status = &st
			}
			upd.Quantity = changedInt(cmd, "quantity", newQuantity)
			if upd.Status == nil && upd.Quantity == nil {
				return fmt.Errorf("nothing to update, pass --status or --quantity")
			}
			return c.mutate(cmd, guard.PathOrders, rbac.Orders, rbac.ActionEdit,
				func(a *app.App) (string, error) {
					if _, err := a.Resources.Orders.Update(cmd.Context(), id, upd); err != nil {
						return "", err
					}
					return fmt.Sprintf("Updated order %d", id), nil
				}, relist(cmd))
		},
	}
	update.Flags().StringVar(&status, "status", "", "New status: PENDING, COMPLETED or CANCELLED")
	update.Flags().IntVar(&newQuantity, "quantity", 0, "New quantity")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List orders",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, sess, err := c.enter(cmd, guard.PathOrders)
				if err != nil {
					return err
				}
				return relist(cmd)(a, sess.User.Role)
			},
		},
		create,
		update,
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete an order",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return c.mutate(cmd, guard.PathOrders, rbac.Orders, rbac.ActionDelete,
					func(a *app.App) (string, error) {
						return fmt.Sprintf("Deleted order %d", id), a.Resources.Orders.Delete(cmd.Context(), id)
					}, relist(cmd))
			},
		},
	)
	return cmd
}
