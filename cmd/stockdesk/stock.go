package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/rbac"
)

func printMovements(w *tabwriter.Writer, items []models.StockMovement) {
	fmt.Fprintln(w, "ID\tDATE\tPRODUCT\tTYPE\tQUANTITY\tLOCATION")
	for _, m := range items {
		date := "-"
		if !m.MovementDate.IsZero() {
			date = m.MovementDate.Local().Format(time.DateTime)
		}
		product := m.ProductName
		if product == "" {
			product = fmt.Sprintf("#%d", m.ProductID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", m.ID, date, product, m.Type, m.Quantity, orDash(m.Location))
	}
}

func movementInput(kind string, productID, quantity int) (models.StockMovementInput, error) {
	t := models.MovementType(kind)
	if t != models.MovementIn && t != models.MovementOut {
		return models.StockMovementInput{}, fmt.Errorf("--type must be IN or OUT")
	}
	if productID <= 0 || quantity <= 0 {
		return models.StockMovementInput{}, fmt.Errorf("--product-id and --quantity must be positive")
	}
	return models.StockMovementInput{ProductID: productID, Type: t, Quantity: quantity}, nil
}

func newStockCmd(c *cli) *cobra.Command {
	relist := func(cmd *cobra.Command) func(a *app.App, role models.Role) error {
		return func(a *app.App, role models.Role) error {
			list, err := a.Views.Movements(cmd.Context(), role)
			if err != nil {
				return explain(err)
			}
			return c.render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
				printMovements(w, list.Items)
			})
		}
	}

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "List and record stock movements",
	}

	adjust := func(use, short string, kind models.MovementType) *cobra.Command {
		var quantity int
		var location string
		sub := &cobra.Command{
			Use:   use + " <product-id>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				productID, err := parseID(args[0])
				if err != nil {
					return err
				}
				if quantity <= 0 {
					return fmt.Errorf("--quantity must be positive")
				}
				return c.mutate(cmd, guard.PathStock, rbac.Stock, rbac.ActionCreate,
					func(a *app.App) (string, error) {
						var change *models.StockChange
						if kind == models.MovementIn {
							change, err = a.Resources.Stock.Add(cmd.Context(), productID, quantity, location)
						} else {
							change, err = a.Resources.Stock.Remove(cmd.Context(), productID, quantity, location)
						}
						if err != nil {
							return "", err
						}
						return fmt.Sprintf("%s now has %d in stock", change.Product.Name, change.Product.Quantity), nil
					}, relist(cmd))
			},
		}
		sub.Flags().IntVarP(&quantity, "quantity", "q", 0, "Quantity moved")
		sub.Flags().StringVar(&location, "location", "", "Storage location")
		return sub
	}

	var recType string
	var recQuantity, recProduct int
	record := &cobra.Command{
		Use:   "record",
		Short: "Record a movement of either type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := movementInput(recType, recProduct, recQuantity)
			if err != nil {
				return err
			}
			return c.mutate(cmd, guard.PathStock, rbac.Stock, rbac.ActionCreate,
				func(a *app.App) (string, error) {
					change, err := a.Resources.Stock.Create(cmd.Context(), in)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Recorded movement %d", change.Movement.ID), nil
				}, relist(cmd))
		},
	}
	record.Flags().StringVar(&recType, "type", "", "Movement type: IN or OUT")
	record.Flags().IntVar(&recQuantity, "quantity", 0, "Quantity moved")
	record.Flags().IntVar(&recProduct, "product-id", 0, "Product id")

	var editType string
	var editQuantity, editProduct int
	edit := &cobra.Command{
		Use:   "update <movement-id>",
		Short: "Correct a recorded movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := movementInput(editType, editProduct, editQuantity)
			if err != nil {
				return err
			}
			return c.mutate(cmd, guard.PathStock, rbac.Stock, rbac.ActionEdit,
				func(a *app.App) (string, error) {
					if _, err := a.Resources.Stock.Update(cmd.Context(), id, in); err != nil {
						return "", err
					}
					return fmt.Sprintf("Updated movement %d", id), nil
				}, relist(cmd))
		},
	}
	edit.Flags().StringVar(&editType, "type", "", "Movement type: IN or OUT")
	edit.Flags().IntVar(&editQuantity, "quantity", 0, "Quantity moved")
	edit.Flags().IntVar(&editProduct, "product-id", 0, "Product id")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stock movements",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, sess, err := c.enter(cmd, guard.PathStock)
				if err != nil {
					return err
				}
				return relist(cmd)(a, sess.User.Role)
			},
		},
		&cobra.Command{
			Use:   "product <product-id>",
			Short: "List the movements of one product",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				a, _, err := c.enter(cmd, guard.PathStock)
				if err != nil {
					return err
				}
				items, err := a.Resources.Stock.ForProduct(cmd.Context(), id)
				if err != nil {
					return explain(err)
				}
				return c.render(cmd.OutOrStdout(), items, func(w *tabwriter.Writer) {
					printMovements(w, items)
				})
			},
		},
		adjust("add", "Record stock entering", models.MovementIn),
		adjust("remove", "Record stock leaving", models.MovementOut),
		record,
		edit,
		&cobra.Command{
			Use:   "delete <movement-id>",
			Short: "Delete a recorded movement",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return c.mutate(cmd, guard.PathStock, rbac.Stock, rbac.ActionDelete,
					func(a *app.App) (string, error) {
						return fmt.Sprintf("Deleted movement %d", id), a.Resources.Stock.Delete(cmd.Context(), id)
					}, relist(cmd))
			},
		},
	)
	return cmd
}
