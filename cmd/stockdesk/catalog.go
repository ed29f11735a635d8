package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/rbac"
)

func newCategoriesCmd(c *cli) *cobra.Command {
	relist := func(cmd *cobra.Command) func(a *app.App, role models.Role) error {
		return func(a *app.App, role models.Role) error {
			list, err := a.Views.Categories(cmd.Context(), role)
			if err != nil {
				return explain(err)
			}
			return c.render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tNAME")
				for _, cat := range list.Items {
					fmt.Fprintf(w, "%d\t%s\n", cat.ID, cat.Name)
				}
			})
		}
	}

	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "List and manage categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, sess, err := c.enter(cmd, guard.PathCategories)
				if err != nil {
					return err
				}
				return relist(cmd)(a, sess.User.Role)
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.mutate(cmd, guard.PathCategories, rbac.Categories, rbac.ActionCreate,
					func(a *app.App) (string, error) {
						cat, err := a.Resources.Categories.Create(cmd.Context(), models.CategoryInput{Name: args[0]})
						if err != nil {
							return "", err
						}
						return fmt.Sprintf("Created category %d", cat.ID), nil
					}, relist(cmd))
			},
		},
		&cobra.Command{
			Use:   "rename <id> <name>",
			Short: "Rename a category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return c.mutate(cmd, guard.PathCategories, rbac.Categories, rbac.ActionEdit,
					func(a *app.App) (string, error) {
						if _, err := a.Resources.Categories.Update(cmd.Context(), id, models.CategoryInput{Name: args[1]}); err != nil {
							return "", err
						}
						return fmt.Sprintf("Renamed category %d", id), nil
					}, relist(cmd))
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return c.mutate(cmd, guard.PathCategories, rbac.Categories, rbac.ActionDelete,
					func(a *app.App) (string, error) {
						return fmt.Sprintf("Deleted category %d", id), a.Resources.Categories.Delete(cmd.Context(), id)
					}, relist(cmd))
			},
		},
	)
	return cmd
}

func newSuppliersCmd(c *cli) *cobra.Command {
	relist := func(cmd *cobra.Command) func(a *app.App, role models.Role) error {
		return func(a *app.App, role models.Role) error {
			list, err := a.Views.Suppliers(cmd.Context(), role)
			if err != nil {
				return explain(err)
			}
			return c.render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL")
				for _, s := range list.Items {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, orDash(s.Phone), orDash(s.Email))
				}
			})
		}
	}

	cmd := &cobra.Command{
		Use:     "suppliers",
		Aliases: []string{"supplier"},
		Short:   "List and manage suppliers",
	}

	var in models.SupplierInput
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return c.mutate(cmd, guard.PathSuppliers, rbac.Suppliers, rbac.ActionCreate,
				func(a *app.App) (string, error) {
					s, err := a.Resources.Suppliers.Create(cmd.Context(), in)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Created supplier %d", s.ID), nil
				}, relist(cmd))
		},
	}
	create.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	create.Flags().StringVar(&in.Email, "email", "", "Email address")

	var upd models.SupplierInput
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a supplier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.mutate(cmd, guard.PathSuppliers, rbac.Suppliers, rbac.ActionEdit,
				func(a *app.App) (string, error) {
					cur, err := a.Resources.Suppliers.Get(cmd.Context(), id)
					if err != nil {
						return "", err
					}
					next := models.SupplierInput{Name: cur.Name, Phone: cur.Phone, Email: cur.Email}
					if cmd.Flags().Changed("name") {
						next.Name = upd.Name
					}
					if cmd.Flags().Changed("phone") {
						next.Phone = upd.Phone
					}
					if cmd.Flags().Changed("email") {
						next.Email = upd.Email
					}
					if _, err := a.Resources.Suppliers.Update(cmd.Context(), id, next); err != nil {
						return "", err
					}
					return fmt.Sprintf("Updated supplier %d", id), nil
				}, relist(cmd))
		},
	}
	update.Flags().StringVar(&upd.Name, "name", "", "Supplier name")
	update.Flags().StringVar(&upd.Phone, "phone", "", "Phone number")
	update.Flags().StringVar(&upd.Email, "email", "", "Email address")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List suppliers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, sess, err := c.enter(cmd, guard.PathSuppliers)
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
			Short: "Delete a supplier",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return c.mutate(cmd, guard.PathSuppliers, rbac.Suppliers, rbac.ActionDelete,
					func(a *app.App) (string, error) {
						return fmt.Sprintf("Deleted supplier %d", id), a.Resources.Suppliers.Delete(cmd.Context(), id)
					}, relist(cmd))
			},
		},
	)
	return cmd
}
