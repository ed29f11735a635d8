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

func newUsersCmd(c *cli) *cobra.Command {
	relist := func(cmd *cobra.Command) func(a *app.App, role models.Role) error {
		return func(a *app.App, role models.Role) error {
			list, err := a.Views.Users(cmd.Context(), role)
			if err != nil {
				return explain(err)
			}
			return c.render(cmd.OutOrStdout(), list, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
				for _, u := range list.Items {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
				}
			})
		}
	}

	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users (ADMIN only)",
	}

	var in models.UserInput
	var createRole string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := models.ParseRole(createRole)
			if err != nil {
				return err
			}
			in.Role = role
			if in.Name == "" || in.Email == "" || in.Password == "" {
				return fmt.Errorf("--name, --email and --password are required")
			}
			return c.mutate(cmd, guard.PathUsers, rbac.Users, rbac.ActionCreate,
				func(a *app.App) (string, error) {
					u, err := a.Resources.Users.Create(cmd.Context(), in)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("Created user %d", u.ID), nil
				}, relist(cmd))
		},
	}
	create.Flags().StringVar(&in.Name, "name", "", "Full name")
	create.Flags().StringVar(&in.Email, "email", "", "Email address")
	create.Flags().StringVar(&in.Password, "password", "", "Initial password")
	create.Flags().StringVar(&createRole, "role", string(models.RoleEmployee), "Role: ADMIN, MANAGER or EMPLOYEE")

	var name, password, role string
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a user's name, password or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var upd models.UserUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("password") {
				upd.Password = &password
			}
			if cmd.Flags().Changed("role") {
				r, err := models.ParseRole(role)
				if err != nil {
					return err
				}
				upd.Role = &r
			}
			return c.mutate(cmd, guard.PathUsers, rbac.Users, rbac.ActionEdit,
				func(a *app.App) (string, error) {
					if _, err := a.Resources.Users.Update(cmd.Context(), id, upd); err != nil {
						return "", err
					}
					return fmt.Sprintf("Updated user %d", id), nil
				}, relist(cmd))
		},
	}
	update.Flags().StringVar(&name, "name", "", "Full name")
	update.Flags().StringVar(&password, "password", "", "New password")
	update.Flags().StringVar(&role, "role", "", "Role: ADMIN, MANAGER or EMPLOYEE")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, sess, err := c.enter(cmd, guard.PathUsers)
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
			Short: "Delete a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return c.mutate(cmd, guard.PathUsers, rbac.Users, rbac.ActionDelete,
					func(a *app.App) (string, error) {
						return fmt.Sprintf("Deleted user %d", id), a.Resources.Users.Delete(cmd.Context(), id)
					}, relist(cmd))
			},
		},
	)
	return cmd
}
