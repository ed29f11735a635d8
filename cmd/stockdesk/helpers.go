package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/models"
)

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// changedInt returns a pointer to v when the flag was given.
func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// mutate guards path, checks the action policy for the session's role,
// runs fn, then re-fetches and renders the list.
func (c *cli) mutate(cmd *cobra.Command, path, resource, action string, fn func(a *app.App) (string, error), relist func(a *app.App, role models.Role) error) error {
	a, sess, err := c.enter(cmd, path)
	if err != nil {
		return err
	}
	if err := a.Policy.Require(sess.User.Role, resource, action); err != nil {
		return err
	}
	msg, err := fn(a)
	if err != nil {
		return explain(err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
	return relist(a, sess.User.Role)
}
