package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/views"
)

var errNotLoggedIn = errors.New("not logged in, run 'stockdesk login' first")

// enter runs the route guard for path and returns the live session.
func (c *cli) enter(cmd *cobra.Command, path string) (*app.App, *models.Session, error) {
	a, err := c.App(cmd)
	if err != nil {
		return nil, nil, err
	}
	d := a.Guard.Evaluate(path)
	switch d.State {
	case guard.Unauthenticated:
		return nil, nil, errNotLoggedIn
	case guard.Forbidden:
		return nil, nil, fmt.Errorf("%s users cannot view %s", d.Session.User.Role, path)
	case guard.NotFound:
		return nil, nil, fmt.Errorf("unknown view %s", path)
	}
	return a, d.Session, nil
}

// explain turns API failures into CLI-facing errors.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apiclient.ErrUnauthorized):
		return fmt.Errorf("session expired, run 'stockdesk login' again: %w", err)
	case errors.Is(err, apiclient.ErrConnectionError), errors.Is(err, apiclient.ErrConnectionTimeout):
		return fmt.Errorf("could not reach the inventory server: %w", err)
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s (%d)", apiErr.Message(), apiErr.StatusCode)
	}
	return err
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo from a terminal, otherwise the next line
// of in, which must be the reader the email prompt used.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return string(b), err
	}
	return prompt(in, cmd.ErrOrStderr(), "Password: ")
}

func newLoginCmd(c *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the inventory API",
		Long: `Exchanges an email and password for a session and stores it locally.

Examples:
  stockdesk login --email admin@example.com
  STOCKDESK_PASSWORD=... stockdesk login --email admin@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.App(cmd)
			if err != nil {
				return err
			}
			in := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				if email, err = prompt(in, cmd.ErrOrStderr(), "Email: "); err != nil {
					return fmt.Errorf("reading email: %w", err)
				}
			}
			if password == "" {
				password = os.Getenv("STOCKDESK_PASSWORD")
			}
			if password == "" {
				if password, err = readPassword(cmd, in); err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
			}

			user, err := a.Gateway.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Logged in as %s (%s)\n", user.Name, user.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", guard.LandingPath(user.Role))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted when empty)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when empty)")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.App(cmd)
			if err != nil {
				return err
			}
			a.Gateway.Logout()
			fmt.Fprintln(cmd.ErrOrStderr(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Aliases: []string{"profile"},
		Short:   "Show the signed-in user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sess, err := c.enter(cmd, guard.PathProfile)
			if err != nil {
				return err
			}
			p := views.NewProfile(sess)
			return c.render(cmd.OutOrStdout(), p, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "Name:\t%s\n", p.User.Name)
				fmt.Fprintf(w, "Email:\t%s\n", p.User.Email)
				fmt.Fprintf(w, "Role:\t%s\n", p.User.Role)
				fmt.Fprintf(w, "Token:\t%s\n", yesNo(p.HasToken))
				fmt.Fprintf(w, "Dashboard:\t%s\n", p.Landing)
			})
		},
	}
}
