// Package app wires the configured components into one graph shared by
// the CLI and the web server.
package app

import (
	"fmt"
	"log/slog"

	"github.com/stockdesk/stockdesk/internal/apiclient"
	"github.com/stockdesk/stockdesk/internal/auth"
	"github.com/stockdesk/stockdesk/internal/config"
	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/rbac"
	"github.com/stockdesk/stockdesk/internal/resources"
	"github.com/stockdesk/stockdesk/internal/session"
	"github.com/stockdesk/stockdesk/internal/views"
)

// App holds the process-wide instances. The Holder is the single live
// session; it is opened here and closed by Close.
type App struct {
	Config    *config.Config
	Holder    *session.Holder
	Client    *apiclient.Client
	Gateway   *auth.Gateway
	Guard     *guard.Guard
	Policy    *rbac.Policy
	Resources *resources.Set
	Views     *views.Service
}

// New builds the graph. notifier receives session-expired messages.
func New(cfg *config.Config, notifier apiclient.Notifier, opts ...apiclient.Option) (*App, error) {
	store, err := session.Open(cfg.Session.Backend, cfg.Session.Dir, cfg.Session.Slot)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	holder := session.NewHolder(store)

	policy, err := rbac.NewPolicy(nil)
	if err != nil {
		holder.Close()
		return nil, err
	}

	client := apiclient.New(cfg.API.BaseURL, holder, notifier, opts...)
	res := resources.New(client)

	a := &App{
		Config:    cfg,
		Holder:    holder,
		Client:    client,
		Gateway:   auth.NewGateway(client, holder, cfg.Auth.LoginTimeout),
		Guard:     guard.New(holder, guard.WithForbiddenRedirect(cfg.Guard.ForbiddenRedirect)),
		Policy:    policy,
		Resources: res,
		Views:     views.New(res, policy, views.WithLowThreshold(cfg.Stock.LowThreshold)),
	}
	slog.Debug("Application initialized", "api", cfg.API.BaseURL, "session_backend", cfg.Session.Backend)
	return a, nil
}

// Close releases the session store.
func (a *App) Close() error {
	return a.Holder.Close()
}
