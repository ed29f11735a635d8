package guard

import (
	"log/slog"
	"path"
	"strings"

	"github.com/stockdesk/stockdesk/internal/models"
)

// State is the outcome of evaluating one navigation.
type State int

const (
	// Unauthenticated means there is no session.
	Unauthenticated State = iota
	// Forbidden means the session's role is not allowed on the route.
	Forbidden
	// Authorized means the view may render.
	Authorized
	// NotFound means no rule matches the route.
	NotFound
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authorized:
		return "authorized"
	case NotFound:
		return "not-found"
	}
	return "unknown"
}

// Decision is the guard's answer for a requested path. Redirect is empty
// when the view should render. From holds the originally requested path
// when the user is sent to log in.
type Decision struct {
	State    State
	Path     string
	Redirect string
	From     string
	Session  *models.Session
}

// Allowed reports whether the view may render.
func (d Decision) Allowed() bool {
	return d.State == Authorized && d.Redirect == ""
}

// SessionSource returns the live session, nil when logged out.
type SessionSource interface {
	Current() *models.Session
}

// Guard evaluates route access against a static rule table. It keeps no
// state of its own; the session is re-read on every evaluation.
type Guard struct {
	sessions          SessionSource
	rules             []RouteAccessRule
	forbiddenRedirect string
}

// Option configures a Guard.
type Option func(*Guard)

// WithRules replaces DefaultRules.
func WithRules(rules []RouteAccessRule) Option {
	return func(g *Guard) { g.rules = rules }
}

// WithForbiddenRedirect sets where a role mismatch is sent. The default is
// the login view; PathForbidden selects the dedicated forbidden view.
func WithForbiddenRedirect(p string) Option {
	return func(g *Guard) {
		if p != "" {
			g.forbiddenRedirect = p
		}
	}
}

// New creates a Guard reading sessions from src.
func New(src SessionSource, opts ...Option) *Guard {
	g := &Guard{
		sessions:          src,
		rules:             DefaultRules,
		forbiddenRedirect: PathLogin,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate decides whether the current session may view p.
func (g *Guard) Evaluate(p string) Decision {
	p = clean(p)
	sess := g.sessions.Current()
	d := Decision{Path: p, Session: sess}

	if p == PathRoot {
		d.State = Authorized
		if sess == nil {
			d.State = Unauthenticated
			d.Redirect = PathLogin
			return d
		}
		d.Redirect = LandingPath(sess.User.Role)
		return d
	}

	rule, ok := match(g.rules, p)
	if !ok {
		d.State = NotFound
		return d
	}
	if rule.Public {
		d.State = Authorized
		return d
	}

	if sess == nil {
		d.State = Unauthenticated
		d.Redirect = PathLogin
		d.From = p
		return d
	}

	if !rule.Allows(sess.User.Role) {
		slog.Info("Route denied for role", "path", p, "role", sess.User.Role, "user_id", sess.User.ID)
		d.State = Forbidden
		d.Redirect = g.forbiddenRedirect
		return d
	}

	d.State = Authorized
	return d
}

func clean(p string) string {
	if p == "" {
		return PathRoot
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// PostLoginPath is where a freshly logged-in user goes: back to from when
// the role may view it, otherwise the role's landing dashboard.
func (g *Guard) PostLoginPath(from string, role models.Role) string {
	if from == "" {
		return LandingPath(role)
	}
	from = clean(from)
	rule, ok := match(g.rules, from)
	if !ok || rule.Public || from == PathRoot || !rule.Allows(role) {
		return LandingPath(role)
	}
	return from
}
