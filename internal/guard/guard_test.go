package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockdesk/stockdesk/internal/models"
)

type fixedSession struct {
	sess *models.Session
}

func (f *fixedSession) Current() *models.Session { return f.sess }

func sessionFor(role models.Role) *fixedSession {
	return &fixedSession{sess: &models.Session{
		User:  models.User{ID: 5, Name: "U", Email: "u@example.com", Role: role},
		Token: "t",
	}}
}

func TestUnauthenticatedRedirectsToLoginWithFrom(t *testing.T) {
	g := New(&fixedSession{})

	for _, rule := range DefaultRules {
		if rule.Public {
			continue
		}
		t.Run(rule.Path, func(t *testing.T) {
			d := g.Evaluate(rule.Path)
			assert.Equal(t, Unauthenticated, d.State)
			assert.Equal(t, PathLogin, d.Redirect)
			assert.Equal(t, rule.Path, d.From)
			assert.False(t, d.Allowed())
		})
	}
}

func TestRoleGating(t *testing.T) {
	for _, rule := range DefaultRules {
		if rule.Public {
			continue
		}
		for _, role := range models.AllRoles {
			d := New(sessionFor(role)).Evaluate(rule.Path)
			if rule.Allows(role) {
				assert.True(t, d.Allowed(), "%s should reach %s", role, rule.Path)
				continue
			}
			assert.Equal(t, Forbidden, d.State, "%s on %s", role, rule.Path)
			assert.Equal(t, PathLogin, d.Redirect)
			assert.Empty(t, d.From)
		}
	}
}

func TestRouteTable(t *testing.T) {
	tests := []struct {
		path    string
		role    models.Role
		allowed bool
	}{
		{PathUsers, models.RoleAdmin, true},
		{PathUsers, models.RoleManager, false},
		{PathSuppliers, models.RoleManager, true},
		{PathSuppliers, models.RoleEmployee, false},
		{PathOrders, models.RoleEmployee, false},
		{PathCategories, models.RoleEmployee, true},
		{PathStock, models.RoleEmployee, true},
		{PathDashboardManager, models.RoleAdmin, false},
		{PathDashboardEmployee, models.RoleEmployee, true},
		{PathProfile, models.RoleEmployee, true},
		{"/products/12", models.RoleEmployee, true},
		{"/users/3", models.RoleManager, false},
		{"/stock/", models.RoleManager, true},
	}
	for _, tt := range tests {
		d := New(sessionFor(tt.role)).Evaluate(tt.path)
		assert.Equal(t, tt.allowed, d.Allowed(), "%s as %s", tt.path, tt.role)
	}
}

func TestForbiddenRedirectOption(t *testing.T) {
	g := New(sessionFor(models.RoleEmployee), WithForbiddenRedirect(PathForbidden))
	d := g.Evaluate(PathUsers)
	assert.Equal(t, Forbidden, d.State)
	assert.Equal(t, PathForbidden, d.Redirect)

	d = g.Evaluate(PathForbidden)
	assert.True(t, d.Allowed())
}

func TestRootRedirects(t *testing.T) {
	d := New(&fixedSession{}).Evaluate("/")
	assert.Equal(t, PathLogin, d.Redirect)

	d = New(sessionFor(models.RoleManager)).Evaluate("")
	assert.Equal(t, PathDashboardManager, d.Redirect)
}

func TestPublicAndUnknownRoutes(t *testing.T) {
	g := New(&fixedSession{})
	assert.True(t, g.Evaluate(PathLogin).Allowed())
	assert.Equal(t, NotFound, g.Evaluate("/reports").State)
	assert.Equal(t, NotFound, g.Evaluate("/productsx").State)
	assert.Equal(t, NotFound, g.Evaluate("/login/anything").State)
	assert.Equal(t, NotFound, g.Evaluate("/forbidden/x").State)
	assert.Equal(t, Unauthenticated, g.Evaluate("/products/12").State)
}

func TestGuardRereadsSession(t *testing.T) {
	src := sessionFor(models.RoleAdmin)
	g := New(src)
	assert.True(t, g.Evaluate(PathUsers).Allowed())

	src.sess = nil
	assert.Equal(t, Unauthenticated, g.Evaluate(PathUsers).State)
}

func TestPostLoginPath(t *testing.T) {
	g := New(&fixedSession{})
	assert.Equal(t, PathOrders, g.PostLoginPath(PathOrders, models.RoleManager))
	assert.Equal(t, PathDashboardEmployee, g.PostLoginPath(PathOrders, models.RoleEmployee))
	assert.Equal(t, PathDashboardAdmin, g.PostLoginPath("", models.RoleAdmin))
	assert.Equal(t, PathDashboardAdmin, g.PostLoginPath(PathLogin, models.RoleAdmin))
	assert.Equal(t, PathDashboardAdmin, g.PostLoginPath("/nowhere", models.RoleAdmin))
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, PathDashboardAdmin, LandingPath(models.RoleAdmin))
	assert.Equal(t, PathDashboardManager, LandingPath(models.RoleManager))
	assert.Equal(t, PathDashboardEmployee, LandingPath(models.RoleEmployee))
	assert.Equal(t, PathLogin, LandingPath(models.Role("GUEST")))
}
