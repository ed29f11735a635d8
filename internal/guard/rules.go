// Package guard decides, per navigation, whether the current session may
// view a route.
package guard

import (
	"slices"
	"strings"

	"github.com/stockdesk/stockdesk/internal/models"
)

// Route paths.
const (
	PathRoot              = "/"
	PathLogin             = "/login"
	PathForbidden         = "/forbidden"
	PathProfile           = "/profile"
	PathDashboardAdmin    = "/dashboard/admin"
	PathDashboardManager  = "/dashboard/manager"
	PathDashboardEmployee = "/dashboard/employee"
	PathUsers             = "/users"
	PathProducts          = "/products"
	PathCategories        = "/categories"
	PathSuppliers         = "/suppliers"
	PathOrders            = "/orders"
	PathStock             = "/stock"
)

// RouteAccessRule maps a path to the roles allowed to view it. An empty
// Roles set admits any authenticated role.
type RouteAccessRule struct {
	Path   string
	Roles  []models.Role
	Public bool
}

// Allows reports whether role may view the route.
func (r RouteAccessRule) Allows(role models.Role) bool {
	return len(r.Roles) == 0 || slices.Contains(r.Roles, role)
}

var everyRole = []models.Role{models.RoleAdmin, models.RoleManager, models.RoleEmployee}

// DefaultRules is the route surface of the dashboard.
var DefaultRules = []RouteAccessRule{
	{Path: PathLogin, Public: true},
	{Path: PathForbidden, Public: true},
	{Path: PathProfile},
	{Path: PathDashboardAdmin, Roles: []models.Role{models.RoleAdmin}},
	{Path: PathDashboardManager, Roles: []models.Role{models.RoleManager}},
	{Path: PathDashboardEmployee, Roles: []models.Role{models.RoleEmployee}},
	{Path: PathUsers, Roles: []models.Role{models.RoleAdmin}},
	{Path: PathProducts, Roles: everyRole},
	{Path: PathCategories, Roles: everyRole},
	{Path: PathSuppliers, Roles: []models.Role{models.RoleAdmin, models.RoleManager}},
	{Path: PathOrders, Roles: []models.Role{models.RoleAdmin, models.RoleManager}},
	{Path: PathStock, Roles: everyRole},
}

// LandingPath is the dashboard a role lands on after login.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return PathDashboardAdmin
	case models.RoleManager:
		return PathDashboardManager
	case models.RoleEmployee:
		return PathDashboardEmployee
	}
	return PathLogin
}

// match finds the rule for path: an exact match, else the longest
// non-public rule that is a path-segment prefix of it ("/products/12"
// matches "/products"). Public rules only match their exact path.
func match(rules []RouteAccessRule, path string) (RouteAccessRule, bool) {
	var best RouteAccessRule
	found := false
	for _, r := range rules {
		if r.Path == path {
			return r, true
		}
		if r.Public {
			continue
		}
		if strings.HasPrefix(path, r.Path+"/") && (!found || len(r.Path) > len(best.Path)) {
			best, found = r, true
		}
	}
	return best, found
}
