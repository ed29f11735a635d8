// Package rbac answers which record actions a role is offered on list
// views. It only drives what the UI shows; the server is the real
// authority.
package rbac

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/stockdesk/stockdesk/internal/models"
)

//go:embed model.conf
var modelConf string

// Resource names.
const (
	Products   = "products"
	Categories = "categories"
	Suppliers  = "suppliers"
	Orders     = "orders"
	Stock      = "stock"
	Users      = "users"
)

// Actions.
const (
	ActionCreate = "create"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// DefaultPolicy lists (role, resource, action) grants. "*" matches every
// resource.
var DefaultPolicy = [][]string{
	{string(models.RoleAdmin), "*", ActionCreate},
	{string(models.RoleAdmin), "*", ActionEdit},
	{string(models.RoleAdmin), "*", ActionDelete},

	{string(models.RoleManager), Products, ActionCreate},
	{string(models.RoleManager), Products, ActionEdit},
	{string(models.RoleManager), Categories, ActionCreate},
	{string(models.RoleManager), Categories, ActionEdit},
	{string(models.RoleManager), Suppliers, ActionCreate},
	{string(models.RoleManager), Suppliers, ActionEdit},
	{string(models.RoleManager), Orders, ActionCreate},
	{string(models.RoleManager), Orders, ActionEdit},
	{string(models.RoleManager), Stock, ActionCreate},
	{string(models.RoleManager), Stock, ActionEdit},
	{string(models.RoleManager), Stock, ActionDelete},

	{string(models.RoleEmployee), Stock, ActionCreate},
}

// Permissions are the record actions offered to a role on one resource.
type Permissions struct {
	Create bool `json:"create" yaml:"create"`
	Edit   bool `json:"edit" yaml:"edit"`
	Delete bool `json:"delete" yaml:"delete"`
}

// Policy wraps a casbin enforcer loaded from an in-memory grant table.
type Policy struct {
	enforcer *casbin.Enforcer
}

// NewPolicy builds a Policy from grants; nil selects DefaultPolicy.
func NewPolicy(grants [][]string) (*Policy, error) {
	if grants == nil {
		grants = DefaultPolicy
	}

	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if len(grants) > 0 {
		if _, err := e.AddPolicies(grants); err != nil {
			return nil, fmt.Errorf("failed to load policies: %w", err)
		}
	}

	slog.Debug("Action policy initialized", "grants", len(grants))
	return &Policy{enforcer: e}, nil
}

// Can reports whether role is offered action on resource. Enforcement
// errors deny.
func (p *Policy) Can(role models.Role, resource, action string) bool {
	ok, err := p.enforcer.Enforce(string(role), resource, action)
	if err != nil {
		slog.Warn("Policy check failed", "role", role, "resource", resource, "action", action, "error", err)
		return false
	}
	return ok
}

// For returns every action flag for role on resource.
func (p *Policy) For(role models.Role, resource string) Permissions {
	return Permissions{
		Create: p.Can(role, resource, ActionCreate),
		Edit:   p.Can(role, resource, ActionEdit),
		Delete: p.Can(role, resource, ActionDelete),
	}
}

// Require returns an error when role is not offered action on resource.
func (p *Policy) Require(role models.Role, resource, action string) error {
	if !p.Can(role, resource, action) {
		return fmt.Errorf("%s users cannot %s %s", role, action, resource)
	}
	return nil
}
