package views

import (
	"context"

	"github.com/stockdesk/stockdesk/internal/guard"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/rbac"
)

// List is a fetched collection with the record actions the viewer is offered.
type List[T any] struct {
	Resource    string           `json:"resource" yaml:"resource"`
	Items       []T              `json:"items" yaml:"items"`
	Permissions rbac.Permissions `json:"permissions" yaml:"permissions"`
}

func newList[T any](s *Service, role models.Role, resource string, items []T) *List[T] {
	return &List[T]{Resource: resource, Items: items, Permissions: s.policy.For(role, resource)}
}

// Products lists products for role.
func (s *Service) Products(ctx context.Context, role models.Role) (*List[models.Product], error) {
	items, err := s.res.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return newList(s, role, rbac.Products, items), nil
}

// Categories lists categories for role.
func (s *Service) Categories(ctx context.Context, role models.Role) (*List[models.Category], error) {
	items, err := s.res.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	return newList(s, role, rbac.Categories, items), nil
}

// Suppliers lists suppliers for role.
func (s *Service) Suppliers(ctx context.Context, role models.Role) (*List[models.Supplier], error) {
	items, err := s.res.Suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	return newList(s, role, rbac.Suppliers, items), nil
}

// Orders lists orders for role.
func (s *Service) Orders(ctx context.Context, role models.Role) (*List[models.Order], error) {
	items, err := s.res.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	return newList(s, role, rbac.Orders, items), nil
}

// Movements lists stock movements for role.
func (s *Service) Movements(ctx context.Context, role models.Role) (*List[models.StockMovement], error) {
	items, err := s.res.Stock.List(ctx)
	if err != nil {
		return nil, err
	}
	return newList(s, role, rbac.Stock, items), nil
}

// Users lists users for role.
func (s *Service) Users(ctx context.Context, role models.Role) (*List[models.User], error) {
	items, err := s.res.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	return newList(s, role, rbac.Users, items), nil
}

// Profile is the signed-in user's own view.
type Profile struct {
	User     models.User `json:"user" yaml:"user"`
	HasToken bool        `json:"has_token" yaml:"has_token"`
	Landing  string      `json:"landing" yaml:"landing"`
}

// NewProfile builds the profile view of sess.
func NewProfile(sess *models.Session) Profile {
	return Profile{User: sess.User, HasToken: sess.HasToken(), Landing: guard.LandingPath(sess.User.Role)}
}
