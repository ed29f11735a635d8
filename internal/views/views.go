// Package views builds the view-models rendered by the CLI and the web
// server from resource data and aggregate summaries.
package views

import (
	"time"

	"github.com/stockdesk/stockdesk/internal/aggregate"
	"github.com/stockdesk/stockdesk/internal/rbac"
	"github.com/stockdesk/stockdesk/internal/resources"
)

// Analytics window sizes requested by the stock dashboard.
const (
	MovementDays    = 7
	EvolutionMonths = 6
	TopProducts     = 10
)

// Service computes view-models. It holds no state between calls; every
// view fetches fresh data.
type Service struct {
	res       *resources.Set
	policy    *rbac.Policy
	threshold int
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLowThreshold sets the low-stock threshold.
func WithLowThreshold(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.threshold = n
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service.
func New(res *resources.Set, policy *rbac.Policy, opts ...Option) *Service {
	s := &Service{
		res:       res,
		policy:    policy,
		threshold: aggregate.DefaultLowThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resources exposes the resource clients for mutations.
func (s *Service) Resources() *resources.Set {
	return s.res
}

// Policy exposes the action policy.
func (s *Service) Policy() *rbac.Policy {
	return s.policy
}

// LowThreshold returns the configured low-stock threshold.
func (s *Service) LowThreshold() int {
	return s.threshold
}
