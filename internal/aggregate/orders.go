package aggregate

import (
	"time"

	"github.com/stockdesk/stockdesk/internal/models"
)

// OrdersByStatus counts orders per status. Orders without one count as PENDING.
func OrdersByStatus(orders []models.Order) []Group {
	return GroupCountSum(orders,
		func(o models.Order) string {
			if o.Status == "" {
				return string(models.OrderPending)
			}
			return string(o.Status)
		},
		func(o models.Order) float64 { return float64(o.Quantity) },
	)
}

// StatusCount returns the count for one status key, or 0.
func StatusCount(groups []Group, status models.OrderStatus) int {
	for _, g := range groups {
		if g.Key == string(status) {
			return g.Count
		}
	}
	return 0
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// MovementsOn returns the movements dated on day.
func MovementsOn(movements []models.StockMovement, day time.Time) []models.StockMovement {
	return Filter(movements, func(m models.StockMovement) bool {
		return !m.MovementDate.IsZero() && SameDay(day, m.MovementDate)
	})
}

// MovementTotals sums quantities by direction.
type MovementTotals struct {
	In  int `json:"in" yaml:"in"`
	Out int `json:"out" yaml:"out"`
}

// SumMovements totals movement quantities by direction.
func SumMovements(movements []models.StockMovement) MovementTotals {
	var t MovementTotals
	for _, m := range movements {
		switch m.Type {
		case models.MovementIn:
			t.In += m.Quantity
		case models.MovementOut:
			t.Out += m.Quantity
		}
	}
	return t
}
