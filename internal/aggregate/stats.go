package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/stockdesk/stockdesk/internal/models"
)

// CategoryValue is a server-side category count enriched with the stock
// value computed from the product list.
type CategoryValue struct {
	Category string          `json:"category" yaml:"category"`
	Count    int             `json:"count" yaml:"count"`
	Value    decimal.Decimal `json:"value" yaml:"value"`
}

// EnrichCategoryValue joins the stats categories with product values by
// category name. Categories without matching products get a zero value.
func EnrichCategoryValue(stats *models.Stats, products []models.Product) []CategoryValue {
	out := []CategoryValue{}
	if stats == nil {
		return out
	}
	values := make(map[string]decimal.Decimal)
	for _, p := range products {
		label := CategoryLabel(p, Uncategorized)
		values[label] = values[label].Add(Value(p))
	}
	for _, c := range stats.ProductsByCategory {
		v, ok := values[c.Category]
		if !ok {
			v = decimal.Zero
		}
		out = append(out, CategoryValue{Category: c.Category, Count: c.Count, Value: v})
	}
	return out
}

// TotalOrders sums the per-status order counts.
func TotalOrders(stats *models.Stats) int {
	if stats == nil {
		return 0
	}
	total := 0
	for _, n := range stats.OrdersByStatus {
		total += n
	}
	return total
}
