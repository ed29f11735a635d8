package aggregate

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/stockdesk/stockdesk/internal/models"
)

// DefaultLowThreshold is the quantity under which a product is low on stock.
const DefaultLowThreshold = 10

// Category labels used when a product has none.
const (
	Uncategorized = "Uncategorized"
	OtherCategory = "Autres"
)

// LowStock returns products with 0 < quantity < threshold. Empty products
// are out of stock, not low.
func LowStock(products []models.Product, threshold int) []models.Product {
	return Filter(products, func(p models.Product) bool {
		return p.Quantity > 0 && p.Quantity < threshold
	})
}

// OutOfStock returns products with no quantity left.
func OutOfStock(products []models.Product) []models.Product {
	return Filter(products, func(p models.Product) bool { return p.Quantity <= 0 })
}

// InStock returns products at or above threshold.
func InStock(products []models.Product, threshold int) []models.Product {
	return Filter(products, func(p models.Product) bool { return p.Quantity >= threshold })
}

// Availability classifies a quantity against threshold.
type Availability string

const (
	Available   Availability = "available"
	Low         Availability = "low"
	Unavailable Availability = "out"
)

// Classify returns the availability of one quantity.
func Classify(quantity, threshold int) Availability {
	switch {
	case quantity <= 0:
		return Unavailable
	case quantity < threshold:
		return Low
	default:
		return Available
	}
}

// Breakdown counts products per availability class.
type Breakdown struct {
	Available int `json:"available" yaml:"available"`
	Low       int `json:"low" yaml:"low"`
	Out       int `json:"out" yaml:"out"`
}

// StatusBreakdown counts available, low and out-of-stock products.
func StatusBreakdown(products []models.Product, threshold int) Breakdown {
	var b Breakdown
	for _, p := range products {
		switch Classify(p.Quantity, threshold) {
		case Available:
			b.Available++
		case Low:
			b.Low++
		default:
			b.Out++
		}
	}
	return b
}

// TotalQuantity sums quantities.
func TotalQuantity(products []models.Product) int {
	total := 0
	for _, p := range products {
		total += p.Quantity
	}
	return total
}

// Value returns price × quantity of one product. A missing price counts as zero.
func Value(p models.Product) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// StockValue sums price × quantity across products.
func StockValue(products []models.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(Value(p))
	}
	return total
}

// CategoryLabel returns the product's category name or fallback.
func CategoryLabel(p models.Product, fallback string) string {
	if p.CategoryName != "" {
		return p.CategoryName
	}
	return fallback
}

// ProductsByCategory counts products per category label, summing quantity.
func ProductsByCategory(products []models.Product) []Group {
	return GroupCountSum(products,
		func(p models.Product) string { return CategoryLabel(p, Uncategorized) },
		func(p models.Product) float64 { return float64(p.Quantity) },
	)
}

// CategoryStock is the stock held in one category.
type CategoryStock struct {
	Category string          `json:"category" yaml:"category"`
	Products int             `json:"products" yaml:"products"`
	Quantity int             `json:"quantity" yaml:"quantity"`
	Value    decimal.Decimal `json:"value" yaml:"value"`
}

// StockByCategory sums quantity and value per category label, in first-seen order.
func StockByCategory(products []models.Product, fallback string) []CategoryStock {
	out := []CategoryStock{}
	index := make(map[string]int)
	for _, p := range products {
		label := CategoryLabel(p, fallback)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, CategoryStock{Category: label, Value: decimal.Zero})
		}
		out[i].Products++
		out[i].Quantity += p.Quantity
		out[i].Value = out[i].Value.Add(Value(p))
	}
	return out
}

// TopByQuantity returns the n products with the most stock, highest first.
// Ties keep their input order.
func TopByQuantity(products []models.Product, n int) []models.Product {
	if n <= 0 {
		return []models.Product{}
	}
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b models.Product) int {
		return cmp.Compare(b.Quantity, a.Quantity)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []models.Product{}
	}
	return sorted
}
