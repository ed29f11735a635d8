package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdesk/stockdesk/internal/models"
)

type kv struct {
	k string
	v float64
}

func TestGroupCountSumEmpty(t *testing.T) {
	got := GroupCountSum([]kv{}, func(x kv) string { return x.k }, func(x kv) float64 { return x.v })
	require.NotNil(t, got)
	assert.Empty(t, got)

	got = GroupCountSum[kv](nil, func(x kv) string { return x.k }, nil)
	assert.Empty(t, got)
}

func TestGroupCountSumFirstSeenOrder(t *testing.T) {
	items := []kv{{"A", 2}, {"A", 3}, {"B", 1}}
	got := GroupCountSum(items, func(x kv) string { return x.k }, func(x kv) float64 { return x.v })
	assert.Equal(t, []Group{
		{Key: "A", Count: 2, Sum: 5},
		{Key: "B", Count: 1, Sum: 1},
	}, got)

	items = []kv{{"B", 1}, {"A", 1}, {"B", 1}}
	got = GroupCountSum(items, func(x kv) string { return x.k }, nil)
	assert.Equal(t, []Group{{Key: "B", Count: 2}, {Key: "A", Count: 1}}, got)
}

func products(qty ...int) []models.Product {
	out := make([]models.Product, len(qty))
	for i, q := range qty {
		out[i] = models.Product{ID: i + 1, Quantity: q}
	}
	return out
}

func TestLowStockExcludesOutOfStock(t *testing.T) {
	ps := products(5, 15, 0)

	low := LowStock(ps, 10)
	require.Len(t, low, 1)
	assert.Equal(t, 1, low[0].ID)
	assert.Equal(t, 5, low[0].Quantity)

	out := OutOfStock(ps)
	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].ID)

	in := InStock(ps, 10)
	require.Len(t, in, 1)
	assert.Equal(t, 2, in[0].ID)
}

func TestFiltersOnEmptyInput(t *testing.T) {
	assert.Empty(t, LowStock(nil, 10))
	assert.NotNil(t, LowStock(nil, 10))
	assert.Empty(t, OutOfStock(nil))
	assert.Zero(t, TotalQuantity(nil))
	assert.True(t, StockValue(nil).IsZero())
	assert.Equal(t, Breakdown{}, StatusBreakdown(nil, 10))
	assert.Empty(t, ProductsByCategory(nil))
	assert.Empty(t, StockByCategory(nil, Uncategorized))
	assert.Empty(t, TopByQuantity(nil, 10))
	assert.Empty(t, OrdersByStatus(nil))
	assert.Empty(t, EnrichCategoryValue(nil, nil))
}

func TestClassifyBoundaries(t *testing.T) {
	assert.Equal(t, Unavailable, Classify(0, 10))
	assert.Equal(t, Low, Classify(1, 10))
	assert.Equal(t, Low, Classify(9, 10))
	assert.Equal(t, Available, Classify(10, 10))
}

func TestStatusBreakdown(t *testing.T) {
	b := StatusBreakdown(products(0, 3, 10, 25, 0), 10)
	assert.Equal(t, Breakdown{Available: 2, Low: 1, Out: 2}, b)
}

func TestStockValue(t *testing.T) {
	ps := []models.Product{
		{Price: decimal.RequireFromString("2.50"), Quantity: 4},
		{Price: decimal.RequireFromString("0.10"), Quantity: 3},
		{Quantity: 7},
	}
	assert.Equal(t, "10.3", StockValue(ps).String())
	assert.Equal(t, 14, TotalQuantity(ps))
}

func TestProductsByCategory(t *testing.T) {
	ps := []models.Product{
		{CategoryName: "Office", Quantity: 2},
		{Quantity: 5},
		{CategoryName: "Office", Quantity: 1},
	}
	assert.Equal(t, []Group{
		{Key: "Office", Count: 2, Sum: 3},
		{Key: Uncategorized, Count: 1, Sum: 5},
	}, ProductsByCategory(ps))
}

func TestStockByCategory(t *testing.T) {
	ps := []models.Product{
		{Price: decimal.NewFromInt(3), Quantity: 2},
		{CategoryName: "Tools", Price: decimal.NewFromInt(10), Quantity: 1},
		{Price: decimal.NewFromInt(1), Quantity: 4},
	}
	got := StockByCategory(ps, OtherCategory)
	require.Len(t, got, 2)
	assert.Equal(t, OtherCategory, got[0].Category)
	assert.Equal(t, 2, got[0].Products)
	assert.Equal(t, 6, got[0].Quantity)
	assert.True(t, decimal.NewFromInt(10).Equal(got[0].Value))
	assert.Equal(t, "Tools", got[1].Category)
}

func TestTopByQuantity(t *testing.T) {
	ps := products(3, 9, 9, 1)
	top := TopByQuantity(ps, 3)
	require.Len(t, top, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{top[0].ID, top[1].ID, top[2].ID})
	assert.Equal(t, 3, ps[0].Quantity, "input left untouched")

	assert.Len(t, TopByQuantity(ps, 10), 4)
	assert.Empty(t, TopByQuantity(ps, 0))
}

func TestOrdersByStatus(t *testing.T) {
	orders := []models.Order{
		{Status: models.OrderCompleted, Quantity: 2},
		{Quantity: 1},
		{Status: models.OrderPending, Quantity: 4},
	}
	groups := OrdersByStatus(orders)
	assert.Equal(t, []Group{
		{Key: "COMPLETED", Count: 1, Sum: 2},
		{Key: "PENDING", Count: 2, Sum: 5},
	}, groups)
	assert.Equal(t, 2, StatusCount(groups, models.OrderPending))
	assert.Zero(t, StatusCount(groups, models.OrderCancelled))
}

func TestMovementsOn(t *testing.T) {
	day := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	ms := []models.StockMovement{
		{ID: 1, Type: models.MovementIn, Quantity: 5, MovementDate: day.Add(2 * time.Hour)},
		{ID: 2, Type: models.MovementOut, Quantity: 2, MovementDate: day.Add(-24 * time.Hour)},
		{ID: 3, Type: models.MovementOut, Quantity: 1, MovementDate: day.Add(-8 * time.Hour)},
		{ID: 4, Type: models.MovementIn, Quantity: 9},
	}
	today := MovementsOn(ms, day)
	require.Len(t, today, 2)
	assert.Equal(t, 1, today[0].ID)
	assert.Equal(t, 3, today[1].ID)

	assert.Equal(t, MovementTotals{In: 14, Out: 3}, SumMovements(ms))
}

func TestEnrichCategoryValue(t *testing.T) {
	stats := &models.Stats{
		ProductsByCategory: []models.CategoryCount{{Category: "Office", Count: 2}, {Category: "Garden", Count: 0}},
		OrdersByStatus:     map[string]int{"PENDING": 2, "COMPLETED": 5},
	}
	ps := []models.Product{
		{CategoryName: "Office", Price: decimal.NewFromInt(2), Quantity: 3},
		{CategoryName: "Office", Price: decimal.NewFromInt(1), Quantity: 1},
	}
	got := EnrichCategoryValue(stats, ps)
	require.Len(t, got, 2)
	assert.True(t, decimal.NewFromInt(7).Equal(got[0].Value))
	assert.True(t, got[1].Value.IsZero())
	assert.Equal(t, 7, TotalOrders(stats))
	assert.Zero(t, TotalOrders(nil))
}
