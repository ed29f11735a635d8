package views

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/stockdesk/stockdesk/internal/aggregate"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/rbac"
)

// AdminDashboard is the ADMIN landing view.
type AdminDashboard struct {
	TotalProducts      int               `json:"total_products" yaml:"total_products"`
	TotalOrders        int               `json:"total_orders" yaml:"total_orders"`
	TotalStock         int               `json:"total_stock" yaml:"total_stock"`
	StockValue         decimal.Decimal   `json:"stock_value" yaml:"stock_value"`
	ProductsByCategory []aggregate.Group `json:"products_by_category" yaml:"products_by_category"`
	OrdersByStatus     []aggregate.Group `json:"orders_by_status" yaml:"orders_by_status"`
	LowStock           []models.Product  `json:"low_stock" yaml:"low_stock"`
	OutOfStock         int               `json:"out_of_stock" yaml:"out_of_stock"`
}

// Admin fetches products and orders concurrently and summarizes them.
func (s *Service) Admin(ctx context.Context) (*AdminDashboard, error) {
	var (
		products []models.Product
		orders   []models.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.res.Products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.res.Orders.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &AdminDashboard{
		TotalProducts:      len(products),
		TotalOrders:        len(orders),
		TotalStock:         aggregate.TotalQuantity(products),
		StockValue:         aggregate.StockValue(products),
		ProductsByCategory: aggregate.ProductsByCategory(products),
		OrdersByStatus:     aggregate.OrdersByStatus(orders),
		LowStock:           aggregate.LowStock(products, s.threshold),
		OutOfStock:         len(aggregate.OutOfStock(products)),
	}, nil
}

// ManagerDashboard is the MANAGER landing view.
type ManagerDashboard struct {
	TotalProducts  int                       `json:"total_products" yaml:"total_products"`
	TotalStock     int                       `json:"total_stock" yaml:"total_stock"`
	TotalOrders    int                       `json:"total_orders" yaml:"total_orders"`
	PendingOrders  int                       `json:"pending_orders" yaml:"pending_orders"`
	OrdersByStatus map[string]int            `json:"orders_by_status" yaml:"orders_by_status"`
	Categories     []aggregate.CategoryValue `json:"categories" yaml:"categories"`
	LowStock       int                       `json:"low_stock" yaml:"low_stock"`
}

// Manager fetches the server stats and products concurrently.
func (s *Service) Manager(ctx context.Context) (*ManagerDashboard, error) {
	var (
		stats    *models.Stats
		products []models.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = s.res.Stats.Get(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.res.Products.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ManagerDashboard{
		TotalProducts:  len(products),
		TotalStock:     stats.TotalStock,
		TotalOrders:    aggregate.TotalOrders(stats),
		PendingOrders:  stats.OrdersByStatus[string(models.OrderPending)],
		OrdersByStatus: stats.OrdersByStatus,
		Categories:     aggregate.EnrichCategoryValue(stats, products),
		LowStock:       len(aggregate.LowStock(products, s.threshold)),
	}, nil
}

// EmployeeDashboard is the EMPLOYEE landing view.
type EmployeeDashboard struct {
	TotalProducts int                 `json:"total_products" yaml:"total_products"`
	TotalStock    int                 `json:"total_stock" yaml:"total_stock"`
	TopProducts   []models.Product    `json:"top_products" yaml:"top_products"`
	Breakdown     aggregate.Breakdown `json:"breakdown" yaml:"breakdown"`
	LowStock      []models.Product    `json:"low_stock" yaml:"low_stock"`
}

// Employee summarizes the product list.
func (s *Service) Employee(ctx context.Context) (*EmployeeDashboard, error) {
	products, err := s.res.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return &EmployeeDashboard{
		TotalProducts: len(products),
		TotalStock:    aggregate.TotalQuantity(products),
		TopProducts:   aggregate.TopByQuantity(products, TopProducts),
		Breakdown:     aggregate.StatusBreakdown(products, s.threshold),
		LowStock:      aggregate.LowStock(products, s.threshold),
	}, nil
}

// StockDashboard is the stock overview shown above the movements list.
type StockDashboard struct {
	TotalProducts   int                       `json:"total_products" yaml:"total_products"`
	TotalStock      int                       `json:"total_stock" yaml:"total_stock"`
	StockValue      decimal.Decimal           `json:"stock_value" yaml:"stock_value"`
	LowStock        int                       `json:"low_stock" yaml:"low_stock"`
	OutOfStock      int                       `json:"out_of_stock" yaml:"out_of_stock"`
	MovementsToday  int                       `json:"movements_today" yaml:"movements_today"`
	TodayTotals     aggregate.MovementTotals  `json:"today_totals" yaml:"today_totals"`
	ByCategory      []aggregate.CategoryStock `json:"by_category" yaml:"by_category"`
	MovementSeries  []models.MovementPoint    `json:"movement_series" yaml:"movement_series"`
	EvolutionSeries []models.EvolutionPoint   `json:"evolution_series" yaml:"evolution_series"`
	// Placeholder is set when an analytics series could not be fetched and
	// was replaced by an empty one.
	Placeholder bool `json:"placeholder" yaml:"placeholder"`
}

// Stock fetches products, movements and both analytics series. Analytics
// failures fall back to placeholder series; list failures fail the view.
func (s *Service) Stock(ctx context.Context) (*StockDashboard, error) {
	view, _, err := s.stock(ctx)
	return view, err
}

// StockOverview is the stock dashboard above the movements list.
type StockOverview struct {
	Dashboard *StockDashboard             `json:"dashboard" yaml:"dashboard"`
	Movements *List[models.StockMovement] `json:"movements" yaml:"movements"`
}

// StockOverview builds the stock dashboard and the movements list for role
// from a single fetch of the movements.
func (s *Service) StockOverview(ctx context.Context, role models.Role) (*StockOverview, error) {
	view, movements, err := s.stock(ctx)
	if err != nil {
		return nil, err
	}
	return &StockOverview{Dashboard: view, Movements: newList(s, role, rbac.Stock, movements)}, nil
}

func (s *Service) stock(ctx context.Context) (*StockDashboard, []models.StockMovement, error) {
	var (
		products  []models.Product
		movements []models.StockMovement
		series    []models.MovementPoint
		evolution []models.EvolutionPoint
		seriesErr error
		evolErr   error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = s.res.Products.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		movements, err = s.res.Stock.List(gctx)
		return err
	})
	g.Go(func() error {
		series, seriesErr = s.res.Stock.Movements(gctx, MovementDays)
		return nil
	})
	g.Go(func() error {
		evolution, evolErr = s.res.Stock.Evolution(gctx, EvolutionMonths)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	now := s.now()
	view := &StockDashboard{
		TotalProducts:   len(products),
		TotalStock:      aggregate.TotalQuantity(products),
		StockValue:      aggregate.StockValue(products),
		LowStock:        len(aggregate.LowStock(products, s.threshold)),
		OutOfStock:      len(aggregate.OutOfStock(products)),
		ByCategory:      aggregate.StockByCategory(products, aggregate.OtherCategory),
		MovementSeries:  series,
		EvolutionSeries: evolution,
	}
	today := aggregate.MovementsOn(movements, now)
	view.MovementsToday = len(today)
	view.TodayTotals = aggregate.SumMovements(today)

	if seriesErr != nil {
		slog.Warn("Movement series unavailable, using placeholder", "error", seriesErr)
		view.MovementSeries = PlaceholderMovements(now, MovementDays)
		view.Placeholder = true
	}
	if evolErr != nil {
		slog.Warn("Stock evolution unavailable, using placeholder", "error", evolErr)
		view.EvolutionSeries = PlaceholderEvolution(now, EvolutionMonths)
		view.Placeholder = true
	}
	return view, movements, nil
}

// PlaceholderMovements returns days zero-valued points ending today.
func PlaceholderMovements(now time.Time, days int) []models.MovementPoint {
	out := make([]models.MovementPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		out = append(out, models.MovementPoint{Date: d.Format(time.DateOnly)})
	}
	return out
}

// PlaceholderEvolution returns months zero-valued points ending this month.
func PlaceholderEvolution(now time.Time, months int) []models.EvolutionPoint {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	out := make([]models.EvolutionPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		out = append(out, models.EvolutionPoint{
			Month: m.Format("Jan"),
			Date:  m.Format("2006-01"),
		})
	}
	return out
}
