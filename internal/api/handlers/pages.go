package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/stockdesk/internal/api/middleware"
	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/views"
)

// PageHandler serves the guarded views as JSON view-models.
type PageHandler struct {
	views *views.Service
}

// NewPageHandler creates a PageHandler.
func NewPageHandler(v *views.Service) *PageHandler {
	return &PageHandler{views: v}
}

func role(c *gin.Context) models.Role {
	if sess := middleware.Session(c); sess != nil {
		return sess.User.Role
	}
	return ""
}

func render[T any](c *gin.Context, fetch func(ctx context.Context) (T, error)) {
	out, err := fetch(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

// Profile renders the signed-in user.
func (h *PageHandler) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, views.NewProfile(middleware.Session(c)))
}

// AdminDashboard renders /dashboard/admin.
func (h *PageHandler) AdminDashboard(c *gin.Context) {
	render(c, h.views.Admin)
}

// ManagerDashboard renders /dashboard/manager.
func (h *PageHandler) ManagerDashboard(c *gin.Context) {
	render(c, h.views.Manager)
}

// EmployeeDashboard renders /dashboard/employee.
func (h *PageHandler) EmployeeDashboard(c *gin.Context) {
	render(c, h.views.Employee)
}

// Products renders the product list.
func (h *PageHandler) Products(c *gin.Context) {
	r := role(c)
	render(c, func(ctx context.Context) (*views.List[models.Product], error) { return h.views.Products(ctx, r) })
}

// Product renders one product.
func (h *PageHandler) Product(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	render(c, func(ctx context.Context) (*models.Product, error) { return h.views.Resources().Products.Get(ctx, id) })
}

// Categories renders the category list.
func (h *PageHandler) Categories(c *gin.Context) {
	r := role(c)
	render(c, func(ctx context.Context) (*views.List[models.Category], error) { return h.views.Categories(ctx, r) })
}

// Suppliers renders the supplier list.
func (h *PageHandler) Suppliers(c *gin.Context) {
	r := role(c)
	render(c, func(ctx context.Context) (*views.List[models.Supplier], error) { return h.views.Suppliers(ctx, r) })
}

// Orders renders the order list.
func (h *PageHandler) Orders(c *gin.Context) {
	r := role(c)
	render(c, func(ctx context.Context) (*views.List[models.Order], error) { return h.views.Orders(ctx, r) })
}

// Users renders the user list.
func (h *PageHandler) Users(c *gin.Context) {
	r := role(c)
	render(c, func(ctx context.Context) (*views.List[models.User], error) { return h.views.Users(ctx, r) })
}

// Stock renders the stock overview and movements.
func (h *PageHandler) Stock(c *gin.Context) {
	r := role(c)
	render(c, func(ctx context.Context) (*views.StockOverview, error) { return h.views.StockOverview(ctx, r) })
}

// ProductStock renders the movements of one product.
func (h *PageHandler) ProductStock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	render(c, func(ctx context.Context) ([]models.StockMovement, error) {
		return h.views.Resources().Stock.ForProduct(ctx, id)
	})
}
