// Package api exposes the dashboard route surface over HTTP. Every page is
// a JSON view-model; guard decisions become 303 redirects.
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stockdesk/stockdesk/internal/api/handlers"
	"github.com/stockdesk/stockdesk/internal/api/middleware"
	"github.com/stockdesk/stockdesk/internal/app"
	"github.com/stockdesk/stockdesk/internal/guard"
)

// NewRouter creates and configures the Gin router
func NewRouter(a *app.App, flash *handlers.Flash) *gin.Engine {
	// Set Gin mode
	if a.Config.Web.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())

	authHandler := handlers.NewAuthHandler(a.Gateway, a.Guard, a.Holder, flash)
	pages := handlers.NewPageHandler(a.Views)

	// Public routes
	router.GET("/healthz", handlers.HealthCheck)
	router.GET("/version", handlers.GetVersion)
	router.GET(guard.PathRoot, authHandler.Root)
	router.GET(guard.PathLogin, authHandler.ShowLogin)
	router.POST(guard.PathLogin, authHandler.Login)
	router.POST("/logout", authHandler.Logout)
	router.GET(guard.PathForbidden, authHandler.Forbidden)

	// Guarded views
	protected := router.Group("")
	protected.Use(middleware.RequireRoute(a.Guard))
	{
		protected.GET(guard.PathProfile, pages.Profile)
		protected.GET(guard.PathDashboardAdmin, pages.AdminDashboard)
		protected.GET(guard.PathDashboardManager, pages.ManagerDashboard)
		protected.GET(guard.PathDashboardEmployee, pages.EmployeeDashboard)
		protected.GET(guard.PathUsers, pages.Users)
		protected.GET(guard.PathProducts, pages.Products)
		protected.GET(guard.PathProducts+"/:id", pages.Product)
		protected.GET(guard.PathCategories, pages.Categories)
		protected.GET(guard.PathSuppliers, pages.Suppliers)
		protected.GET(guard.PathOrders, pages.Orders)
		protected.GET(guard.PathStock, pages.Stock)
		protected.GET(guard.PathStock+"/product/:id", pages.ProductStock)
	}

	router.NoRoute(handlers.NotFound)
	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"ip", c.ClientIP(),
		)
	}
}
