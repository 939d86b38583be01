package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/clock"
	handler "invoice-dashboard-backend/internal/handlers"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/middleware"
	"invoice-dashboard-backend/internal/repository"
	"invoice-dashboard-backend/internal/services/auth"
	"invoice-dashboard-backend/internal/services/dashboard"
	"invoice-dashboard-backend/internal/services/invoices"
	"invoice-dashboard-backend/internal/session"
)

// Deps is everything RegisterRoutes wires into handlers.
type Deps struct {
	DB           *gorm.DB
	Cache        cache.Cache
	ViewCacheTTL time.Duration
	SessionTTL   time.Duration
	CookieSecure bool
	Clock        clock.Clock
	Registry     *prometheus.Registry
	Log          *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	invoiceRepo := repository.NewInvoiceRepository(d.DB)
	customerRepo := repository.NewCustomerRepository(d.DB)
	revenueRepo := repository.NewRevenueRepository(d.DB)
	userRepo := repository.NewUserRepository(d.DB)
	sessionRepo := repository.NewSessionRepository(d.DB)

	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)

	views := cache.NewViewCache(d.Cache, d.ViewCacheTTL, d.Log)
	invoiceService := invoices.NewService(invoiceRepo, views, d.Clock, m, d.Log)
	dashboardService := dashboard.NewService(invoiceRepo, customerRepo, revenueRepo, views, d.Log)
	authService := auth.NewService(userRepo, sessionRepo, d.Clock, d.SessionTTL, d.Log)
	sessions := session.NewManager(d.CookieSecure)

	invoiceHandler := handler.NewInvoiceHandler(invoiceService, dashboardService, d.Log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	authHandler := handler.NewAuthHandler(authService, sessions, d.Log)

	r.Use(middleware.ErrorHandling())
	r.Use(middleware.Authorize(authService, sessions, d.Log))

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)

	dash := r.Group("/dashboard")
	dash.GET("", dashboardHandler.Overview)
	dash.GET("/customers", dashboardHandler.Customers)
	dash.POST("/logout", authHandler.Logout)

	// Invoice routes
	inv := dash.Group("/invoices")
	{
		inv.GET("", invoiceHandler.List)
		inv.POST("", invoiceHandler.Create)
		inv.GET("/create", invoiceHandler.CreateForm)
		inv.POST("/import", invoiceHandler.Import)
		inv.GET("/:id/edit", invoiceHandler.EditForm)
		inv.POST("/:id", invoiceHandler.Update)
		inv.PUT("/:id", invoiceHandler.Update)
		inv.POST("/:id/delete", invoiceHandler.Delete)
		inv.DELETE("/:id", invoiceHandler.Delete)
	}
}
