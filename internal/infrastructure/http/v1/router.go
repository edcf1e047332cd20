// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"salemargin/internal/domain/catalogs/analytic"
	"salemargin/internal/domain/catalogs/category"
	"salemargin/internal/domain/catalogs/product"
	"salemargin/internal/domain/landedcost"
	"salemargin/internal/domain/orders"
	"salemargin/internal/domain/settings"
	"salemargin/internal/infrastructure/http/v1/handlers"
	"salemargin/internal/infrastructure/http/v1/middleware"
	"salemargin/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection (health checks).
	Pool *pgxpool.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation. Nil disables auth.
	JWTValidator middleware.JWTValidator

	Settings    *settings.Service
	Products    *product.Service
	Categories  *category.Service
	Analytics   *analytic.Service
	Orders      *orders.Service
	LandedCosts *landedcost.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	settingsHandler := handlers.NewSettingsHandler(base, cfg.Settings)
	productHandler := handlers.NewProductHandler(base, cfg.Products)
	categoryHandler := handlers.NewCategoryHandler(base, cfg.Categories)
	analyticHandler := handlers.NewAnalyticHandler(base, cfg.Analytics)
	orderHandler := handlers.NewOrderHandler(base, cfg.Orders)
	landedCostHandler := handlers.NewLandedCostHandler(base, cfg.LandedCosts)

	v1 := router.Group("/api/v1")
	if cfg.JWTValidator != nil {
		v1.Use(middleware.Auth(cfg.JWTValidator))
	}
	{
		settingsGroup := v1.Group("/settings")
		{
			settingsGroup.GET("/overhead-type", settingsHandler.GetOverheadType)
			settingsGroup.PUT("/overhead-type", settingsHandler.SetOverheadType)
		}

		products := v1.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id/standard-price", productHandler.SetStandardPrice)
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", categoryHandler.Create)
			categories.GET("", categoryHandler.List)
			categories.PUT("/:id/analytic-account", categoryHandler.SetAnalyticAccount)
		}

		analytics := v1.Group("/analytic-accounts")
		{
			analytics.POST("", analyticHandler.Create)
			analytics.GET("", analyticHandler.List)
			analytics.PUT("/overhead", analyticHandler.SetOverhead)
		}

		ordersGroup := v1.Group("/orders")
		{
			ordersGroup.POST("", orderHandler.Create)
			ordersGroup.GET("", orderHandler.List)
			ordersGroup.POST("/recompute", orderHandler.RecomputeBatch)
			ordersGroup.GET("/:id", orderHandler.Get)
			ordersGroup.POST("/:id/lines", orderHandler.AddLine)
			ordersGroup.PATCH("/:id/lines/:lineId", orderHandler.UpdateLine)
			ordersGroup.GET("/:id/lines/:lineId/breakdown", orderHandler.LineBreakdown)
			ordersGroup.POST("/:id/confirm", orderHandler.Confirm)
			ordersGroup.POST("/:id/recompute", orderHandler.Recompute)
		}

		landedCosts := v1.Group("/landed-costs")
		{
			landedCosts.POST("", landedCostHandler.Create)
			landedCosts.GET("/:id", landedCostHandler.Get)
			landedCosts.POST("/:id/finalize", landedCostHandler.Finalize)
		}
	}

	return router
}
