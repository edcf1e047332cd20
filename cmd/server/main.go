// Package main is the entry point for the sale margin API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salemargin/internal/domain/auth"
	"salemargin/internal/domain/catalogs/analytic"
	"salemargin/internal/domain/catalogs/category"
	"salemargin/internal/domain/catalogs/product"
	"salemargin/internal/domain/landedcost"
	"salemargin/internal/domain/orders"
	"salemargin/internal/domain/settings"
	v1 "salemargin/internal/infrastructure/http/v1"
	"salemargin/internal/infrastructure/http/v1/middleware"
	"salemargin/internal/infrastructure/storage/postgres"
	"salemargin/internal/infrastructure/storage/postgres/catalog_repo"
	"salemargin/internal/infrastructure/storage/postgres/landedcost_repo"
	"salemargin/internal/infrastructure/storage/postgres/order_repo"
	"salemargin/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting salemargin server")

	// --- Database connection ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping database", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	analyticRepo := catalog_repo.NewAnalyticRepo(txManager)
	orderRepo := order_repo.NewOrderRepo(txManager)
	landedCostRepo := landedcost_repo.NewLandedCostRepo(txManager)
	paramRepo := postgres.NewParamRepo(txManager)
	outboxNotifier := postgres.NewOutboxNotifier(txManager)

	recomputeAudit, err := postgres.NewRecomputeAudit(txManager)
	if err != nil {
		log.Fatalw("failed to initialize recompute audit", "error", err)
	}

	// --- Services ---
	settingsService := settings.NewService(paramRepo)
	productService := product.NewService(productRepo)
	categoryService := category.NewService(categoryRepo)
	analyticService := analytic.NewService(analyticRepo, settingsService, outboxNotifier)
	landedCostService := landedcost.NewService(landedCostRepo)
	breakdownResolver := landedcost.NewResolver(landedCostRepo)

	orderService := orders.NewService(
		orderRepo,
		productRepo,
		categoryRepo,
		analyticRepo,
		settingsService,
		breakdownResolver,
		recomputeAudit,
	)

	// --- JWT (optional; no secret disables auth) ---
	var jwtValidator middleware.JWTValidator
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		jwtValidator = auth.NewJWTService(auth.DefaultJWTConfig(secret))
		log.Info("jwt auth enabled")
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		JWTValidator: jwtValidator,
		Settings:     settingsService,
		Products:     productService,
		Categories:   categoryService,
		Analytics:    analyticService,
		Orders:       orderService,
		LandedCosts:  landedCostService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
