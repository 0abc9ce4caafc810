package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockstats/config"
	"github.com/guttosm/stockstats/internal/api"
	"github.com/guttosm/stockstats/internal/clients/sentiment"
	"github.com/guttosm/stockstats/internal/clients/social"
	"github.com/guttosm/stockstats/internal/middleware"
	"github.com/guttosm/stockstats/internal/service"
	"github.com/guttosm/stockstats/internal/storage"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres() and applies migrations when enabled.
//   - Builds the three collaborators: price repository, social feed client, sentiment client.
//   - Creates the stats service and the HTTP handler layer.
//   - Configures the Gin router with all API routes and registers health checks.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	if cfg.Postgres.AutoMigrate {
		if err := migrator(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
	}

	// Market data comes from the ingested daily bars
	prices := storage.NewPricesRepository(db)

	// External collaborators
	feed := social.NewClient(cfg.Social.BaseURL, cfg.Social.Token, cfg.Social.Timeout)
	classifier := sentiment.NewClient(cfg.Sentiment.BaseURL, cfg.Sentiment.Token, cfg.Sentiment.Timeout)

	// Initialize service layer (business logic)
	svc := service.NewStatsService(prices, feed, classifier)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	middleware.SetRateLimit(cfg.Server.RateLimitPerMinute)

	// Setup Gin router with routes
	router := api.NewRouter(handler, cfg.Server.RequestTimeout)

	// Register health and readiness checks
	healthHandler := api.NewHealthHandler(db.PingContext)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
