package main

//
//  @title           stockstats API
//  @version         1.0
//  @description     Daily price bars merged with sentiment-classified social messages.
//  @termsOfService  https://github.com/guttosm/stockstats
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/stockstats
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        stats
//  @tag.description Stock statistics for a ticker and date
//
//  @tag.name        health
//  @tag.description Liveness and readiness checks

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/stockstats/config"
	_ "github.com/guttosm/stockstats/docs" // swagger docs
	"github.com/guttosm/stockstats/internal/app"
	"github.com/guttosm/stockstats/internal/ingestion"
	"github.com/guttosm/stockstats/internal/logger"
	"github.com/guttosm/stockstats/internal/scheduler"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., DB connections).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	waitForSignal()
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// waitForSignal blocks until SIGINT or SIGTERM is received.
func waitForSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	signal.Stop(quit)
}

// ingestJob binds the ingestion parameters into a scheduler.Job.
func ingestJob(db *sql.DB, dir string, days, parallel int, force bool) scheduler.Job {
	return func(ctx context.Context) error {
		return ingestion.ProcessDirectory(ctx, dir, db, days, parallel, force)
	}
}

// main is the entry point of the stockstats application.
//
// Modes (selected via --mode flag):
//   - ingest:   Loads the last N business days of YYYY-MM-DD_PRICES.txt files.
//   - api:      Starts the REST API serving /api/v1/stats.
//   - schedule: Runs the ingestion on INGEST_CRON until interrupted.
//
// Flags:
//   - --mode: Execution mode ("ingest", "api" or "schedule"). Default: "api".
//   - --dir:  Directory containing price files. Default: INGEST_DIR.
//   - --days: Business days to load (1-30). Default: INGEST_DAYS.
//   - --port: Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: ingest, api or schedule")
	dir := flag.String("dir", config.AppConfig.Ingest.Dir, "Directory with YYYY-MM-DD_PRICES.txt files")
	days := flag.Int("days", config.AppConfig.Ingest.Days, "Number of last business days to ingest (1-30)")
	parallel := flag.Int("parallel", 0, "How many files to process concurrently (0=auto up to CPU, max 8)")
	force := flag.Bool("force", false, "Reprocess days even if already ingested (deletes existing bars for that day)")
	runOnStart := flag.Bool("run-on-start", false, "Schedule mode: run one ingestion before waiting for the first tick")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest", "schedule":
		// Direct DB connection for ingestion
		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if config.AppConfig.Postgres.AutoMigrate {
			if err := app.Migrate(db); err != nil {
				logger.L().Fatal().Err(err).Msg("migration failed")
			}
		}

		job := ingestJob(db, *dir, *days, *parallel, *force)

		if *mode == "ingest" {
			logger.L().Info().Str("dir", *dir).Int("days", *days).Msg("running ingestion")
			if err := job(ctx); err != nil {
				logger.L().Fatal().Err(err).Msg("ingestion failed")
			}
			logger.L().Info().Msg("ingestion completed successfully")
			return
		}

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		sched := scheduler.NewScheduler(runCtx, job)
		if err := sched.Register(config.AppConfig.Ingest.Cron); err != nil {
			logger.L().Fatal().Err(err).Msg("scheduler init error")
		}
		if *runOnStart {
			if err := sched.RunNow(); err != nil {
				logger.L().Error().Err(err).Msg("initial ingestion failed")
			}
		}
		sched.Start()
		waitForSignal()
		cancel()
		sched.Stop()

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
