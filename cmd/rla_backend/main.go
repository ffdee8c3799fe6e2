package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	"github.com/ramplink/ramp_link_app/internal/core/services"
	"github.com/ramplink/ramp_link_app/internal/handlers"
	"github.com/ramplink/ramp_link_app/internal/middleware"
	"github.com/ramplink/ramp_link_app/internal/platform/config"
	"github.com/ramplink/ramp_link_app/internal/platform/notify"
	"github.com/ramplink/ramp_link_app/internal/repositories/ai/gemini"
	"github.com/ramplink/ramp_link_app/internal/repositories/database/pgsql"
	"github.com/ramplink/ramp_link_app/internal/repositories/storage/gcs"
	"github.com/ramplink/ramp_link_app/internal/utils"
	"github.com/ramplink/ramp_link_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Ramp Link API
// @version 1.0
// @description Expense transaction review backend: live transaction projection, receipt handling, accounting code assignment and AI code suggestions.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start the change-notification watch before the services that consume it.
	listener := notify.NewListener(dbPool, logger, notify.TransactionsChannel, notify.ConfigurationChannel)
	txnEvents, _ := listener.Subscribe()
	cfgEvents, _ := listener.Subscribe()
	if err := listener.Start(context.Background()); err != nil {
		logger.Error("Failed to start change notification listener", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	// Assign through the interface only when the adapter exists; a typed nil
	// would defeat the services' nil checks.
	var generator portsrepo.ContentGenerator
	if g := newGenerator(cfg, logger); g != nil {
		generator = g
	}
	gcsStore := newReceiptStore(cfg, logger)
	var receiptStore portsrepo.ReceiptObjectStore
	if gcsStore != nil {
		receiptStore = gcsStore
	}

	container := services.NewServiceContainer(cfg, services.ContainerDeps{
		Repos:               repos,
		TransactionEvents:   txnEvents,
		ConfigurationEvents: cfgEvents,
		Generator:           generator,
		ReceiptStore:        receiptStore,
	}, logger)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.PosthogMiddleware(posthogClient),
	)

	if rateLimiter, rlErr := middleware.NewIPRateLimiter(cfg.RateLimit); rlErr != nil {
		logger.Warn("Invalid rate limit format, rate limiting disabled", slog.String("rate", cfg.RateLimit), slog.String("error", rlErr.Error()))
	} else {
		r.Use(middleware.RateLimit(rateLimiter))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	// Teardown order: HTTP first so no new subscribers appear, then the
	// projection, then the watch it feeds from.
	container.Projection.Close()
	listener.Close()
	posthogClient.Close()

	if gcsStore != nil {
		if err := gcsStore.Close(); err != nil {
			logger.Error("Failed to close receipt store", slog.String("error", err.Error()))
		}
	}

	logger.Info("Shutdown complete")
}

// runMigrations applies all pending SQL migrations from the migrations
// directory using a short-lived database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// newGenerator builds the Gemini adapter; suggestion requests fail soft when
// the client cannot be constructed (e.g. no credentials in the environment).
func newGenerator(cfg *config.Config, logger *slog.Logger) *gemini.Generator {
	generator, err := gemini.NewGenerator(context.Background(), cfg.GeminiModel)
	if err != nil {
		logger.Warn("AI suggestion disabled", slog.String("error", err.Error()))
		return nil
	}
	return generator
}

// newReceiptStore builds the Cloud Storage adapter when a bucket is
// configured; receipt upload fails soft otherwise.
func newReceiptStore(cfg *config.Config, logger *slog.Logger) *gcs.ReceiptStore {
	if cfg.GCSBucket == "" {
		return nil
	}
	store, err := gcs.NewReceiptStore(context.Background(), cfg.GCSBucket)
	if err != nil {
		logger.Warn("Receipt storage disabled", slog.String("error", err.Error()))
		return nil
	}
	return store
}
