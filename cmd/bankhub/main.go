package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portsrepo "github.com/aashray325/nimble-banking-hub/internal/core/ports/repositories"
	portssvc "github.com/aashray325/nimble-banking-hub/internal/core/ports/services"
	"github.com/aashray325/nimble-banking-hub/internal/core/services"
	"github.com/aashray325/nimble-banking-hub/internal/handlers"
	"github.com/aashray325/nimble-banking-hub/internal/middleware"
	"github.com/aashray325/nimble-banking-hub/internal/platform/config"
	"github.com/aashray325/nimble-banking-hub/internal/platform/observability"
	"github.com/aashray325/nimble-banking-hub/internal/repositories/database/pgsql"
	"github.com/aashray325/nimble-banking-hub/internal/repositories/memory"
	"github.com/aashray325/nimble-banking-hub/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	customerRepo, ledgerRepo, loanRepo, dbPool, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if dbPool != nil {
		defer database.ClosePgxPool(dbPool)
	}

	metrics := observability.NewMetrics()

	svcContainer := &portssvc.ServiceContainer{
		Customer: services.NewCustomerService(customerRepo, ledgerRepo),
		Account:  services.NewAccountService(ledgerRepo, loanRepo),
		Transfer: services.NewTransferService(ledgerRepo, metrics),
		Loan:     services.NewLoanService(loanRepo, ledgerRepo, metrics),
	}

	limiterInstance, err := buildRateLimiter(cfg)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svcContainer, limiterInstance, metrics)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories selects the storage backend. With PGSQL_URL set it
// connects a pgx pool and runs migrations; otherwise everything lives in the
// process-local in-memory store.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.CustomerRepository, portsrepo.LedgerRepository, portsrepo.LoanRepository, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("Using in-memory storage backend")
		ledgerRepo := memory.NewLedgerRepository()
		return memory.NewCustomerRepository(), ledgerRepo, memory.NewLoanRepository(ledgerRepo), nil, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return nil, nil, nil, nil, err
	}

	return pgsql.NewCustomerRepository(dbPool), pgsql.NewLedgerRepository(dbPool), pgsql.NewLoanRepository(dbPool), dbPool, nil
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection over the pgx stdlib
// driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
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

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

func buildRateLimiter(cfg *config.Config) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.TransferRateLimit)
	if err != nil {
		return nil, err
	}
	return limiter.New(limitermemory.NewStore(), rate), nil
}
