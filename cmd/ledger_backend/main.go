package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/nonprofit_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/nonprofit_ledger/internal/core/services"
	"github.com/SscSPs/nonprofit_ledger/internal/dto"
	"github.com/SscSPs/nonprofit_ledger/internal/handlers"
	"github.com/SscSPs/nonprofit_ledger/internal/middleware"
	"github.com/SscSPs/nonprofit_ledger/internal/platform/config"
	"github.com/SscSPs/nonprofit_ledger/internal/repositories/database/bolt"
	"github.com/SscSPs/nonprofit_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/nonprofit_ledger/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Nonprofit Ledger API
// @version 1.0
// @description Chart of accounts, journal previews and balance maintenance for nonprofit ledgers.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	repos, closeStore, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	serviceContainer, err := services.NewServiceContainer(cfg, repos)
	if err != nil {
		logger.Error("Failed to initialize services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterValidations(); err != nil {
		logger.Error("Failed to register validations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	maintenanceLimiter, err := middleware.NewMemoryLimiter(cfg.MaintenanceRateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, maintenanceLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store_driver", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore connects the configured backend and returns its repositories
// together with a function releasing it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverBolt:
		store, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		logger.Info("Bolt store opened", slog.String("path", cfg.BoltPath))
		return bolt.NewRepositoryProvider(store), func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("Error closing bolt store", slog.String("error", cerr.Error()))
			}
		}, nil
	default:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		applied, err := pgsql.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			database.ClosePgxPool(dbPool)
			return repositories.RepositoryProvider{}, nil, err
		}
		if applied {
			logger.Info("Database migrations applied successfully.")
		} else {
			logger.Info("No new migrations to apply.")
		}
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
	}
}
