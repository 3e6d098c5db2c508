// AngelaMos | 2026
// serve.go

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/school-opinions/internal/account"
	"github.com/carterperez-dev/school-opinions/internal/admin"
	"github.com/carterperez-dev/school-opinions/internal/auth"
	"github.com/carterperez-dev/school-opinions/internal/config"
	"github.com/carterperez-dev/school-opinions/internal/core"
	"github.com/carterperez-dev/school-opinions/internal/health"
	"github.com/carterperez-dev/school-opinions/internal/middleware"
	"github.com/carterperez-dev/school-opinions/internal/migrations"
	"github.com/carterperez-dev/school-opinions/internal/opinion"
	"github.com/carterperez-dev/school-opinions/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context(), configPath)
	},
}

//nolint:funlen // bootstrap code is inherently verbose
func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(cfg.Database.DSN()); err != nil {
			return err
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	checks := []health.Check{
		{Name: "database", Checker: db, Required: true},
	}
	adminCfg := admin.HandlerConfig{
		DBStats: db.Stats,
		DBPing:  db.Ping,
	}
	var redisClient *redis.Client
	if rdb != nil {
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
		redisClient = rdb.Client
		checks = append(checks, health.Check{Name: "redis", Checker: rdb})
		adminCfg.RedisStats = rdb.PoolStats
		adminCfg.RedisPing = rdb.Ping
	} else {
		logger.Info("redis not configured, rate limits are per instance")
	}

	accountRepo := account.NewRepository(db.DB)
	accountSvc := account.NewService(accountRepo)
	accountHandler := account.NewHandler(accountSvc)

	authSvc := auth.NewService(accountSvc)
	authHandler := auth.NewHandler(authSvc)

	opinionRepo := opinion.NewRepository(db.DB)
	opinionSvc := opinion.NewService(opinionRepo)
	opinionHandler := opinion.NewHandler(opinionSvc)

	adminCfg.OpinionTotals = opinionSvc.Totals
	adminCfg.AccountCount = accountSvc.Count
	adminHandler := admin.NewHandler(adminCfg)

	healthHandler := health.NewHandler(checks...)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Limit: middleware.Window(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			BypassFunc: middleware.SkipProbes,
		})
		defer limiter.Close()
	}
	applyMiddleware(router, cfg, logger, limiter)

	healthHandler.RegisterRoutes(router)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r)
		opinionHandler.RegisterRoutes(r)
		accountHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := rdb.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// applyMiddleware installs the shared chain. CORS sits ahead of the limiter
// so preflights are answered without spending a token and 429 responses
// still carry the allow-origin headers a browser needs to read them.
func applyMiddleware(
	r chi.Router,
	cfg *config.Config,
	logger *slog.Logger,
	limiter *middleware.RateLimiter,
) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))
	if limiter != nil {
		r.Use(limiter.Handler)
	}
}
