// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/traffic-registry/internal/admin"
	"github.com/carterperez-dev/traffic-registry/internal/auth"
	"github.com/carterperez-dev/traffic-registry/internal/avatar"
	"github.com/carterperez-dev/traffic-registry/internal/config"
	"github.com/carterperez-dev/traffic-registry/internal/core"
	"github.com/carterperez-dev/traffic-registry/internal/driver"
	"github.com/carterperez-dev/traffic-registry/internal/export"
	"github.com/carterperez-dev/traffic-registry/internal/health"
	"github.com/carterperez-dev/traffic-registry/internal/middleware"
	"github.com/carterperez-dev/traffic-registry/internal/seed"
	"github.com/carterperez-dev/traffic-registry/internal/server"
	"github.com/carterperez-dev/traffic-registry/internal/statistics"
	"github.com/carterperez-dev/traffic-registry/internal/user"
	"github.com/carterperez-dev/traffic-registry/internal/vehicle"
	"github.com/carterperez-dev/traffic-registry/internal/violation"
)

const (
	drainDelay = 5 * time.Second

	credentialRequests = 10
	credentialBurst    = 5
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
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

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}()
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	var schemaVersion uint
	if cfg.Database.AutoMigrate {
		schemaVersion, err = core.Migrate(cfg.Database.URL)
		if err != nil {
			return err
		}
		logger.Info("database migrated", "version", schemaVersion)
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}()
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	hasher, err := core.NewPasswordHasher(cfg.Security)
	if err != nil {
		return err
	}

	sessionManager, err := auth.NewSessionManager(cfg.Session)
	if err != nil {
		return err
	}
	cookies := auth.NewCookieJar(cfg.Session)
	sessions := auth.NewSessions(sessionManager, cookies)
	logger.Info("session manager initialized",
		"algorithm", "HS256",
		"ttl", sessionManager.TTL().String(),
	)

	driverRepo := driver.NewRepository(db.DB)
	vehicleRepo := vehicle.NewRepository(db.DB)
	violationRepo := violation.NewRepository(db.DB)
	userRepo := user.NewRepository(db.DB)

	userSvc := user.NewService(userRepo, avatar.NewStore(cfg.Uploads))
	authSvc := auth.NewService(userSvc, hasher, cfg.Bootstrap.AdminEmail)
	driverSvc := driver.NewService(driverRepo)
	vehicleSvc := vehicle.NewService(vehicleRepo)
	violationSvc := violation.NewService(violationRepo)
	statisticsSvc := statistics.NewService(driverRepo, vehicleRepo, violationRepo).
		WithCache(redis, redis.Key("statistics", "dashboard"), cfg.Redis.CacheTTL)

	if cfg.Seed.Enabled {
		if err := seed.DemoData(ctx, db.DB); err != nil {
			return err
		}
	}
	statisticsSvc.Invalidate(ctx)

	if err := userSvc.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail); err != nil {
		return err
	}

	healthHandler := health.NewHandler(
		schemaVersion,
		health.Dependency{Name: "database", Pinger: db},
		health.Dependency{Name: "redis", Pinger: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Overview:   admin.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB.DB, "registry"),
	)
	httpMetrics := middleware.NewHTTPMetrics(registry)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(httpMetrics.Handler)
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Scope: "api",
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:  true,
			SkipPaths: []string{"/healthz", "/livez", "/readyz", "/metrics"},
			OnReject:  httpMetrics.RateLimited,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))
	router.Use(middleware.MaxBody(cfg.Server.MaxBodyBytes))

	healthHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	uploads := http.StripPrefix(
		cfg.Uploads.PublicPrefix,
		http.FileServer(http.Dir(cfg.Uploads.Dir)),
	)
	router.Handle(cfg.Uploads.PublicPrefix+"/*", uploads)

	actorLimit := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Scope: "accounts",
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByActor,
		FailOpen: true,
		OnReject: httpMetrics.RateLimited,
	}).Handler
	authenticator := chi.Chain(
		middleware.Authenticator(sessionManager, userSvc, cookies),
		actorLimit,
	).Handler
	adminOnly := middleware.RequireAdmin
	credentialLimit := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Scope:    "credentials",
		Limit:    middleware.PerMinute(credentialRequests, credentialBurst),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
		OnReject: httpMetrics.RateLimited,
	}).Handler

	router.Route("/api", func(r chi.Router) {
		auth.NewHandler(authSvc, sessions).RegisterRoutes(r, credentialLimit)

		r.Group(func(r chi.Router) {
			r.Use(middleware.InvalidateOnWrite(statisticsSvc.Invalidate))
			user.NewHandler(userSvc, sessions).RegisterRoutes(r, authenticator, adminOnly)
			driver.NewHandler(driverSvc).RegisterRoutes(r, authenticator)
			vehicle.NewHandler(vehicleSvc).RegisterRoutes(r, authenticator)
			violation.NewHandler(violationSvc).RegisterRoutes(r, authenticator, adminOnly)
		})

		statistics.NewHandler(statisticsSvc).RegisterRoutes(r)
		export.NewHandler().RegisterRoutes(r)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
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

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
