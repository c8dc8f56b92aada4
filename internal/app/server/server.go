package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"timeclock/internal/domain/allocation"
	"timeclock/internal/domain/audit"
	"timeclock/internal/domain/directory"
	"timeclock/internal/domain/notifications"
	"timeclock/internal/domain/payroll"
	"timeclock/internal/domain/reconcile"
	"timeclock/internal/domain/requests"
	"timeclock/internal/domain/schedule"
	"timeclock/internal/domain/timeentry"
	"timeclock/internal/domain/timeoff"
	"timeclock/internal/platform/cache"
	"timeclock/internal/platform/clock"
	"timeclock/internal/platform/config"
	"timeclock/internal/platform/db"
	"timeclock/internal/platform/jobs"
	"timeclock/internal/platform/logging"
	"timeclock/internal/platform/metrics"
	allocationhandler "timeclock/internal/transport/http/handlers/allocation"
	audithandler "timeclock/internal/transport/http/handlers/audit"
	directoryhandler "timeclock/internal/transport/http/handlers/directory"
	notificationshandler "timeclock/internal/transport/http/handlers/notifications"
	payrollhandler "timeclock/internal/transport/http/handlers/payroll"
	reportshandler "timeclock/internal/transport/http/handlers/reports"
	requestshandler "timeclock/internal/transport/http/handlers/requests"
	schedulehandler "timeclock/internal/transport/http/handlers/schedule"
	timeentryhandler "timeclock/internal/transport/http/handlers/timeentry"
	timeoffhandler "timeclock/internal/transport/http/handlers/timeoff"
	"timeclock/internal/transport/http/middleware"
	"timeclock/migrations"
)

const idempotencyTTL = 24 * time.Hour

type App struct {
	Config config.Config
	DB     *db.Pool
	Redis  *redis.Client
	Router http.Handler
}

// New connects to Postgres (and Redis when configured), applies migrations
// and builds the router. Close releases both connections.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	if cfg.SeedEmployeesFile != "" {
		count, err := db.SeedEmployees(ctx, pool, cfg.SeedEmployeesFile)
		if err != nil {
			pool.Close()
			return nil, err
		}
		slog.Info("employees seeded", "count", count, "file", cfg.SeedEmployeesFile)
	}

	rdb, err := cache.Connect(ctx, cfg)
	if err != nil {
		// Redis only backs optional features; run without it.
		slog.Warn("redis unavailable", "addr", cfg.RedisAddr, "err", err)
		rdb = nil
	}

	router, err := NewRouter(ctx, cfg, pool, rdb)
	if err != nil {
		pool.Close()
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, err
	}
	return &App{Config: cfg, DB: pool, Redis: rdb, Router: router}, nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	a.DB.Close()
}

// NewRouter wires stores, services and handlers onto a chi router. The
// background job queue lives until ctx is cancelled.
func NewRouter(ctx context.Context, cfg config.Config, pool *db.Pool, rdb *redis.Client) (http.Handler, error) {
	loc := cfg.Location()
	collector := metrics.New()
	queue := jobs.New(jobs.DefaultQueueSize, collector)
	queue.Start(ctx)

	employees := directory.NewService(directory.NewStore(pool))

	var sinks []notifications.Sink
	if rdb != nil {
		sinks = append(sinks, notifications.NewPublisher(rdb))
	}
	notifier := notifications.New(notifications.NewStore(pool), sinks...)
	auditLog := audit.New(pool)

	ledger := timeentry.NewService(timeentry.NewStore(pool), employees, clock.System, loc)
	schedules := schedule.NewService(schedule.NewStore(pool), employees)
	workflow := requests.NewService(requests.NewStore(pool), employees, schedules, notifier, clock.System, loc)
	timeOff := timeoff.NewService(timeoff.NewStore(pool), employees, notifier, cfg.StandardWorkdayHours, clock.System, loc)
	reconciler := reconcile.NewService(employees, schedules, ledger, cfg.OvertimeThresholdHours)
	payStubs := payroll.NewService(payroll.NewStore(pool), employees, reconciler, notifier, payroll.NewCalculator(cfg), clock.System)
	if cfg.ExportDir != "" {
		payStubs.ArchiveDir = filepath.Join(cfg.ExportDir, "paystubs")
		payStubs.Jobs = queue
	}
	planner := allocation.NewService(allocation.NewStore(pool), employees)

	var idempotency middleware.IdempotencyStore = middleware.NewMemoryIdempotencyStore()
	if rdb != nil {
		idempotency = middleware.NewRedisIdempotencyStore(rdb, idempotencyTTL)
	}

	limiter, err := middleware.NewLimiter(cfg.RateLimit, rdb)
	if err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), cfg.ReadyTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Handle("/metrics", collector.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RateLimit(limiter))

		directoryhandler.NewHandler(employees).RegisterRoutes(r)
		timeentryhandler.NewHandler(ledger, collector).RegisterRoutes(r)
		schedulehandler.NewHandler(schedules, auditLog).RegisterRoutes(r)
		requestshandler.NewHandler(workflow, auditLog, collector).RegisterRoutes(r)
		timeoffhandler.NewHandler(timeOff, auditLog, collector).RegisterRoutes(r)
		reportshandler.NewHandler(reconciler, loc).RegisterRoutes(r)
		payrollhandler.NewHandler(payStubs, auditLog, idempotency, collector).RegisterRoutes(r)
		allocationhandler.NewHandler(planner, auditLog).RegisterRoutes(r)
		notificationshandler.NewHandler(notifier).RegisterRoutes(r)
		audithandler.NewHandler(auditLog).RegisterRoutes(r)
	})

	return router, nil
}

// Run loads configuration, serves until SIGINT or SIGTERM and then drains
// in-flight requests.
func Run() {
	cfg := config.Load()
	slog.SetDefault(logging.Setup(os.Stdout, cfg.LogFile, cfg.SlogLevel()))

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown failed", "err", err)
		}
	}()

	slog.Info("timeclock server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "err", err)
	}
}
