package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/scoutdesk/internal/adapters/http/api"
	"github.com/okian/scoutdesk/internal/adapters/http/swagger"
	"github.com/okian/scoutdesk/internal/adapters/repository"
	app "github.com/okian/scoutdesk/internal/app"
	"github.com/okian/scoutdesk/internal/config"
	"github.com/okian/scoutdesk/pkg/logger"
	"github.com/okian/scoutdesk/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger isn't configured yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.Init(
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
		metrics.WithConstLabels(cfg.MetricsLabels),
	)

	// Only the log level is applied without a restart.
	err = config.Watch(ctx,
		func(c *config.Config) {
			if err := logger.SetLevelString(c.LogLevel); err == nil {
				logger.Get().Info(ctx, "log level reloaded", logger.String("log_level", c.LogLevel))
			}
		},
		func(err error) {
			logger.Get().Warn(ctx, "ignoring invalid config change", logger.Error(err))
		})
	if err != nil {
		logger.Get().Warn(ctx, "config file will not be watched", logger.Error(err))
	}

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "scoutdesk exited with error", logger.Error(err))
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	svc, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := svc.Stop(stopCtx); err != nil {
			log.Error(ctx, "service stop failed", logger.Error(err))
		}
	}()

	go startMetricsUpdater(ctx, svc, metrics.RefreshInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// newService opens the configured store and builds the service around it.
func newService(ctx context.Context, cfg *config.Config) (*app.Service, error) {
	store, err := repository.Open(ctx, cfg.StoreDriver, cfg.SQLitePath,
		repository.WithLogger(logger.Named("store")))
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithStore(store),
		app.WithLogger(logger.Named("service")),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.EventQueueSize),
		app.WithIdempotencySize(cfg.IdempotencySize),
		app.WithIdempotencyTTL(cfg.IdempotencyTTL),
		app.WithMaxSearchLength(cfg.MaxSearchLength),
	), nil
}

// newHandler registers the docs and business routes on a fresh mux.
func newHandler(ctx context.Context, svc *app.Service) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc).Register(ctx, mux)
	return mux
}

// startMetricsUpdater samples system and service gauges every interval.
func startMetricsUpdater(ctx context.Context, svc *app.Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
			updateServiceMetrics(svc)
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}

// updateServiceMetrics copies queue and worker figures from the service stats.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	queueLen, _ := stats["queue_length"].(int)
	if capacity, ok := stats["queue_capacity"].(int); ok {
		metrics.UpdateQueueStats(queueLen, capacity)
	}
	if workers, ok := stats["worker_count"].(int); ok {
		metrics.UpdateWorkerCount(workers)
	}
}
