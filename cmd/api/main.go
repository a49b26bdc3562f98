package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/checkin-service/internal/api/http"
	"github.com/spec-kit/checkin-service/internal/api/http/handlers"
	"github.com/spec-kit/checkin-service/internal/cache"
	"github.com/spec-kit/checkin-service/internal/config"
	"github.com/spec-kit/checkin-service/internal/events"
	"github.com/spec-kit/checkin-service/internal/observability"
	"github.com/spec-kit/checkin-service/internal/persistence"
	"github.com/spec-kit/checkin-service/internal/repository"
	"github.com/spec-kit/checkin-service/internal/service"
	"github.com/spec-kit/checkin-service/internal/upstream"
	"github.com/spec-kit/checkin-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics("checkin")

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var attendeeCache service.AttendeeCache
	if redis.Enabled() {
		attendeeCache = cache.NewAttendeeCache(redis.Client, cfg.Cache.TTL())
	}

	var snapshots repository.SnapshotRepository
	if pg.Enabled() {
		snapshots = repository.NewSnapshotRepository(pg.PoolHandle())
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartSnapshotWorker(service.NewSnapshotRecorder(dispatcher, snapshots, logger))

	client, err := upstream.NewClient(upstream.ConfigFrom(cfg.Upstream), logger, metrics)
	if err != nil {
		logger.Fatal("failed to build upstream client", zap.Error(err))
	}

	checkinService := service.NewCheckinService(service.CheckinDependencies{
		Source:        client,
		Cache:         attendeeCache,
		Snapshots:     snapshots,
		Dispatcher:    dispatcher,
		Metrics:       metrics,
		Logger:        logger,
		StrictFilter:  cfg.Filter.Strict,
		StaleFallback: cfg.Cache.StaleFallback,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Checkins: handlers.NewCheckinsHandler(checkinService),
		Metrics:  metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
