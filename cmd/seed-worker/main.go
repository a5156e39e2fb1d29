package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/app"
	"github.com/hackgods/clinic-availability/internal/config"
	"github.com/hackgods/clinic-availability/internal/logging"
	"github.com/hackgods/clinic-availability/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("seed-worker starting up",
		zap.String("env", cfg.Env),
		zap.Duration("interval", cfg.WorkerInterval),
		zap.Int("days_ahead", cfg.SeedDaysAhead),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(rootCtx, cfg, logger, "seed-worker")
	if err != nil {
		logger.Fatal("startup error", zap.Error(err))
	}
	defer a.Close()

	// Run once at startup
	runOnce(rootCtx, a.Schedule, cfg.SeedDaysAhead, logger)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rootCtx.Done():
			logger.Info("shutdown signal received, stopping seed worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, a.Schedule, cfg.SeedDaysAhead, logger)
		}
	}
}

func runOnce(ctx context.Context, svc *schedule.Service, days int, logger *zap.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	start := time.Now()
	seeded, err := svc.SeedAhead(runCtx, start, days)
	if err != nil {
		logger.Error("seed run error", zap.Int("seeded", seeded), zap.Error(err))
		return
	}
	logger.Info("seed run complete",
		zap.Int("seeded", seeded),
		zap.Int("days", days),
		zap.Duration("took", time.Since(start)),
	)
}
