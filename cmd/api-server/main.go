package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/api"
	"github.com/hackgods/clinic-availability/internal/app"
	"github.com/hackgods/clinic-availability/internal/config"
	"github.com/hackgods/clinic-availability/internal/db"
	"github.com/hackgods/clinic-availability/internal/logging"
)

var version = "dev"

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

	logger.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("store", cfg.StoreDriver),
		zap.String("mail_provider", cfg.MailProvider),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.StoreDriver == config.StoreDriverPostgres && cfg.AutoMigrate {
		if err := db.Migrate(cfg.PostgresDSN); err != nil {
			logger.Fatal("migration error", zap.Error(err))
		}
		logger.Info("migrations applied")
	}

	a, err := app.New(rootCtx, cfg, logger, "api-server")
	if err != nil {
		logger.Fatal("startup error", zap.Error(err))
	}
	defer a.Close()

	// Seed today so the first GET is a plain read.
	if _, err := a.Schedule.SeedAhead(rootCtx, time.Now(), 1); err != nil {
		logger.Warn("initial seed failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(a.RouterConfig(version)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-rootCtx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("http server error", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("api-server stopped")
}
