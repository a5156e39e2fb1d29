// Command migrate applies the embedded schema migrations.
//
//	migrate            apply all pending migrations
//	migrate force N    mark version N as applied after a failed run
package main

import (
	"flag"
	"log"
	"strconv"

	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/config"
	"github.com/hackgods/clinic-availability/internal/db"
	"github.com/hackgods/clinic-availability/internal/logging"
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.StoreDriver != config.StoreDriverPostgres {
		logger.Fatal("migrations need STORE_DRIVER=postgres", zap.String("store", cfg.StoreDriver))
	}

	args := flag.Args()
	switch {
	case len(args) == 0 || args[0] == "up":
		if err := db.Migrate(cfg.PostgresDSN); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		logger.Info("migrations applied")
	case args[0] == "force" && len(args) == 2:
		version, err := strconv.Atoi(args[1])
		if err != nil {
			logger.Fatal("invalid version", zap.String("version", args[1]))
		}
		if err := db.Force(cfg.PostgresDSN, version); err != nil {
			logger.Fatal("force failed", zap.Int("version", version), zap.Error(err))
		}
		logger.Info("migration version forced", zap.Int("version", version))
	default:
		logger.Fatal("usage: migrate [up | force N]", zap.Strings("args", args))
	}
}
