package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/api"
	"github.com/hackgods/clinic-availability/internal/booking"
	"github.com/hackgods/clinic-availability/internal/config"
	"github.com/hackgods/clinic-availability/internal/db"
	"github.com/hackgods/clinic-availability/internal/metrics"
	"github.com/hackgods/clinic-availability/internal/notify"
	redisclient "github.com/hackgods/clinic-availability/internal/redis"
	"github.com/hackgods/clinic-availability/internal/schedule"
)

// App holds the stores and services shared by every command.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Pool  *pgxpool.Pool // nil with the memory driver
	Redis *redis.Client // nil when REDIS_ADDR is empty

	Roster       schedule.Roster
	ScheduleRepo schedule.Repository
	BookingRepo  booking.Repository
	Schedule     *schedule.Service
	Bookings     *booking.Service
}

// New connects the configured stores and builds the services. The caller
// must Close the returned App.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, appName string) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.Metrics = metrics.New(a.Registry)

	roster := schedule.DefaultRoster()
	if cfg.RosterFile != "" {
		r, err := schedule.LoadRoster(cfg.RosterFile)
		if err != nil {
			return nil, err
		}
		roster = r
	}
	a.Roster = roster

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		a.ScheduleRepo = schedule.NewMemoryRepository()
		a.BookingRepo = booking.NewMemoryRepository()
		logger.Info("using in-memory store")
	default:
		pgCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		pool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN, db.PoolOptions{AppName: appName})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("postgres connection error: %w", err)
		}
		a.Pool = pool
		a.ScheduleRepo = schedule.NewPgRepository(pool)
		a.BookingRepo = booking.NewPgRepository(pool)
		logger.Info("connected to postgres")
	}

	var locker schedule.Locker
	if cfg.RedisEnabled() {
		rdb, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		a.Redis = rdb
		locker = redisclient.NewDateLocker(rdb, cfg.LockTTL, cfg.LockWait)
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
	}

	sender, err := notify.New(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	seeder := schedule.NewSeeder(a.ScheduleRepo, roster, locker, a.Metrics, logger)
	a.Schedule = schedule.NewService(a.ScheduleRepo, seeder, cfg.Timezone, a.Metrics, logger)
	a.Bookings = booking.NewService(a.BookingRepo, sender, cfg.ClinicName, a.Metrics, logger)

	return a, nil
}

// HealthHandler pings whichever stores are connected.
func (a *App) HealthHandler(version string) *api.HealthHandler {
	var pg, rd api.Pinger
	if a.Pool != nil {
		pg = a.Pool
	}
	if a.Redis != nil {
		rdb := a.Redis
		rd = api.PingerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	return api.NewHealthHandler(pg, rd, a.Config.Env, version)
}

func (a *App) RouterConfig(version string) api.RouterConfig {
	return api.RouterConfig{
		Schedule:           a.Schedule,
		Bookings:           a.Bookings,
		Health:             a.HealthHandler(version),
		Logger:             a.Logger,
		Metrics:            a.Metrics,
		Gatherer:           a.Registry,
		CORSAllowedOrigins: a.Config.CORSAllowedOrigins,
		RateLimitPerSecond: a.Config.RateLimitPerSecond,
	}
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("error closing redis", zap.Error(err))
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
