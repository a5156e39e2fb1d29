package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-availability/internal/metrics"
)

type RouterConfig struct {
	Schedule ScheduleService
	Bookings BookingService
	Health   *HealthHandler

	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer // nil serves the default registry

	CORSAllowedOrigins []string
	RateLimitPerSecond int // per client IP, 0 disables
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	health := cfg.Health
	if health == nil {
		health = NewHealthHandler(nil, nil, "", "")
	}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(logger, cfg.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httprate.LimitByIP(cfg.RateLimitPerSecond, time.Second))
	}

	// Health endpoints
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/patients", createPatientHandler(cfg.Bookings))
		r.Get("/schedule", getScheduleHandler(cfg.Schedule))
		r.Put("/schedule", updateScheduleHandler(cfg.Schedule))
	})

	return r
}
