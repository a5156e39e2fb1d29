package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "clinic"

// Metrics exposes counters and histograms for seeding, bookings and HTTP.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	daysSeeded     prometheus.Counter
	rowsSeeded     prometheus.Counter
	seedFailures   prometheus.Counter
	bookings       prometheus.Counter
	notifications  *prometheus.CounterVec
	statusUpdates  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		daysSeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "days_seeded_total",
			Help:      "Dates whose availability grid was created",
		}),
		rowsSeeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "rows_seeded_total",
			Help:      "Availability rows inserted by the day seeder",
		}),
		seedFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "seed_failures_total",
			Help:      "Seed attempts rolled back because of a storage error",
		}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings persisted",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "notifications_total",
			Help:      "Confirmation emails by outcome",
		}, []string{"status"}),
		statusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "schedule",
			Name:      "status_updates_total",
			Help:      "Slot status updates by outcome",
		}, []string{"result"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.daysSeeded,
		m.rowsSeeded,
		m.seedFailures,
		m.bookings,
		m.notifications,
		m.statusUpdates,
		m.requestLatency,
	)
	return m
}

func (m *Metrics) ObserveDaySeeded(rows int) {
	if m == nil {
		return
	}
	m.daysSeeded.Inc()
	m.rowsSeeded.Add(float64(rows))
}

func (m *Metrics) ObserveSeedFailure() {
	if m == nil {
		return
	}
	m.seedFailures.Inc()
}

func (m *Metrics) ObserveBooking(notified bool) {
	if m == nil {
		return
	}
	m.bookings.Inc()
	status := "sent"
	if !notified {
		status = "failed"
	}
	m.notifications.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveStatusUpdate(found bool) {
	if m == nil {
		return
	}
	result := "updated"
	if !found {
		result = "not_found"
	}
	m.statusUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(method, route, statusLabel(status)).Observe(seconds)
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
