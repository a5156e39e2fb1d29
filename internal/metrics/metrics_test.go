package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveDaySeeded(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDaySeeded(54)
	m.ObserveDaySeeded(54)
	m.ObserveSeedFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.daysSeeded))
	assert.Equal(t, 108.0, testutil.ToFloat64(m.rowsSeeded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.seedFailures))
}

func TestObserveBooking(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveBooking(true)
	m.ObserveBooking(false)
	m.ObserveBooking(false)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.bookings))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifications.WithLabelValues("sent")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.notifications.WithLabelValues("failed")))
}

func TestObserveStatusUpdate(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveStatusUpdate(true)
	m.ObserveStatusUpdate(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusUpdates.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusUpdates.WithLabelValues("not_found")))
}

func TestObserveRequestBucketsStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", "/api/schedule", 200, 0.01)
	m.ObserveRequest("PUT", "/api/schedule", 404, 0.01)

	assert.Equal(t, 2, testutil.CollectAndCount(m.requestLatency))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveDaySeeded(54)
	m.ObserveSeedFailure()
	m.ObserveBooking(false)
	m.ObserveStatusUpdate(true)
	m.ObserveRequest("GET", "/", 200, 0)
}
