package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("test", prometheus.NewRegistry())

	m.BookingOutcome(OutcomeCreated)
	m.BookingOutcome(OutcomeCreated)
	m.BookingOutcome(OutcomeConflict)
	m.StatusTransition("NEW", "CONFIRMED")
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues(OutcomeCreated)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingOutcomes.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusTransitions.WithLabelValues("NEW", "CONFIRMED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BookingOutcome(OutcomeCreated)
		m.StatusTransition("NEW", "CANCELLED")
		m.ObserveHTTPRequest("GET", "/", 200, time.Now())
		m.ObserveQuery("SELECT", time.Now(), nil)
	})
}
