package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы попытки создать бронирование
const (
	OutcomeCreated          = "created"
	OutcomeConflict         = "conflict"
	OutcomeInvalid          = "invalid"
	OutcomeStoreUnavailable = "store_unavailable"
	OutcomeError            = "error"
)

// Metrics набор Prometheus-метрик сервиса
// Методы безопасно вызывать на nil-указателе (метрики выключены)
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	bookingOutcomes     *prometheus.CounterVec
	statusTransitions   *prometheus.CounterVec
	dbQueryDuration     *prometheus.HistogramVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		bookingOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_create_outcomes_total",
			Help:        "Booking creation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		statusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Booking status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency by operation and result",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation", "result"}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, started time.Time) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}

// BookingOutcome фиксирует исход попытки создать бронирование
func (m *Metrics) BookingOutcome(outcome string) {
	if m == nil {
		return
	}
	m.bookingOutcomes.WithLabelValues(outcome).Inc()
}

// StatusTransition фиксирует смену статуса бронирования
func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// ObserveQuery фиксирует длительность SQL запроса
func (m *Metrics) ObserveQuery(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, result).Observe(time.Since(started).Seconds())
}
