package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the membership service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Domain Metrics
	SignupsTotal            prometheus.CounterVec
	AssignmentsTotal        prometheus.CounterVec
	HoursConfirmedTotal     prometheus.Counter
	NotificationsQueued     prometheus.CounterVec
	NotificationsFailed     prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icems_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "icems_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "icems_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Database Metrics
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icems_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "icems_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Domain Metrics
		SignupsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icems_signups_total",
				Help: "Total event and training signups by kind and position",
			},
			[]string{"kind", "position"},
		),
		AssignmentsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icems_assignments_total",
				Help: "Total staffing assignments by position and outcome",
			},
			[]string{"position", "outcome"},
		),
		HoursConfirmedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "icems_hours_confirmed_total",
				Help: "Total hours-confirmation operations",
			},
		),
		NotificationsQueued: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icems_notifications_queued_total",
				Help: "Total notifications enqueued by kind",
			},
			[]string{"kind"},
		),
		NotificationsFailed: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "icems_notifications_failed_total",
				Help: "Total notification sends that failed by kind",
			},
			[]string{"kind"},
		),
	}
}
