// Package observability owns the Prometheus collectors exported on /metrics.
package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_in_flight_requests",
		Help: "In-flight HTTP requests.",
	})

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	PayrollRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payroll_runs_total",
			Help: "Payroll processing runs by mode and outcome.",
		},
		[]string{"mode", "outcome"},
	)

	PayrollEntriesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payroll_entries_processed_total",
		Help: "Payroll entries whose net salary was computed.",
	})

	OutboxPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_events_published_total",
			Help: "Outbox events relayed to kafka by outcome.",
		},
		[]string{"outcome"},
	)

	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Notifications persisted by delivery mode.",
		},
		[]string{"type"},
	)
)

var initOnce sync.Once

// Init registers every collector in the default registry. Safe to call
// more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			HTTPInFlight,
			HTTPRequestsTotal,
			HTTPRequestDuration,
			PayrollRuns,
			PayrollEntriesProcessed,
			OutboxPublished,
			NotificationsSent,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
