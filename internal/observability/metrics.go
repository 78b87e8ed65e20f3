package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	httpErrorsTotal        *prometheus.CounterVec
	notificationRowsTotal  *prometheus.CounterVec
	notificationSendErrors *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		notificationRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_rows_total",
			Help: "Total number of notification rows persisted by fan-out.",
		}, []string{"recipient_type"})

		notificationSendErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_send_errors_total",
			Help: "Total number of delivery failures per notification driver.",
		}, []string{"driver"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, httpErrorsTotal, notificationRowsTotal, notificationSendErrors)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// NotificationRows exposes the counter for persisted fan-out rows.
func NotificationRows() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationRowsTotal
}

// NotificationSendErrors exposes the counter for driver delivery failures.
func NotificationSendErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationSendErrors
}
