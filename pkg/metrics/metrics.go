package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTP metrics shared by every domain service
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)

	HTTPRequestSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "http_request_duration_summary",
			Help: "Summary of HTTP request durations with percentiles",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"service", "route"},
	)
)

// Business counters
var (
	UsersCreated      = newBusinessCounter("users_created_total", "Total number of users created")
	UsersLoginSuccess = newBusinessCounter("users_login_success_total", "Total number of successful logins")
	UsersLoginFailed  = newBusinessCounter("users_login_failed_total", "Total number of failed logins")

	OrdersCreated   = newBusinessCounter("orders_created_total", "Total number of orders created")
	OrdersCompleted = newBusinessCounter("orders_completed_total", "Total number of orders whose payment completed")
	OrdersCancelled = newBusinessCounter("orders_cancelled_total", "Total number of orders deleted")

	PaymentsSuccess = newBusinessCounter("payments_success_total", "Total number of completed payments")
	PaymentsFailed  = newBusinessCounter("payments_failed_total", "Total number of failed payments")
	PaymentsPending = newBusinessCounter("payments_pending_total", "Total number of payments created without completion")
)

func newBusinessCounter(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: name, Help: help},
		[]string{"service"},
	)
}

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestSummary,
		UsersCreated,
		UsersLoginSuccess,
		UsersLoginFailed,
		OrdersCreated,
		OrdersCompleted,
		OrdersCancelled,
		PaymentsSuccess,
		PaymentsFailed,
		PaymentsPending,
	)
}

// Recorder increments business counters for one service
type Recorder struct {
	service string
}

func NewRecorder(service string) *Recorder {
	return &Recorder{service: service}
}

// Inc increments counter for the recorder's service
func (r *Recorder) Inc(counter *prometheus.CounterVec) {
	counter.WithLabelValues(r.service).Inc()
}

// ObserveHTTP records one completed request
func ObserveHTTP(service, method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(service, method, route, statusLabel(status)).Inc()
	HTTPRequestDuration.WithLabelValues(service, method, route).Observe(duration.Seconds())
	HTTPRequestSummary.WithLabelValues(service, route).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
