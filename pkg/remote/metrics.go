package remote

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	lookupRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_lookup_requests_total",
			Help: "Total number of calls to sibling services",
		},
		[]string{"service", "outcome"},
	)

	lookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_lookup_duration_seconds",
			Help:    "Duration of calls to sibling services in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
)

func init() {
	prometheus.MustRegister(lookupRequests)
	prometheus.MustRegister(lookupDuration)
}

func observe(service string, start time.Time, err error) {
	outcome := "success"
	if lookupErr, ok := AsLookupError(err); ok {
		outcome = lookupErr.Kind.String()
	} else if err != nil {
		outcome = "error"
	}

	lookupRequests.WithLabelValues(service, outcome).Inc()
	lookupDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}
