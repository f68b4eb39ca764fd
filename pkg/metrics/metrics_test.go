package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderIncrementsServiceLabel(t *testing.T) {
	recorder := NewRecorder("order-service")
	before := testutil.ToFloat64(OrdersCreated.WithLabelValues("order-service"))

	recorder.Inc(OrdersCreated)
	recorder.Inc(OrdersCreated)

	assert.Equal(t, before+2, testutil.ToFloat64(OrdersCreated.WithLabelValues("order-service")))
}

func TestObserveHTTPBucketsStatus(t *testing.T) {
	ObserveHTTP("payment-service", http.MethodGet, "/api/payments/{id}", http.StatusNotFound, 5*time.Millisecond)

	got := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("payment-service", http.MethodGet, "/api/payments/{id}", "4xx"))
	assert.GreaterOrEqual(t, got, float64(1))
	assert.Equal(t, "5xx", statusLabel(503))
	assert.Equal(t, "2xx", statusLabel(200))
}
