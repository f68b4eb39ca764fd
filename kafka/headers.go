package kafka

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
	headerSource    = "source"
)

var eventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_events_total",
		Help: "Domain events by topic, type, direction and outcome",
	},
	[]string{"topic", "event_type", "direction", "outcome"},
)

func init() {
	prometheus.MustRegister(eventsTotal)
}

// Outcomes recorded for every produced or consumed event
const (
	OutcomePublished = "published"
	OutcomeHandled   = "handled"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
	OutcomeMalformed = "malformed"
)

func countEvent(topic, eventType, direction, outcome string) {
	eventsTotal.WithLabelValues(topic, eventType, direction, outcome).Inc()
}

// injectHeaders writes the envelope identity plus the trace context of ctx
func injectHeaders(ctx context.Context, event Event) []sarama.RecordHeader {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := make([]sarama.RecordHeader, 0, 3+len(carrier))
	headers = append(headers,
		sarama.RecordHeader{Key: []byte(headerEventType), Value: []byte(event.EventType)},
		sarama.RecordHeader{Key: []byte(headerEventID), Value: []byte(event.EventID)},
		sarama.RecordHeader{Key: []byte(headerSource), Value: []byte(event.Source)},
	)
	for _, key := range carrier.Keys() {
		headers = append(headers, sarama.RecordHeader{Key: []byte(key), Value: []byte(carrier.Get(key))})
	}
	return headers
}

// extractContext continues the producer's trace, if the message carries one
func extractContext(ctx context.Context, headers []*sarama.RecordHeader) context.Context {
	carrier := propagation.MapCarrier{}
	for _, h := range headers {
		if h == nil {
			continue
		}
		carrier.Set(string(h.Key), string(h.Value))
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}
