package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// EventPublisher is what use cases depend on
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                        { return nil }

// Publisher sends domain events through a synchronous sarama producer
type Publisher struct {
	producer sarama.SyncProducer
}

// NewPublisher dials brokers and returns a ready publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}
	logger.Logger.Info().Strs("brokers", brokers).Msg("Event publisher connected")
	return NewPublisherWithProducer(producer), nil
}

// NewPublisherWithProducer wraps an existing producer. Tests pass a sarama mock.
func NewPublisherWithProducer(producer sarama.SyncProducer) *Publisher {
	return &Publisher{producer: producer}
}

// NewProducerConfig waits for all in-sync replicas so a returned Publish is durable
func NewProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "ecommerce-events"
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Compression = sarama.CompressionSnappy
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

// Publish sends event to the topic of its domain, keyed by event.Key so
// events about one entity stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	topic := TopicFor(event.EventType)

	ctx, span := otel.Tracer("kafka").Start(ctx, "publish "+event.EventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", topic),
			attribute.String("messaging.message.id", event.EventID),
		),
	)
	defer span.End()

	body, err := json.Marshal(event)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		countEvent(topic, event.EventType, "out", OutcomeMalformed)
		return fmt.Errorf("failed to encode %s: %w", event.EventType, err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(event.Key),
		Value:   sarama.ByteEncoder(body),
		Headers: injectHeaders(ctx, event),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		countEvent(topic, event.EventType, "out", OutcomeFailed)
		return fmt.Errorf("failed to publish %s to %s: %w", event.EventType, topic, err)
	}

	span.SetAttributes(attribute.Int64("messaging.kafka.offset", offset))
	countEvent(topic, event.EventType, "out", OutcomePublished)

	logger.Debug(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")
	return nil
}

func (p *Publisher) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}

// PublishBestEffort publishes and only logs a failure. A write that already
// committed locally is never failed because its event could not be sent.
func PublishBestEffort(ctx context.Context, publisher EventPublisher, source, eventType, key string, payload any) {
	event, err := NewEvent(source, eventType, key, payload)
	if err == nil {
		err = publisher.Publish(ctx, event)
	}
	if err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", eventType).
			Str("key", key).
			Msg("Domain event not published")
	}
}
