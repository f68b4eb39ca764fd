package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// consumeRetryBackoff spaces out sessions that end in an error, such as an
// unreachable broker
const consumeRetryBackoff = 2 * time.Second

// EventHandler reacts to one decoded event
type EventHandler func(ctx context.Context, event Event) error

// Consumer fans messages of a consumer group out to handlers by event type
type Consumer struct {
	group   sarama.ConsumerGroup
	groupID string
	topics  []string
	backoff time.Duration

	mu       sync.RWMutex
	handlers map[string]EventHandler
}

// NewConsumer joins groupID on brokers. Offsets start at the newest message,
// so a fresh group does not replay history.
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_6_0_0
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to join consumer group %s: %w", groupID, err)
	}
	return newConsumer(group, groupID, topics), nil
}

func newConsumer(group sarama.ConsumerGroup, groupID string, topics []string) *Consumer {
	return &Consumer{
		group:    group,
		groupID:  groupID,
		topics:   topics,
		backoff:  consumeRetryBackoff,
		handlers: map[string]EventHandler{},
	}
}

// RegisterHandler routes eventType to handler, replacing any earlier one
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.mu.Lock()
	c.handlers[eventType] = handler
	c.mu.Unlock()
}

func (c *Consumer) handler(eventType string) (EventHandler, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handlers[eventType]
	return h, ok
}

// Start consumes in the background until ctx is done. Consume returns on
// every rebalance, so it is called in a loop.
func (c *Consumer) Start(ctx context.Context) {
	logger.Logger.Info().
		Str("group_id", c.groupID).
		Strs("topics", c.topics).
		Msg("Event consumer started")

	go func() {
		for ctx.Err() == nil {
			err := c.group.Consume(ctx, c.topics, groupHandler{c})
			if err == nil {
				continue
			}
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			logger.Logger.Error().Err(err).Str("group_id", c.groupID).Dur("retry_in", c.backoff).Msg("Consume session ended")
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.backoff):
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			logger.Logger.Warn().Err(err).Str("group_id", c.groupID).Msg("Consumer group error")
		}
	}()
}

func (c *Consumer) Close() error {
	if c.group == nil {
		return nil
	}
	return c.group.Close()
}

type groupHandler struct{ c *Consumer }

func (groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim marks every message, whatever its outcome. A failing handler
// is logged and counted, never retried.
func (h groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		h.c.dispatch(session.Context(), msg)
		session.MarkMessage(msg, "")
	}
	return nil
}

// dispatch decodes msg and runs the handler registered for its event type
func (c *Consumer) dispatch(ctx context.Context, msg *sarama.ConsumerMessage) string {
	ctx, span := otel.Tracer("kafka").Start(extractContext(ctx, msg.Headers), "consume "+msg.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source.name", msg.Topic),
			attribute.String("messaging.kafka.consumer.group", c.groupID),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		span.SetStatus(codes.Error, "undecodable message")
		countEvent(msg.Topic, "unknown", "in", OutcomeMalformed)
		logger.Warn(ctx).Err(err).Str("topic", msg.Topic).Int64("offset", msg.Offset).Msg("Dropping undecodable message")
		return OutcomeMalformed
	}
	span.SetAttributes(
		attribute.String("messaging.message.id", event.EventID),
		attribute.String("event.type", event.EventType),
	)

	handle, ok := c.handler(event.EventType)
	if !ok {
		countEvent(msg.Topic, event.EventType, "in", OutcomeSkipped)
		return OutcomeSkipped
	}

	log := logger.Info
	outcome := OutcomeHandled
	err := handle(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "handler failed")
		log = logger.Error
		outcome = OutcomeFailed
	}
	countEvent(msg.Topic, event.EventType, "in", outcome)

	log(ctx).
		Err(err).
		Str("event_type", event.EventType).
		Str("event_id", event.EventID).
		Str("source", event.Source).
		Str("outcome", outcome).
		Msg("Event consumed")
	return outcome
}
