package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderItemPayload struct {
	ProductID       int `json:"productId"`
	OrderID         int `json:"orderId"`
	OrderedQuantity int `json:"orderedQuantity"`
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, TopicOrderEvents, TopicFor(EventTypeOrderCreated))
	assert.Equal(t, TopicShippingEvents, TopicFor(EventTypeShippingCreated))
	assert.Equal(t, TopicFavouriteEvents, TopicFor(EventTypeFavouriteRemoved))
	assert.Equal(t, "payment-service", ServiceFor(EventTypePaymentCompleted))
}

func TestPublishSendsEnvelopeToDerivedTopic(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicShippingEvents {
			return errors.New("unexpected topic " + msg.Topic)
		}
		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			return err
		}
		if event.EventType != EventTypeShippingCreated {
			return errors.New("unexpected event type " + event.EventType)
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer)
	event, err := NewEvent("shipping-service", EventTypeShippingCreated, "/501/900", orderItemPayload{501, 900, 2})
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), event))
	require.NoError(t, publisher.Close())
}

func TestPublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer)
	event, err := NewEvent("order-service", EventTypeOrderCreated, "1", map[string]int{"orderId": 1})
	require.NoError(t, err)

	assert.Error(t, publisher.Publish(context.Background(), event))
	producer.Close()
}

func TestDispatchRunsRegisteredHandler(t *testing.T) {
	consumer := newConsumer(nil, "test-group", []string{TopicShippingEvents})

	var got orderItemPayload
	consumer.RegisterHandler(EventTypeShippingCreated, func(ctx context.Context, event Event) error {
		return event.Decode(&got)
	})

	event, err := NewEvent("shipping-service", EventTypeShippingCreated, "/501/900", orderItemPayload{501, 900, 3})
	require.NoError(t, err)
	raw, err := json.Marshal(event)
	require.NoError(t, err)

	outcome := consumer.dispatch(context.Background(), &sarama.ConsumerMessage{Topic: TopicShippingEvents, Value: raw})
	assert.Equal(t, OutcomeHandled, outcome)
	assert.Equal(t, orderItemPayload{501, 900, 3}, got)
}

func TestDispatchSkipsUnknownAndMalformed(t *testing.T) {
	consumer := newConsumer(nil, "test-group", nil)

	assert.Equal(t, OutcomeMalformed, consumer.dispatch(context.Background(), &sarama.ConsumerMessage{Value: []byte("not json")}))

	event, err := NewEvent("order-service", EventTypeOrderDeleted, "1", nil)
	require.NoError(t, err)
	raw, _ := json.Marshal(event)
	assert.Equal(t, OutcomeSkipped, consumer.dispatch(context.Background(), &sarama.ConsumerMessage{Value: raw}))

	consumer.RegisterHandler(EventTypeOrderDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	assert.Equal(t, OutcomeFailed, consumer.dispatch(context.Background(), &sarama.ConsumerMessage{Value: raw}))
}

func TestNopPublisher(t *testing.T) {
	var publisher EventPublisher = NopPublisher{}
	assert.NoError(t, publisher.Publish(context.Background(), Event{}))
	assert.NoError(t, publisher.Close())
}

func TestHeadersCarryEventIdentity(t *testing.T) {
	event, err := NewEvent("favourite-service", EventTypeFavouriteAdded, "/101/501/x", nil)
	require.NoError(t, err)

	got := map[string]string{}
	for _, h := range injectHeaders(context.Background(), event) {
		got[string(h.Key)] = string(h.Value)
	}

	assert.Equal(t, EventTypeFavouriteAdded, got[headerEventType])
	assert.Equal(t, event.EventID, got[headerEventID])
	assert.Equal(t, "favourite-service", got[headerSource])
}

// failingGroup fails every session, like a group whose brokers are down
type failingGroup struct {
	sarama.ConsumerGroup
	calls  atomic.Int32
	errors chan error
}

func (g *failingGroup) Consume(context.Context, []string, sarama.ConsumerGroupHandler) error {
	g.calls.Add(1)
	return errors.New("kafka: client has run out of available brokers")
}

func (g *failingGroup) Errors() <-chan error { return g.errors }

func TestStartBacksOffBetweenFailedSessions(t *testing.T) {
	group := &failingGroup{errors: make(chan error)}
	t.Cleanup(func() { close(group.errors) })
	consumer := newConsumer(group, "test-group", []string{TopicOrderEvents})
	consumer.backoff = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 220*time.Millisecond)
	defer cancel()
	consumer.Start(ctx)
	<-ctx.Done()
	time.Sleep(20 * time.Millisecond)

	calls := group.calls.Load()
	assert.GreaterOrEqual(t, calls, int32(2))
	assert.LessOrEqual(t, calls, int32(6))

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, calls, group.calls.Load(), "no session after ctx is done")
}
