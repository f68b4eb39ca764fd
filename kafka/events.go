package kafka

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventTypeOrderCreated     = "order.created"
	EventTypeOrderUpdated     = "order.updated"
	EventTypeOrderDeleted     = "order.deleted"
	EventTypePaymentCreated   = "payment.created"
	EventTypePaymentCompleted = "payment.completed"
	EventTypeShippingCreated  = "shipping.created"
	EventTypeFavouriteAdded   = "favourite.added"
	EventTypeFavouriteRemoved = "favourite.removed"
)

// Kafka topics, one per emitting domain
const (
	TopicOrderEvents     = "order-events"
	TopicPaymentEvents   = "payment-events"
	TopicShippingEvents  = "shipping-events"
	TopicFavouriteEvents = "favourite-events"
)

// AllTopics lists every topic a service may publish to
var AllTopics = []string{TopicOrderEvents, TopicPaymentEvents, TopicShippingEvents, TopicFavouriteEvents}

// Event is the envelope of every domain event
type Event struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Source    string          `json:"source"`
	Key       string          `json:"key"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEvent builds an envelope around payload
func NewEvent(source, eventType, key string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Source:    source,
		Key:       key,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}, nil
}

// Decode unmarshals the payload into out
func (e Event) Decode(out any) error {
	if err := json.Unmarshal(e.Payload, out); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.EventType, err)
	}
	return nil
}

// TopicFor derives the topic from the event type prefix
func TopicFor(eventType string) string {
	domain, _, _ := strings.Cut(eventType, ".")
	return domain + "-events"
}

// ServiceFor names the service that owns an event type
func ServiceFor(eventType string) string {
	domain, _, _ := strings.Cut(eventType, ".")
	return domain + "-service"
}
