package events

import (
	"context"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

// PaymentListener counts orders whose payment completed
type PaymentListener struct {
	recorder *metrics.Recorder
}

func NewPaymentListener(recorder *metrics.Recorder) *PaymentListener {
	return &PaymentListener{recorder: recorder}
}

// Register binds the listener to its event types on consumer
func (l *PaymentListener) Register(consumer *kafka.Consumer) {
	consumer.RegisterHandler(kafka.EventTypePaymentCompleted, l.HandlePaymentCompleted)
}

func (l *PaymentListener) HandlePaymentCompleted(ctx context.Context, event kafka.Event) error {
	var payment dto.Payment
	if err := event.Decode(&payment); err != nil {
		return err
	}
	l.recorder.Inc(metrics.OrdersCompleted)

	logger.Info(ctx).
		Int("payment_id", payment.PaymentID).
		Int("order_id", payment.RefOrderID()).
		Msg("Order completed")
	return nil
}
