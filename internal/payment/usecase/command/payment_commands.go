package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

const source = "payment-service"

// SavePaymentCommand creates (ID 0) or updates a payment
type SavePaymentCommand struct {
	ID      int
	Payment dto.Payment
}

// SavePaymentHandler handles payment create and update commands. The
// referenced order must exist at the order service.
type SavePaymentHandler struct {
	payments  domain.PaymentRepository
	orders    enrich.Lookup
	publisher kafka.EventPublisher
	recorder  *metrics.Recorder
}

// NewSavePaymentHandler creates a new save payment handler
func NewSavePaymentHandler(
	payments domain.PaymentRepository,
	orders enrich.Lookup,
	publisher kafka.EventPublisher,
	recorder *metrics.Recorder,
) *SavePaymentHandler {
	return &SavePaymentHandler{payments: payments, orders: orders, publisher: publisher, recorder: recorder}
}

// Handle executes the save payment command and answers with the payment
// carrying the verified order
func (h *SavePaymentHandler) Handle(ctx context.Context, cmd SavePaymentCommand) (*dto.Payment, error) {
	in := cmd.Payment
	orderID := in.RefOrderID()
	if orderID <= 0 {
		return nil, apperror.Validationf("payment must reference an order")
	}

	payment := &domain.Payment{PaymentStatus: domain.StatusNotStarted}
	wasCompleted := false
	if cmd.ID != 0 {
		existing, err := h.payments.FindByID(ctx, cmd.ID)
		if err != nil {
			return nil, err
		}
		payment = existing
		wasCompleted = existing.PaymentStatus == domain.StatusCompleted
	}

	var order dto.Order
	if err := h.orders.Get(ctx, query.OrderService, query.OrdersPath, strconv.Itoa(orderID), &order); err != nil {
		h.recorder.Inc(metrics.PaymentsFailed)
		logger.Warn(ctx).
			Err(err).
			Int("order_id", orderID).
			Msg("Payment rejected, order could not be verified")
		return nil, fmt.Errorf("failed to verify order %d: %w", orderID, err)
	}

	payment.OrderID = orderID
	payment.IsPayed = in.IsPayed
	if in.PaymentStatus != "" {
		payment.PaymentStatus = in.PaymentStatus
	}
	if payment.PaymentStatus == domain.StatusCompleted {
		payment.IsPayed = true
	}

	var err error
	if cmd.ID == 0 {
		err = h.payments.Create(ctx, payment)
	} else {
		err = h.payments.Update(ctx, payment)
	}
	if err != nil {
		h.recorder.Inc(metrics.PaymentsFailed)
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	out := payment.ToDTO()
	out.Order = &order
	key := strconv.Itoa(payment.ID)

	if cmd.ID == 0 {
		kafka.PublishBestEffort(ctx, h.publisher, source, kafka.EventTypePaymentCreated, key, out)
	}
	switch {
	case payment.PaymentStatus == domain.StatusCompleted && !wasCompleted:
		h.recorder.Inc(metrics.PaymentsSuccess)
		kafka.PublishBestEffort(ctx, h.publisher, source, kafka.EventTypePaymentCompleted, key, out)
	case cmd.ID == 0:
		h.recorder.Inc(metrics.PaymentsPending)
	}

	logger.Info(ctx).
		Int("payment_id", payment.ID).
		Int("order_id", orderID).
		Str("status", payment.PaymentStatus).
		Msg("Payment saved")
	return &out, nil
}

// DeletePaymentHandler handles payment deletion command
type DeletePaymentHandler struct {
	payments domain.PaymentRepository
}

func NewDeletePaymentHandler(payments domain.PaymentRepository) *DeletePaymentHandler {
	return &DeletePaymentHandler{payments: payments}
}

func (h *DeletePaymentHandler) Handle(ctx context.Context, id int) error {
	return h.payments.Delete(ctx, id)
}
