package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

const source = "order-service"

// SaveOrderCommand creates (ID 0) or updates an order
type SaveOrderCommand struct {
	ID    int
	Order dto.Order
}

// SaveOrderHandler handles order create and update commands and answers
// with the enriched order
type SaveOrderHandler struct {
	orders    domain.OrderRepository
	carts     domain.CartRepository
	engine    *query.OrderEngine
	publisher kafka.EventPublisher
	recorder  *metrics.Recorder
}

// NewSaveOrderHandler creates a new save order handler
func NewSaveOrderHandler(
	orders domain.OrderRepository,
	carts domain.CartRepository,
	engine *query.OrderEngine,
	publisher kafka.EventPublisher,
	recorder *metrics.Recorder,
) *SaveOrderHandler {
	return &SaveOrderHandler{orders: orders, carts: carts, engine: engine, publisher: publisher, recorder: recorder}
}

// Handle executes the save order command. The referenced cart must exist.
func (h *SaveOrderHandler) Handle(ctx context.Context, cmd SaveOrderCommand) (*dto.Order, error) {
	in := cmd.Order
	cartID := in.RefCartID()
	if cartID <= 0 {
		return nil, apperror.Validationf("order must reference a cart")
	}
	cart, err := h.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{}
	if cmd.ID != 0 {
		existing, err := h.orders.FindByID(ctx, cmd.ID)
		if err != nil {
			return nil, err
		}
		order = existing
	}

	order.OrderDesc = in.OrderDesc
	order.OrderFee = in.OrderFee
	order.CartRef = cartID
	order.Cart = nil
	switch {
	case !in.OrderDate.IsZero():
		order.OrderDate = in.OrderDate.Time
	case order.OrderDate.IsZero():
		order.OrderDate = compositekey.Truncate(time.Now())
	}

	eventType := kafka.EventTypeOrderUpdated
	if cmd.ID == 0 {
		eventType = kafka.EventTypeOrderCreated
		err = h.orders.Create(ctx, order)
	} else {
		err = h.orders.Update(ctx, order)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}
	order.Cart = cart

	if cmd.ID == 0 {
		h.recorder.Inc(metrics.OrdersCreated)
	}
	kafka.PublishBestEffort(ctx, h.publisher, source, eventType, strconv.Itoa(order.ID), order.ToDTO())
	return h.engine.EnrichOne(ctx, *order)
}

// DeleteOrderHandler handles order deletion command
type DeleteOrderHandler struct {
	orders    domain.OrderRepository
	publisher kafka.EventPublisher
	recorder  *metrics.Recorder
}

func NewDeleteOrderHandler(orders domain.OrderRepository, publisher kafka.EventPublisher, recorder *metrics.Recorder) *DeleteOrderHandler {
	return &DeleteOrderHandler{orders: orders, publisher: publisher, recorder: recorder}
}

func (h *DeleteOrderHandler) Handle(ctx context.Context, id int) error {
	if err := h.orders.Delete(ctx, id); err != nil {
		return err
	}
	h.recorder.Inc(metrics.OrdersCancelled)
	kafka.PublishBestEffort(ctx, h.publisher, source, kafka.EventTypeOrderDeleted, strconv.Itoa(id), dto.Order{OrderID: id})
	return nil
}
