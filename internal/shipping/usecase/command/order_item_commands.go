package command

import (
	"context"
	"fmt"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

const source = "shipping-service"

// SaveOrderItemCommand creates a new order item or, with Update set,
// changes the quantity of an existing one
type SaveOrderItemCommand struct {
	Item   dto.OrderItem
	Update bool
}

// SaveOrderItemHandler handles order item create and update commands
type SaveOrderItemHandler struct {
	items     domain.OrderItemRepository
	engine    *query.OrderItemEngine
	publisher kafka.EventPublisher
}

func NewSaveOrderItemHandler(items domain.OrderItemRepository, engine *query.OrderItemEngine, publisher kafka.EventPublisher) *SaveOrderItemHandler {
	return &SaveOrderItemHandler{items: items, engine: engine, publisher: publisher}
}

// Handle saves the item and answers with its enriched view
func (h *SaveOrderItemHandler) Handle(ctx context.Context, cmd SaveOrderItemCommand) (*dto.OrderItem, error) {
	productID, orderID := cmd.Item.RefIDs()
	if productID <= 0 || orderID <= 0 {
		return nil, apperror.Validationf("order item must reference a product and an order")
	}

	item := &domain.OrderItem{
		ProductID:       productID,
		OrderID:         orderID,
		OrderedQuantity: cmd.Item.OrderedQuantity,
	}

	if cmd.Update {
		if err := h.items.Update(ctx, item); err != nil {
			return nil, err
		}
		return h.engine.EnrichOne(ctx, *item)
	}

	if err := h.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", err)
	}
	kafka.PublishBestEffort(ctx, h.publisher, source, kafka.EventTypeShippingCreated, item.Key().Encode(), item.ToDTO())

	logger.Info(ctx).
		Int("product_id", productID).
		Int("order_id", orderID).
		Int("quantity", item.OrderedQuantity).
		Msg("Shipping created")
	return h.engine.EnrichOne(ctx, *item)
}

// DeleteOrderItemHandler handles order item deletion command
type DeleteOrderItemHandler struct {
	items domain.OrderItemRepository
}

func NewDeleteOrderItemHandler(items domain.OrderItemRepository) *DeleteOrderItemHandler {
	return &DeleteOrderItemHandler{items: items}
}

func (h *DeleteOrderItemHandler) Handle(ctx context.Context, key compositekey.OrderItemKey) error {
	return h.items.Delete(ctx, key)
}
