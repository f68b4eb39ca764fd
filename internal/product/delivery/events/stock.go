package events

import (
	"context"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// StockListener keeps product stock in line with created shipments
type StockListener struct {
	updateStock *command.UpdateStockHandler
}

func NewStockListener(updateStock *command.UpdateStockHandler) *StockListener {
	return &StockListener{updateStock: updateStock}
}

// Register binds the listener to its event types on consumer
func (l *StockListener) Register(consumer *kafka.Consumer) {
	consumer.RegisterHandler(kafka.EventTypeShippingCreated, l.HandleShippingCreated)
}

// HandleShippingCreated decrements the stock of the shipped product
func (l *StockListener) HandleShippingCreated(ctx context.Context, event kafka.Event) error {
	var item dto.OrderItem
	if err := event.Decode(&item); err != nil {
		return err
	}
	productID, orderID := item.RefIDs()

	err := l.updateStock.Handle(ctx, command.UpdateStockCommand{
		ProductID: productID,
		Shipped:   item.OrderedQuantity,
	})
	if err != nil {
		return err
	}

	logger.Info(ctx).
		Int("product_id", productID).
		Int("order_id", orderID).
		Int("shipped", item.OrderedQuantity).
		Msg("Stock decremented for shipment")
	return nil
}
