package domain

import (
	"context"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// OrderItem is one shipped product line of an order. It has no surrogate
// key: (ProductID, OrderID) is its identity and never changes.
type OrderItem struct {
	ProductID       int `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	OrderID         int `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	OrderedQuantity int `gorm:"column:ordered_quantity;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (OrderItem) TableName() string {
	return "order_items"
}

func (i OrderItem) Key() compositekey.OrderItemKey {
	return compositekey.OrderItemKey{ProductID: i.ProductID, OrderID: i.OrderID}
}

// OrderItemRepository is the composite-keyed store of order items
type OrderItemRepository interface {
	Create(ctx context.Context, item *OrderItem) error
	Update(ctx context.Context, item *OrderItem) error
	FindByID(ctx context.Context, key compositekey.OrderItemKey) (*OrderItem, error)
	FindAll(ctx context.Context) ([]OrderItem, error)
	Delete(ctx context.Context, key compositekey.OrderItemKey) error
}

func (i OrderItem) ToDTO() dto.OrderItem {
	return dto.OrderItem{
		ProductID:       i.ProductID,
		OrderID:         i.OrderID,
		OrderedQuantity: i.OrderedQuantity,
	}
}
