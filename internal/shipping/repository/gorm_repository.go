package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

const entity = "OrderItem"

// AutoMigrate creates the order_items table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.OrderItem{})
}

// GormOrderItemRepository implements OrderItemRepository using GORM
type GormOrderItemRepository struct {
	db *gorm.DB
}

func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

func keyAttributes(key compositekey.OrderItemKey) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("order_item.product_id", key.ProductID),
		attribute.Int("order_item.order_id", key.OrderID),
	}
}

func (r *GormOrderItemRepository) Create(ctx context.Context, item *domain.OrderItem) error {
	ctx, span := startSpan(ctx, "CreateOrderItem", keyAttributes(item.Key())...)
	err := r.db.WithContext(ctx).Create(item).Error
	return endSpan(span, database.TranslateError(err, entity, item.Key()))
}

// Update changes the non-key columns of an existing row
func (r *GormOrderItemRepository) Update(ctx context.Context, item *domain.OrderItem) error {
	key := item.Key()
	ctx, span := startSpan(ctx, "UpdateOrderItem", keyAttributes(key)...)
	result := r.db.WithContext(ctx).
		Model(&domain.OrderItem{}).
		Where("product_id = ? AND order_id = ?", key.ProductID, key.OrderID).
		Update("ordered_quantity", item.OrderedQuantity)
	return endSpan(span, database.RowsOrNotFound(result, entity, key))
}

func (r *GormOrderItemRepository) FindByID(ctx context.Context, key compositekey.OrderItemKey) (*domain.OrderItem, error) {
	ctx, span := startSpan(ctx, "FindOrderItem", keyAttributes(key)...)
	var item domain.OrderItem
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND order_id = ?", key.ProductID, key.OrderID).
		First(&item).Error
	if err = endSpan(span, database.TranslateError(err, entity, key)); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormOrderItemRepository) FindAll(ctx context.Context) ([]domain.OrderItem, error) {
	ctx, span := startSpan(ctx, "FindAllOrderItems")
	var items []domain.OrderItem
	err := r.db.WithContext(ctx).Order("order_id, product_id").Find(&items).Error
	span.SetAttributes(attribute.Int("order_item.count", len(items)))
	if err = endSpan(span, database.TranslateError(err, entity, "all")); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormOrderItemRepository) Delete(ctx context.Context, key compositekey.OrderItemKey) error {
	ctx, span := startSpan(ctx, "DeleteOrderItem", keyAttributes(key)...)
	result := r.db.WithContext(ctx).
		Where("product_id = ? AND order_id = ?", key.ProductID, key.OrderID).
		Delete(&domain.OrderItem{})
	return endSpan(span, database.RowsOrNotFound(result, entity, key))
}
