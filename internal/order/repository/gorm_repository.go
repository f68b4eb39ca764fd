package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

// AutoMigrate creates the cart and order tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Cart{}, &domain.Order{})
}

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	ctx, span := startSpan(ctx, "CreateCart", attribute.Int("cart.user_id", cart.UserID))
	err := r.db.WithContext(ctx).Create(cart).Error
	return endSpan(span, database.TranslateError(err, "Cart", cart.ID))
}

func (r *GormCartRepository) Update(ctx context.Context, cart *domain.Cart) error {
	err := r.db.WithContext(ctx).Save(cart).Error
	return database.TranslateError(err, "Cart", cart.ID)
}

func (r *GormCartRepository) FindByID(ctx context.Context, id int) (*domain.Cart, error) {
	ctx, span := startSpan(ctx, "FindCartByID", attribute.Int("cart.id", id))
	var cart domain.Cart
	err := r.db.WithContext(ctx).First(&cart, "cart_id = ?", id).Error
	if err = endSpan(span, database.TranslateError(err, "Cart", id)); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *GormCartRepository) FindAll(ctx context.Context) ([]domain.Cart, error) {
	var carts []domain.Cart
	if err := r.db.WithContext(ctx).Order("cart_id").Find(&carts).Error; err != nil {
		return nil, database.TranslateError(err, "Cart", "all")
	}
	return carts, nil
}

func (r *GormCartRepository) Delete(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Where("cart_id = ?", id).Delete(&domain.Cart{})
	return database.RowsOrNotFound(result, "Cart", id)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := startSpan(ctx, "CreateOrder",
		attribute.Int("order.cart_id", order.CartRef),
		attribute.Float64("order.fee", order.OrderFee),
	)
	err := r.db.WithContext(ctx).Omit("Cart").Create(order).Error
	if err == nil {
		span.SetAttributes(attribute.Int("order.id", order.ID))
	}
	return endSpan(span, database.TranslateError(err, "Order", order.ID))
}

func (r *GormOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	ctx, span := startSpan(ctx, "UpdateOrder", attribute.Int("order.id", order.ID))
	err := r.db.WithContext(ctx).Omit("Cart").Save(order).Error
	return endSpan(span, database.TranslateError(err, "Order", order.ID))
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	ctx, span := startSpan(ctx, "FindOrderByID", attribute.Int("order.id", id))
	var order domain.Order
	err := r.db.WithContext(ctx).Preload("Cart").First(&order, "order_id = ?", id).Error
	if err = endSpan(span, database.TranslateError(err, "Order", id)); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	ctx, span := startSpan(ctx, "FindAllOrders")
	var orders []domain.Order
	err := r.db.WithContext(ctx).Preload("Cart").Order("order_id").Find(&orders).Error
	if err = endSpan(span, database.TranslateError(err, "Order", "all")); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id int) error {
	ctx, span := startSpan(ctx, "DeleteOrder", attribute.Int("order.id", id))
	result := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&domain.Order{})
	return endSpan(span, database.RowsOrNotFound(result, "Order", id))
}
