package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

// AutoMigrate creates the payments table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Payment{})
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	ctx, span := startSpan(ctx, "CreatePayment",
		attribute.Int("payment.order_id", payment.OrderID),
		attribute.String("payment.status", payment.PaymentStatus),
	)
	err := r.db.WithContext(ctx).Create(payment).Error
	if err == nil {
		span.SetAttributes(attribute.Int("payment.id", payment.ID))
	}
	return endSpan(span, database.TranslateError(err, "Payment", payment.ID))
}

func (r *GormPaymentRepository) Update(ctx context.Context, payment *domain.Payment) error {
	ctx, span := startSpan(ctx, "UpdatePayment",
		attribute.Int("payment.id", payment.ID),
		attribute.String("payment.status", payment.PaymentStatus),
	)
	err := r.db.WithContext(ctx).Save(payment).Error
	return endSpan(span, database.TranslateError(err, "Payment", payment.ID))
}

func (r *GormPaymentRepository) FindByID(ctx context.Context, id int) (*domain.Payment, error) {
	ctx, span := startSpan(ctx, "FindPaymentByID", attribute.Int("payment.id", id))
	var payment domain.Payment
	err := r.db.WithContext(ctx).First(&payment, "payment_id = ?", id).Error
	if err = endSpan(span, database.TranslateError(err, "Payment", id)); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	if err := r.db.WithContext(ctx).Order("payment_id").Find(&payments).Error; err != nil {
		return nil, database.TranslateError(err, "Payment", "all")
	}
	return payments, nil
}

func (r *GormPaymentRepository) Delete(ctx context.Context, id int) error {
	ctx, span := startSpan(ctx, "DeletePayment", attribute.Int("payment.id", id))
	result := r.db.WithContext(ctx).Where("payment_id = ?", id).Delete(&domain.Payment{})
	return endSpan(span, database.RowsOrNotFound(result, "Payment", id))
}
