package domain

import (
	"context"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// Payment settles one order of the order service. Only the order id is
// stored here.
type Payment struct {
	ID            int    `gorm:"column:payment_id;primaryKey;autoIncrement"`
	IsPayed       bool   `gorm:"column:is_payed;not null;default:false"`
	PaymentStatus string `gorm:"column:payment_status;size:32;not null;default:'NOT_STARTED'"`
	OrderID       int    `gorm:"column:order_id;index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name
func (Payment) TableName() string {
	return "payments"
}

// Payment statuses
const (
	StatusNotStarted = dto.PaymentNotStarted
	StatusInProgress = dto.PaymentInProgress
	StatusCompleted  = dto.PaymentCompleted
)

// PaymentRepository defines the contract for payment data access
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id int) (*Payment, error)
	FindAll(ctx context.Context) ([]Payment, error)
	Delete(ctx context.Context, id int) error
}

func (p Payment) ToDTO() dto.Payment {
	return dto.Payment{
		PaymentID:     p.ID,
		IsPayed:       p.IsPayed,
		PaymentStatus: p.PaymentStatus,
		OrderID:       p.OrderID,
	}
}
