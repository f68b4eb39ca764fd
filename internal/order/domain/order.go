package domain

import (
	"context"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// Cart belongs to a user of the user service. Only the id is stored here.
type Cart struct {
	ID        int `gorm:"column:cart_id;primaryKey;autoIncrement"`
	UserID    int `gorm:"column:user_id;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cart) TableName() string {
	return "carts"
}

// Order is placed against a local cart
type Order struct {
	ID        int       `gorm:"column:order_id;primaryKey;autoIncrement"`
	OrderDate time.Time `gorm:"column:order_date;not null"`
	OrderDesc string    `gorm:"column:order_desc;size:255"`
	OrderFee  float64   `gorm:"column:order_fee;not null"`
	CartRef   int       `gorm:"column:cart_id;index;not null"`
	Cart      *Cart     `gorm:"foreignKey:CartRef;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Order) TableName() string {
	return "orders"
}

// CartRepository defines the contract for cart data access
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	Update(ctx context.Context, cart *Cart) error
	FindByID(ctx context.Context, id int) (*Cart, error)
	FindAll(ctx context.Context) ([]Cart, error)
	Delete(ctx context.Context, id int) error
}

// OrderRepository defines the contract for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id int) (*Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id int) error
}

func (c Cart) ToDTO() dto.Cart {
	return dto.Cart{CartID: c.ID, UserID: c.UserID}
}

func (o Order) ToDTO() dto.Order {
	out := dto.Order{
		OrderID:   o.ID,
		OrderDate: compositekey.NewTimestamp(o.OrderDate),
		OrderDesc: o.OrderDesc,
		OrderFee:  o.OrderFee,
		CartID:    o.CartRef,
	}
	if o.Cart != nil {
		c := o.Cart.ToDTO()
		out.Cart = &c
	}
	return out
}
