package query

import (
	"strconv"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
)

const (
	userService = "user-service"
	usersPath   = "/api/users"
)

// CartEngine enriches carts with their remote user
type CartEngine = enrich.Engine[int, domain.Cart, dto.Cart]

// OrderEngine enriches orders with the user of their cart
type OrderEngine = enrich.Engine[int, domain.Order, dto.Order]

// CartPlan hydrates cart.user from the user service
func CartPlan() enrich.Plan[domain.Cart, dto.Cart] {
	return enrich.Plan[domain.Cart, dto.Cart]{
		Entity: "Cart",
		Local:  domain.Cart.ToDTO,
		Fields: []enrich.Field[domain.Cart, dto.Cart]{
			enrich.Ref("user", userService, usersPath,
				func(c domain.Cart) string { return idString(c.UserID) },
				func(d *dto.Cart, u *dto.User) { d.User = u },
			),
		},
	}
}

// OrderPlan hydrates order.cart.user; the cart itself is a local join
func OrderPlan() enrich.Plan[domain.Order, dto.Order] {
	return enrich.Plan[domain.Order, dto.Order]{
		Entity: "Order",
		Local:  domain.Order.ToDTO,
		Fields: []enrich.Field[domain.Order, dto.Order]{
			enrich.Ref("cart.user", userService, usersPath,
				func(o domain.Order) string {
					if o.Cart == nil {
						return ""
					}
					return idString(o.Cart.UserID)
				},
				func(d *dto.Order, u *dto.User) {
					if d.Cart != nil {
						d.Cart.User = u
					}
				},
			),
		},
	}
}

func idString(id int) string {
	if id <= 0 {
		return ""
	}
	return strconv.Itoa(id)
}
