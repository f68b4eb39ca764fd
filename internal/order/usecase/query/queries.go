package query

import (
	"context"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
)

// NewCartEngine builds the cart enrichment engine over the cart store
func NewCartEngine(carts domain.CartRepository, lookup enrich.Lookup, opts enrich.Options) *CartEngine {
	return enrich.NewEngine[int, domain.Cart, dto.Cart](carts, lookup, CartPlan(), opts)
}

// NewOrderEngine builds the order enrichment engine over the order store
func NewOrderEngine(orders domain.OrderRepository, lookup enrich.Lookup, opts enrich.Options) *OrderEngine {
	return enrich.NewEngine[int, domain.Order, dto.Order](orders, lookup, OrderPlan(), opts)
}

// GetCartHandler handles get cart query
type GetCartHandler struct {
	engine *CartEngine
}

func NewGetCartHandler(engine *CartEngine) *GetCartHandler {
	return &GetCartHandler{engine: engine}
}

func (h *GetCartHandler) Handle(ctx context.Context, id int) (*dto.Cart, error) {
	return h.engine.FindByID(ctx, id)
}

// ListCartsHandler handles list carts query
type ListCartsHandler struct {
	engine *CartEngine
}

func NewListCartsHandler(engine *CartEngine) *ListCartsHandler {
	return &ListCartsHandler{engine: engine}
}

func (h *ListCartsHandler) Handle(ctx context.Context) ([]dto.Cart, error) {
	return h.engine.FindAll(ctx)
}

// GetOrderHandler handles get order query
type GetOrderHandler struct {
	engine *OrderEngine
}

func NewGetOrderHandler(engine *OrderEngine) *GetOrderHandler {
	return &GetOrderHandler{engine: engine}
}

func (h *GetOrderHandler) Handle(ctx context.Context, id int) (*dto.Order, error) {
	return h.engine.FindByID(ctx, id)
}

// ListOrdersHandler handles list orders query
type ListOrdersHandler struct {
	engine *OrderEngine
}

func NewListOrdersHandler(engine *OrderEngine) *ListOrdersHandler {
	return &ListOrdersHandler{engine: engine}
}

func (h *ListOrdersHandler) Handle(ctx context.Context) ([]dto.Order, error) {
	return h.engine.FindAll(ctx)
}
