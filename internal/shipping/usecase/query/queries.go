package query

import (
	"context"
	"strconv"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
)

// OrderItemEngine enriches order items with their product and order
type OrderItemEngine = enrich.Engine[compositekey.OrderItemKey, domain.OrderItem, dto.OrderItem]

// OrderItemPlan hydrates product and order; neither is required
func OrderItemPlan() enrich.Plan[domain.OrderItem, dto.OrderItem] {
	return enrich.Plan[domain.OrderItem, dto.OrderItem]{
		Entity: "OrderItem",
		Local:  domain.OrderItem.ToDTO,
		Fields: []enrich.Field[domain.OrderItem, dto.OrderItem]{
			enrich.Ref("product", "product-service", "/api/products",
				func(i domain.OrderItem) string { return idString(i.ProductID) },
				func(d *dto.OrderItem, p *dto.Product) { d.Product = p },
			),
			enrich.Ref("order", "order-service", "/api/orders",
				func(i domain.OrderItem) string { return idString(i.OrderID) },
				func(d *dto.OrderItem, o *dto.Order) { d.Order = o },
			),
		},
	}
}

func NewOrderItemEngine(items domain.OrderItemRepository, lookup enrich.Lookup, opts enrich.Options) *OrderItemEngine {
	return enrich.NewEngine[compositekey.OrderItemKey, domain.OrderItem, dto.OrderItem](items, lookup, OrderItemPlan(), opts)
}

func idString(id int) string {
	if id <= 0 {
		return ""
	}
	return strconv.Itoa(id)
}

// GetOrderItemHandler handles get order item query
type GetOrderItemHandler struct {
	engine *OrderItemEngine
}

func NewGetOrderItemHandler(engine *OrderItemEngine) *GetOrderItemHandler {
	return &GetOrderItemHandler{engine: engine}
}

func (h *GetOrderItemHandler) Handle(ctx context.Context, key compositekey.OrderItemKey) (*dto.OrderItem, error) {
	return h.engine.FindByID(ctx, key)
}

// ListOrderItemsHandler handles list order items query
type ListOrderItemsHandler struct {
	engine *OrderItemEngine
}

func NewListOrderItemsHandler(engine *OrderItemEngine) *ListOrderItemsHandler {
	return &ListOrderItemsHandler{engine: engine}
}

func (h *ListOrderItemsHandler) Handle(ctx context.Context) ([]dto.OrderItem, error) {
	return h.engine.FindAll(ctx)
}
