package query

import (
	"context"
	"strconv"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
)

const (
	OrderService = "order-service"
	OrdersPath   = "/api/orders"
)

// PaymentEngine enriches payments with their remote order
type PaymentEngine = enrich.Engine[int, domain.Payment, dto.Payment]

// PlanOptions toggles the required flags of the payment plan
type PlanOptions struct {
	OrderRequired bool
}

// PaymentPlan hydrates payment.order from the order service
func PaymentPlan(opts PlanOptions) enrich.Plan[domain.Payment, dto.Payment] {
	return enrich.Plan[domain.Payment, dto.Payment]{
		Entity: "Payment",
		Local:  domain.Payment.ToDTO,
		Fields: []enrich.Field[domain.Payment, dto.Payment]{
			enrich.Ref("order", OrderService, OrdersPath,
				func(p domain.Payment) string {
					if p.OrderID <= 0 {
						return ""
					}
					return strconv.Itoa(p.OrderID)
				},
				func(d *dto.Payment, o *dto.Order) { d.Order = o },
			).RequireIf(opts.OrderRequired),
		},
	}
}

func NewPaymentEngine(payments domain.PaymentRepository, lookup enrich.Lookup, opts enrich.Options, plan PlanOptions) *PaymentEngine {
	return enrich.NewEngine[int, domain.Payment, dto.Payment](payments, lookup, PaymentPlan(plan), opts)
}

// GetPaymentHandler handles get payment query
type GetPaymentHandler struct {
	engine *PaymentEngine
}

func NewGetPaymentHandler(engine *PaymentEngine) *GetPaymentHandler {
	return &GetPaymentHandler{engine: engine}
}

func (h *GetPaymentHandler) Handle(ctx context.Context, id int) (*dto.Payment, error) {
	return h.engine.FindByID(ctx, id)
}

// ListPaymentsHandler handles list payments query
type ListPaymentsHandler struct {
	engine *PaymentEngine
}

func NewListPaymentsHandler(engine *PaymentEngine) *ListPaymentsHandler {
	return &ListPaymentsHandler{engine: engine}
}

func (h *ListPaymentsHandler) Handle(ctx context.Context) ([]dto.Payment, error) {
	return h.engine.FindAll(ctx)
}
