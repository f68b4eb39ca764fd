package flow

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

// Step names, in execution order
const (
	StepProduct  = "product"
	StepOrder    = "order"
	StepPayment  = "payment"
	StepShipping = "shipping"
)

// PurchaseRequest is the body of POST /api/purchases
type PurchaseRequest struct {
	ProductID int    `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	CartID    int    `json:"cartId" validate:"required,gt=0"`
	OrderDesc string `json:"orderDesc"`
}

// Purchase looks up the product, then creates an order, a payment for the
// order and a shipping record for order and product. Earlier steps are not
// undone when a later one fails.
type Purchase struct {
	caller Caller
}

func NewPurchase(caller Caller) *Purchase {
	return &Purchase{caller: caller}
}

func (p *Purchase) Handle(c *fiber.Ctx) error {
	var in PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := server.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	correlationID := uuid.NewString()
	ctx := c.UserContext()

	completed := make(map[string]json.RawMessage, 4)

	productRaw, stepErr := step(ctx, p.caller, StepProduct, http.MethodGet,
		"product-service", "/api/products/"+strconv.Itoa(in.ProductID), nil)
	if stepErr != nil {
		return respondStepError(c, stepErr, completed)
	}
	completed[StepProduct] = productRaw

	price := gjson.GetBytes(productRaw, "priceUnit").Float()
	order, stepErr := encode(ctx, StepOrder, dto.Order{
		OrderDesc: in.OrderDesc,
		OrderFee:  price * float64(in.Quantity),
		Cart:      &dto.Cart{CartID: in.CartID},
	})
	if stepErr != nil {
		return respondStepError(c, stepErr, completed)
	}
	orderRaw, stepErr := step(ctx, p.caller, StepOrder, http.MethodPost, "order-service", "/api/orders", order)
	if stepErr != nil {
		return respondStepError(c, stepErr, completed)
	}
	completed[StepOrder] = orderRaw

	orderID := int(gjson.GetBytes(orderRaw, "orderId").Int())
	if orderID <= 0 {
		return respondStepError(c, &StepError{
			Step:   StepOrder,
			Status: http.StatusBadGateway,
			Body:   orderRaw,
			Err:    errMissingID("orderId"),
		}, completed)
	}

	payment, stepErr := encode(ctx, StepPayment, dto.Payment{
		PaymentStatus: dto.PaymentNotStarted,
		Order:         &dto.Order{OrderID: orderID},
	})
	if stepErr != nil {
		return respondStepError(c, stepErr, completed)
	}
	paymentRaw, stepErr := step(ctx, p.caller, StepPayment, http.MethodPost, "payment-service", "/api/payments", payment)
	if stepErr != nil {
		return respondStepError(c, stepErr, completed)
	}
	completed[StepPayment] = paymentRaw

	shipping, stepErr := encode(ctx, StepShipping, dto.OrderItem{
		ProductID:       in.ProductID,
		OrderID:         orderID,
		OrderedQuantity: in.Quantity,
	})
	if stepErr != nil {
		return respondStepError(c, stepErr, completed)
	}
	shippingRaw, stepErr := step(ctx, p.caller, StepShipping, http.MethodPost, "shipping-service", "/api/shippings", shipping)
	if stepErr != nil {
		return respondStepError(c, stepErr, completed)
	}
	completed[StepShipping] = shippingRaw

	logger.Info(ctx).
		Str("correlation_id", correlationID).
		Int("order_id", orderID).
		Int("product_id", in.ProductID).
		Msg("Purchase completed")

	return c.JSON(fiber.Map{
		"correlationId": correlationID,
		StepProduct:     completed[StepProduct],
		StepOrder:       completed[StepOrder],
		StepPayment:     completed[StepPayment],
		StepShipping:    completed[StepShipping],
	})
}

type errMissingID string

func (e errMissingID) Error() string {
	return "response carries no " + string(e)
}
