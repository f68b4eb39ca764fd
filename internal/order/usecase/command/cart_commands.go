package command

import (
	"context"
	"fmt"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// SaveCartCommand creates (ID 0) or updates a cart
type SaveCartCommand struct {
	ID   int
	Cart dto.Cart
}

// SaveCartHandler handles cart create and update commands and answers
// with the enriched cart
type SaveCartHandler struct {
	carts  domain.CartRepository
	engine *query.CartEngine
}

func NewSaveCartHandler(carts domain.CartRepository, engine *query.CartEngine) *SaveCartHandler {
	return &SaveCartHandler{carts: carts, engine: engine}
}

func (h *SaveCartHandler) Handle(ctx context.Context, cmd SaveCartCommand) (*dto.Cart, error) {
	cart := &domain.Cart{}
	if cmd.ID != 0 {
		existing, err := h.carts.FindByID(ctx, cmd.ID)
		if err != nil {
			return nil, err
		}
		cart = existing
	}
	cart.UserID = cmd.Cart.RefUserID()

	save := h.carts.Create
	if cmd.ID != 0 {
		save = h.carts.Update
	}
	if err := save(ctx, cart); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return h.engine.EnrichOne(ctx, *cart)
}

type DeleteCartHandler struct {
	carts domain.CartRepository
}

func NewDeleteCartHandler(carts domain.CartRepository) *DeleteCartHandler {
	return &DeleteCartHandler{carts: carts}
}

func (h *DeleteCartHandler) Handle(ctx context.Context, id int) error {
	return h.carts.Delete(ctx, id)
}
