package command

import (
	"context"
	"fmt"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// SaveProductCommand creates (ID 0) or updates a product
type SaveProductCommand struct {
	ID      int
	Product dto.Product
}

// SaveProductHandler handles product create and update commands
type SaveProductHandler struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
}

// NewSaveProductHandler creates a new save product handler
func NewSaveProductHandler(products domain.ProductRepository, categories domain.CategoryRepository) *SaveProductHandler {
	return &SaveProductHandler{products: products, categories: categories}
}

// Handle executes the save product command
func (h *SaveProductHandler) Handle(ctx context.Context, cmd SaveProductCommand) (*domain.Product, error) {
	in := cmd.Product

	var category *domain.Category
	if categoryID := in.RefCategoryID(); categoryID > 0 {
		c, err := h.categories.FindByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		category = c
	}

	product := &domain.Product{}
	if cmd.ID != 0 {
		existing, err := h.products.FindByID(ctx, cmd.ID)
		if err != nil {
			return nil, err
		}
		product = existing
	}

	product.ProductTitle = in.ProductTitle
	product.ImageURL = in.ImageURL
	product.SKU = in.SKU
	product.PriceUnit = in.PriceUnit
	product.Quantity = in.Quantity
	product.CategoryRef = domain.OptionalID(in.RefCategoryID())
	product.Category = nil

	save := h.products.Create
	if cmd.ID != 0 {
		save = h.products.Update
	}
	if err := save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	product.Category = category
	return product, nil
}

// DeleteProductHandler handles product deletion command
type DeleteProductHandler struct {
	products domain.ProductRepository
}

func NewDeleteProductHandler(products domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{products: products}
}

func (h *DeleteProductHandler) Handle(ctx context.Context, id int) error {
	return h.products.Delete(ctx, id)
}

// UpdateStockCommand removes shipped units from a product's stock
type UpdateStockCommand struct {
	ProductID int
	Shipped   int
}

// UpdateStockHandler handles stock update command
type UpdateStockHandler struct {
	products domain.ProductRepository
}

// NewUpdateStockHandler creates a new update stock handler
func NewUpdateStockHandler(products domain.ProductRepository) *UpdateStockHandler {
	return &UpdateStockHandler{products: products}
}

// Handle executes the update stock command
func (h *UpdateStockHandler) Handle(ctx context.Context, cmd UpdateStockCommand) error {
	if cmd.ProductID <= 0 {
		return apperror.Validationf("invalid product id %d", cmd.ProductID)
	}
	if cmd.Shipped < 0 {
		return apperror.Validationf("shipped quantity cannot be negative")
	}
	if cmd.Shipped == 0 {
		return nil
	}

	if err := h.products.DecrementStock(ctx, cmd.ProductID, cmd.Shipped); err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}
