package query

import (
	"context"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/domain"
)

// GetProductHandler handles get product query
type GetProductHandler struct {
	products domain.ProductRepository
}

func NewGetProductHandler(products domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{products: products}
}

func (h *GetProductHandler) Handle(ctx context.Context, id int) (*domain.Product, error) {
	return h.products.FindByID(ctx, id)
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	products domain.ProductRepository
}

func NewListProductsHandler(products domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{products: products}
}

func (h *ListProductsHandler) Handle(ctx context.Context) ([]domain.Product, error) {
	return h.products.FindAll(ctx)
}

type GetCategoryHandler struct {
	categories domain.CategoryRepository
}

func NewGetCategoryHandler(categories domain.CategoryRepository) *GetCategoryHandler {
	return &GetCategoryHandler{categories: categories}
}

func (h *GetCategoryHandler) Handle(ctx context.Context, id int) (*domain.Category, error) {
	return h.categories.FindByID(ctx, id)
}

type ListCategoriesHandler struct {
	categories domain.CategoryRepository
}

func NewListCategoriesHandler(categories domain.CategoryRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{categories: categories}
}

func (h *ListCategoriesHandler) Handle(ctx context.Context) ([]domain.Category, error) {
	return h.categories.FindAll(ctx)
}
