package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

// CommandHandlers holds all command handlers of the product service
type CommandHandlers struct {
	SaveCategory   *command.SaveCategoryHandler
	DeleteCategory *command.DeleteCategoryHandler
	SaveProduct    *command.SaveProductHandler
	DeleteProduct  *command.DeleteProductHandler
}

// QueryHandlers holds all query handlers of the product service
type QueryHandlers struct {
	GetCategory    *query.GetCategoryHandler
	ListCategories *query.ListCategoriesHandler
	GetProduct     *query.GetProductHandler
	ListProducts   *query.ListProductsHandler
}

// ProductHandler handles HTTP requests for products and categories using CQRS pattern
type ProductHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
}

func NewProductHandler(commands *CommandHandlers, queries *QueryHandlers) *ProductHandler {
	return &ProductHandler{commands: commands, queries: queries}
}

// RegisterRoutes registers all product service routes
func (h *ProductHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/api/products", h.SaveProduct).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/products/{productId:[0-9]+}", h.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/api/products/{productId:[0-9]+}", h.SaveProduct).Methods(http.MethodPut)
	router.HandleFunc("/api/products/{productId:[0-9]+}", h.DeleteProduct).Methods(http.MethodDelete)

	router.HandleFunc("/api/categories", h.ListCategories).Methods(http.MethodGet)
	router.HandleFunc("/api/categories", h.SaveCategory).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/categories/{categoryId:[0-9]+}", h.GetCategory).Methods(http.MethodGet)
	router.HandleFunc("/api/categories/{categoryId:[0-9]+}", h.SaveCategory).Methods(http.MethodPut)
	router.HandleFunc("/api/categories/{categoryId:[0-9]+}", h.DeleteCategory).Methods(http.MethodDelete)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.queries.ListProducts.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	out := make([]dto.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.ToDTO())
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(out))
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "productId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	product, err := h.queries.GetProduct.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, product.ToDTO())
}

// SaveProduct handles POST /api/products and PUT /api/products[/{productId}]
func (h *ProductHandler) SaveProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.Product
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	id, err := server.TargetID(r, "productId", req.ProductID)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	product, err := h.commands.SaveProduct.Handle(r.Context(), command.SaveProductCommand{ID: id, Product: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, product.ToDTO())
}

// DeleteProduct handles DELETE /api/products/{productId}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "productId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteProduct.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	out := make([]dto.Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.ToDTO())
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(out))
}

// GetCategory handles GET /api/categories/{categoryId}
func (h *ProductHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "categoryId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	category, err := h.queries.GetCategory.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, category.ToDTO())
}

// SaveCategory handles POST /api/categories and PUT /api/categories[/{categoryId}]
func (h *ProductHandler) SaveCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.Category
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	id, err := server.TargetID(r, "categoryId", req.CategoryID)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	category, err := h.commands.SaveCategory.Handle(r.Context(), command.SaveCategoryCommand{ID: id, Category: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, category.ToDTO())
}

// DeleteCategory handles DELETE /api/categories/{categoryId}
func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "categoryId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteCategory.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}
