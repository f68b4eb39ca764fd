package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

// CommandHandlers holds all command handlers of the order service
type CommandHandlers struct {
	SaveCart    *command.SaveCartHandler
	DeleteCart  *command.DeleteCartHandler
	SaveOrder   *command.SaveOrderHandler
	DeleteOrder *command.DeleteOrderHandler
}

// QueryHandlers holds all query handlers of the order service
type QueryHandlers struct {
	GetCart    *query.GetCartHandler
	ListCarts  *query.ListCartsHandler
	GetOrder   *query.GetOrderHandler
	ListOrders *query.ListOrdersHandler
}

// OrderHandler handles HTTP requests for carts and orders
type OrderHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
}

func NewOrderHandler(commands *CommandHandlers, queries *QueryHandlers) *OrderHandler {
	return &OrderHandler{commands: commands, queries: queries}
}

// RegisterRoutes registers all order service routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/carts", h.ListCarts).Methods(http.MethodGet)
	router.HandleFunc("/api/carts", h.SaveCart).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/carts/{cartId:[0-9]+}", h.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/api/carts/{cartId:[0-9]+}", h.SaveCart).Methods(http.MethodPut)
	router.HandleFunc("/api/carts/{cartId:[0-9]+}", h.DeleteCart).Methods(http.MethodDelete)

	router.HandleFunc("/api/orders", h.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/api/orders", h.SaveOrder).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/orders/{orderId:[0-9]+}", h.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/api/orders/{orderId:[0-9]+}", h.SaveOrder).Methods(http.MethodPut)
	router.HandleFunc("/api/orders/{orderId:[0-9]+}", h.DeleteOrder).Methods(http.MethodDelete)
}

// ListCarts handles GET /api/carts
func (h *OrderHandler) ListCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.queries.ListCarts.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(carts))
}

// GetCart handles GET /api/carts/{cartId}
func (h *OrderHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "cartId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	cart, err := h.queries.GetCart.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, cart)
}

// SaveCart handles POST /api/carts and PUT /api/carts[/{cartId}]
func (h *OrderHandler) SaveCart(w http.ResponseWriter, r *http.Request) {
	var req dto.Cart
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	id, err := server.TargetID(r, "cartId", req.CartID)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	cart, err := h.commands.SaveCart.Handle(r.Context(), command.SaveCartCommand{ID: id, Cart: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, cart)
}

// DeleteCart handles DELETE /api/carts/{cartId}
func (h *OrderHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "cartId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteCart.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}

// ListOrders handles GET /api/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.queries.ListOrders.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(orders))
}

// GetOrder handles GET /api/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "orderId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	order, err := h.queries.GetOrder.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, order)
}

// SaveOrder handles POST /api/orders and PUT /api/orders[/{orderId}]
func (h *OrderHandler) SaveOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.Order
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	id, err := server.TargetID(r, "orderId", req.OrderID)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	order, err := h.commands.SaveOrder.Handle(r.Context(), command.SaveOrderCommand{ID: id, Order: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/{orderId}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "orderId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteOrder.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}
