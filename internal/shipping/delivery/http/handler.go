package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/compositekey"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

// CommandHandlers holds all command handlers of the shipping service
type CommandHandlers struct {
	SaveOrderItem   *command.SaveOrderItemHandler
	DeleteOrderItem *command.DeleteOrderItemHandler
}

// QueryHandlers holds all query handlers of the shipping service
type QueryHandlers struct {
	GetOrderItem   *query.GetOrderItemHandler
	ListOrderItems *query.ListOrderItemsHandler
}

// ShippingHandler handles HTTP requests for order items
type ShippingHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
}

func NewShippingHandler(commands *CommandHandlers, queries *QueryHandlers) *ShippingHandler {
	return &ShippingHandler{commands: commands, queries: queries}
}

// RegisterRoutes registers all shipping routes. Items are addressed by
// /{productId}/{orderId}.
func (h *ShippingHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/shippings", h.List).Methods(http.MethodGet)
	router.HandleFunc("/api/shippings", h.Save).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/shippings/{productId}/{orderId}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/shippings/{productId}/{orderId}", h.Delete).Methods(http.MethodDelete)
}

func pathKey(r *http.Request) (compositekey.OrderItemKey, error) {
	vars := mux.Vars(r)
	return compositekey.ParseOrderItemKey(vars["productId"], vars["orderId"])
}

// List handles GET /api/shippings
func (h *ShippingHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListOrderItems.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(items))
}

// Get handles GET /api/shippings/{productId}/{orderId}
func (h *ShippingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	item, err := h.queries.GetOrderItem.Handle(r.Context(), key)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, item)
}

// Save handles POST and PUT /api/shippings; the key travels in the body
func (h *ShippingHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderItem
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	item, err := h.commands.SaveOrderItem.Handle(r.Context(), command.SaveOrderItemCommand{
		Item:   req,
		Update: r.Method == http.MethodPut,
	})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/shippings/{productId}/{orderId}
func (h *ShippingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	key, err := pathKey(r)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteOrderItem.Handle(r.Context(), key); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}
