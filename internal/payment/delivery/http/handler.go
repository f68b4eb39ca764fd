package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

// CommandHandlers holds all command handlers
type CommandHandlers struct {
	SavePayment   *command.SavePaymentHandler
	DeletePayment *command.DeletePaymentHandler
}

// QueryHandlers holds all query handlers
type QueryHandlers struct {
	GetPayment   *query.GetPaymentHandler
	ListPayments *query.ListPaymentsHandler
}

// PaymentHandler handles HTTP requests for payments using CQRS pattern
type PaymentHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
}

// NewPaymentHandler creates a new payment handler with CQRS handlers
func NewPaymentHandler(commands *CommandHandlers, queries *QueryHandlers) *PaymentHandler {
	return &PaymentHandler{commands: commands, queries: queries}
}

// RegisterRoutes registers all payment routes
func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/payments", h.ListPayments).Methods(http.MethodGet)
	router.HandleFunc("/api/payments", h.SavePayment).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/payments/{paymentId:[0-9]+}", h.GetPayment).Methods(http.MethodGet)
	router.HandleFunc("/api/payments/{paymentId:[0-9]+}", h.SavePayment).Methods(http.MethodPut)
	router.HandleFunc("/api/payments/{paymentId:[0-9]+}", h.DeletePayment).Methods(http.MethodDelete)
}

// ListPayments handles GET /api/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.queries.ListPayments.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(payments))
}

// GetPayment handles GET /api/payments/{paymentId}
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "paymentId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	payment, err := h.queries.GetPayment.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, payment)
}

// SavePayment handles POST /api/payments and PUT /api/payments[/{paymentId}]
func (h *PaymentHandler) SavePayment(w http.ResponseWriter, r *http.Request) {
	var req dto.Payment
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	id, err := server.TargetID(r, "paymentId", req.PaymentID)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	payment, err := h.commands.SavePayment.Handle(r.Context(), command.SavePaymentCommand{ID: id, Payment: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, payment)
}

// DeletePayment handles DELETE /api/payments/{paymentId}
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "paymentId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeletePayment.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}
