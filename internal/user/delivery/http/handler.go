package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/server"
)

// CommandHandlers holds all command handlers of the user service
type CommandHandlers struct {
	CreateUser       *command.CreateUserHandler
	UpdateUser       *command.UpdateUserHandler
	DeleteUser       *command.DeleteUserHandler
	CreateCredential *command.CreateCredentialHandler
	UpdateCredential *command.UpdateCredentialHandler
	DeleteCredential *command.DeleteCredentialHandler
	Authenticate     *command.AuthenticateHandler
	SaveAddress      *command.SaveAddressHandler
	DeleteAddress    *command.DeleteAddressHandler
}

// QueryHandlers holds all query handlers of the user service
type QueryHandlers struct {
	GetUser         *query.GetUserHandler
	ListUsers       *query.ListUsersHandler
	GetCredential   *query.GetCredentialHandler
	ListCredentials *query.ListCredentialsHandler
	GetAddress      *query.GetAddressHandler
	ListAddresses   *query.ListAddressesHandler
}

// UserHandler handles HTTP requests for users, credentials and addresses
type UserHandler struct {
	commands *CommandHandlers
	queries  *QueryHandlers
}

// NewUserHandler creates a new user handler
func NewUserHandler(commands *CommandHandlers, queries *QueryHandlers) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// RegisterRoutes registers all user service routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/users", h.ListUsers).Methods(http.MethodGet)
	router.HandleFunc("/api/users", h.CreateUser).Methods(http.MethodPost)
	router.HandleFunc("/api/users", h.UpdateUser).Methods(http.MethodPut)
	router.HandleFunc("/api/users/username/{username}", h.GetUserByUsername).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{userId:[0-9]+}", h.GetUser).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{userId:[0-9]+}", h.UpdateUser).Methods(http.MethodPut)
	router.HandleFunc("/api/users/{userId:[0-9]+}", h.DeleteUser).Methods(http.MethodDelete)

	router.HandleFunc("/api/credentials", h.ListCredentials).Methods(http.MethodGet)
	router.HandleFunc("/api/credentials", h.CreateCredential).Methods(http.MethodPost)
	router.HandleFunc("/api/credentials", h.UpdateCredential).Methods(http.MethodPut)
	router.HandleFunc("/api/credentials/authenticate", h.Authenticate).Methods(http.MethodPost)
	router.HandleFunc("/api/credentials/username/{username}", h.GetCredentialByUsername).Methods(http.MethodGet)
	router.HandleFunc("/api/credentials/{credentialId:[0-9]+}", h.GetCredential).Methods(http.MethodGet)
	router.HandleFunc("/api/credentials/{credentialId:[0-9]+}", h.UpdateCredential).Methods(http.MethodPut)
	router.HandleFunc("/api/credentials/{credentialId:[0-9]+}", h.DeleteCredential).Methods(http.MethodDelete)

	router.HandleFunc("/api/address", h.ListAddresses).Methods(http.MethodGet)
	router.HandleFunc("/api/address", h.SaveAddress).Methods(http.MethodPost)
	router.HandleFunc("/api/address", h.SaveAddress).Methods(http.MethodPut)
	router.HandleFunc("/api/address/{addressId:[0-9]+}", h.GetAddress).Methods(http.MethodGet)
	router.HandleFunc("/api/address/{addressId:[0-9]+}", h.SaveAddress).Methods(http.MethodPut)
	router.HandleFunc("/api/address/{addressId:[0-9]+}", h.DeleteAddress).Methods(http.MethodDelete)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToDTO())
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(out))
}

// GetUser handles GET /api/users/{userId}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "userId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	user, err := h.queries.GetUser.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, user.ToDTO())
}

// GetUserByUsername handles GET /api/users/username/{username}
func (h *UserHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.queries.GetUser.HandleByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, user.ToDTO())
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.User
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	user, err := h.commands.CreateUser.Handle(r.Context(), command.CreateUserCommand{User: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, user.ToDTO())
}

// UpdateUser handles PUT /api/users and PUT /api/users/{userId}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := optionalID(r, "userId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	var req dto.User
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	user, err := h.commands.UpdateUser.Handle(r.Context(), command.UpdateUserCommand{ID: id, User: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, user.ToDTO())
}

// DeleteUser handles DELETE /api/users/{userId}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "userId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteUser.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}

// ListCredentials handles GET /api/credentials
func (h *UserHandler) ListCredentials(w http.ResponseWriter, r *http.Request) {
	credentials, err := h.queries.ListCredentials.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	out := make([]dto.Credential, 0, len(credentials))
	for _, c := range credentials {
		out = append(out, c.ToDTO())
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(out))
}

// GetCredential handles GET /api/credentials/{credentialId}
func (h *UserHandler) GetCredential(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "credentialId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	credential, err := h.queries.GetCredential.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, credential.ToDTO())
}

// GetCredentialByUsername handles GET /api/credentials/username/{username}
func (h *UserHandler) GetCredentialByUsername(w http.ResponseWriter, r *http.Request) {
	credential, err := h.queries.GetCredential.HandleByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, credential.ToDTO())
}

// CreateCredential handles POST /api/credentials
func (h *UserHandler) CreateCredential(w http.ResponseWriter, r *http.Request) {
	var req dto.Credential
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	credential, err := h.commands.CreateCredential.Handle(r.Context(), req)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, credential.ToDTO())
}

// UpdateCredential handles PUT /api/credentials and PUT /api/credentials/{credentialId}
func (h *UserHandler) UpdateCredential(w http.ResponseWriter, r *http.Request) {
	id, err := optionalID(r, "credentialId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	var req dto.Credential
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	credential, err := h.commands.UpdateCredential.Handle(r.Context(), command.UpdateCredentialCommand{ID: id, Credential: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, credential.ToDTO())
}

// DeleteCredential handles DELETE /api/credentials/{credentialId}
func (h *UserHandler) DeleteCredential(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "credentialId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteCredential.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}

// Authenticate handles POST /api/credentials/authenticate
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req dto.Authentication
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	identity, err := h.commands.Authenticate.Handle(r.Context(), req)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, identity)
}

// ListAddresses handles GET /api/address
func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.queries.ListAddresses.Handle(r.Context())
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	out := make([]dto.Address, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, a.ToDTO())
	}
	server.RespondJSON(w, http.StatusOK, dto.NewCollection(out))
}

// GetAddress handles GET /api/address/{addressId}
func (h *UserHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "addressId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	address, err := h.queries.GetAddress.Handle(r.Context(), id)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, address.ToDTO())
}

// SaveAddress handles POST and PUT on /api/address
func (h *UserHandler) SaveAddress(w http.ResponseWriter, r *http.Request) {
	id, err := optionalID(r, "addressId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	var req dto.Address
	if err := server.DecodeJSON(r, &req); err != nil {
		server.WriteError(w, r, err)
		return
	}
	if id == 0 && r.Method == http.MethodPut {
		id = req.AddressID
	}

	address, err := h.commands.SaveAddress.Handle(r.Context(), command.SaveAddressCommand{ID: id, Address: req})
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, address.ToDTO())
}

// DeleteAddress handles DELETE /api/address/{addressId}
func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := server.PathInt(r, "addressId")
	if err != nil {
		server.WriteError(w, r, err)
		return
	}
	if err := h.commands.DeleteAddress.Handle(r.Context(), id); err != nil {
		server.WriteError(w, r, err)
		return
	}
	server.RespondJSON(w, http.StatusOK, true)
}

// optionalID returns 0 when the route carries no id variable
func optionalID(r *http.Request, name string) (int, error) {
	if _, ok := mux.Vars(r)[name]; !ok {
		return 0, nil
	}
	return server.PathInt(r, name)
}
