package query

import (
	"context"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/domain"
)

// GetUserHandler handles get user queries by id or username
type GetUserHandler struct {
	users domain.UserRepository
}

func NewGetUserHandler(users domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{users: users}
}

func (h *GetUserHandler) Handle(ctx context.Context, id int) (*domain.User, error) {
	return h.users.FindByID(ctx, id)
}

func (h *GetUserHandler) HandleByUsername(ctx context.Context, username string) (*domain.User, error) {
	return h.users.FindByUsername(ctx, username)
}

// ListUsersHandler handles list users query
type ListUsersHandler struct {
	users domain.UserRepository
}

func NewListUsersHandler(users domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{users: users}
}

func (h *ListUsersHandler) Handle(ctx context.Context) ([]domain.User, error) {
	return h.users.FindAll(ctx)
}

// GetCredentialHandler handles get credential queries
type GetCredentialHandler struct {
	credentials domain.CredentialRepository
}

func NewGetCredentialHandler(credentials domain.CredentialRepository) *GetCredentialHandler {
	return &GetCredentialHandler{credentials: credentials}
}

func (h *GetCredentialHandler) Handle(ctx context.Context, id int) (*domain.Credential, error) {
	return h.credentials.FindByID(ctx, id)
}

func (h *GetCredentialHandler) HandleByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	return h.credentials.FindByUsername(ctx, username)
}

type ListCredentialsHandler struct {
	credentials domain.CredentialRepository
}

func NewListCredentialsHandler(credentials domain.CredentialRepository) *ListCredentialsHandler {
	return &ListCredentialsHandler{credentials: credentials}
}

func (h *ListCredentialsHandler) Handle(ctx context.Context) ([]domain.Credential, error) {
	return h.credentials.FindAll(ctx)
}

// GetAddressHandler handles get address query
type GetAddressHandler struct {
	addresses domain.AddressRepository
}

func NewGetAddressHandler(addresses domain.AddressRepository) *GetAddressHandler {
	return &GetAddressHandler{addresses: addresses}
}

func (h *GetAddressHandler) Handle(ctx context.Context, id int) (*domain.Address, error) {
	return h.addresses.FindByID(ctx, id)
}

type ListAddressesHandler struct {
	addresses domain.AddressRepository
}

func NewListAddressesHandler(addresses domain.AddressRepository) *ListAddressesHandler {
	return &ListAddressesHandler{addresses: addresses}
}

func (h *ListAddressesHandler) Handle(ctx context.Context) ([]domain.Address, error) {
	return h.addresses.FindAll(ctx)
}
