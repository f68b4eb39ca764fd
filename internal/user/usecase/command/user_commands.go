package command

import (
	"context"
	"fmt"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/auth"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

// CreateUserCommand represents the command to create a new user, optionally
// with its credential
type CreateUserCommand struct {
	User dto.User
}

// CreateUserHandler handles user creation command
type CreateUserHandler struct {
	users       domain.UserRepository
	credentials domain.CredentialRepository
	recorder    *metrics.Recorder
}

// NewCreateUserHandler creates a new create user handler
func NewCreateUserHandler(users domain.UserRepository, credentials domain.CredentialRepository, recorder *metrics.Recorder) *CreateUserHandler {
	return &CreateUserHandler{users: users, credentials: credentials, recorder: recorder}
}

// Handle executes the create user command
func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*domain.User, error) {
	user := &domain.User{
		FirstName: cmd.User.FirstName,
		LastName:  cmd.User.LastName,
		ImageURL:  cmd.User.ImageURL,
		Email:     cmd.User.Email,
		Phone:     cmd.User.Phone,
	}
	if err := h.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if in := cmd.User.Credential; in != nil {
		credential, err := newCredential(user.ID, *in)
		if err != nil {
			return nil, err
		}
		if err := h.credentials.Create(ctx, credential); err != nil {
			return nil, fmt.Errorf("failed to create credential: %w", err)
		}
		user.Credential = credential
	}

	h.recorder.Inc(metrics.UsersCreated)
	return user, nil
}

// UpdateUserCommand replaces the mutable fields of an existing user
type UpdateUserCommand struct {
	ID   int
	User dto.User
}

// UpdateUserHandler handles user update command
type UpdateUserHandler struct {
	users domain.UserRepository
}

func NewUpdateUserHandler(users domain.UserRepository) *UpdateUserHandler {
	return &UpdateUserHandler{users: users}
}

func (h *UpdateUserHandler) Handle(ctx context.Context, cmd UpdateUserCommand) (*domain.User, error) {
	id := cmd.ID
	if id == 0 {
		id = cmd.User.UserID
	}
	if id <= 0 {
		return nil, apperror.Validationf("userId is required")
	}

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.FirstName = cmd.User.FirstName
	user.LastName = cmd.User.LastName
	user.ImageURL = cmd.User.ImageURL
	user.Email = cmd.User.Email
	user.Phone = cmd.User.Phone

	if err := h.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUserHandler handles user deletion command
type DeleteUserHandler struct {
	users domain.UserRepository
}

func NewDeleteUserHandler(users domain.UserRepository) *DeleteUserHandler {
	return &DeleteUserHandler{users: users}
}

func (h *DeleteUserHandler) Handle(ctx context.Context, id int) error {
	return h.users.Delete(ctx, id)
}

func newCredential(userID int, in dto.Credential) (*domain.Credential, error) {
	if in.Username == "" || in.Password == "" {
		return nil, apperror.Validationf("credential username and password are required")
	}
	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.RoleBasedAuthority
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.Credential{
		UserRef:                 userID,
		Username:                in.Username,
		Password:                hashed,
		RoleBasedAuthority:      role,
		IsEnabled:               in.IsEnabled,
		IsAccountNonExpired:     in.IsAccountNonExpired,
		IsAccountNonLocked:      in.IsAccountNonLocked,
		IsCredentialsNonExpired: in.IsCredentialsNonExpired,
	}, nil
}
