package command

import (
	"context"
	"fmt"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/auth"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

// CreateCredentialHandler handles credential creation for an existing user
type CreateCredentialHandler struct {
	users       domain.UserRepository
	credentials domain.CredentialRepository
}

func NewCreateCredentialHandler(users domain.UserRepository, credentials domain.CredentialRepository) *CreateCredentialHandler {
	return &CreateCredentialHandler{users: users, credentials: credentials}
}

func (h *CreateCredentialHandler) Handle(ctx context.Context, in dto.Credential) (*domain.Credential, error) {
	userID := in.RefUserID()
	if userID <= 0 {
		return nil, apperror.Validationf("credential must reference a user")
	}
	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	credential, err := newCredential(userID, in)
	if err != nil {
		return nil, err
	}
	if err := h.credentials.Create(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}
	credential.User = user
	return credential, nil
}

// UpdateCredentialCommand replaces the mutable fields of a credential.
// An empty password keeps the stored hash.
type UpdateCredentialCommand struct {
	ID         int
	Credential dto.Credential
}

type UpdateCredentialHandler struct {
	credentials domain.CredentialRepository
}

func NewUpdateCredentialHandler(credentials domain.CredentialRepository) *UpdateCredentialHandler {
	return &UpdateCredentialHandler{credentials: credentials}
}

func (h *UpdateCredentialHandler) Handle(ctx context.Context, cmd UpdateCredentialCommand) (*domain.Credential, error) {
	id := cmd.ID
	if id == 0 {
		id = cmd.Credential.CredentialID
	}
	if id <= 0 {
		return nil, apperror.Validationf("credentialId is required")
	}

	credential, err := h.credentials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in := cmd.Credential
	credential.Username = in.Username
	if in.RoleBasedAuthority != "" {
		credential.RoleBasedAuthority = in.RoleBasedAuthority
	}
	credential.IsEnabled = in.IsEnabled
	credential.IsAccountNonExpired = in.IsAccountNonExpired
	credential.IsAccountNonLocked = in.IsAccountNonLocked
	credential.IsCredentialsNonExpired = in.IsCredentialsNonExpired
	if in.Password != "" {
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		credential.Password = hashed
	}

	if err := h.credentials.Update(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to update credential: %w", err)
	}
	return credential, nil
}

type DeleteCredentialHandler struct {
	credentials domain.CredentialRepository
}

func NewDeleteCredentialHandler(credentials domain.CredentialRepository) *DeleteCredentialHandler {
	return &DeleteCredentialHandler{credentials: credentials}
}

func (h *DeleteCredentialHandler) Handle(ctx context.Context, id int) error {
	return h.credentials.Delete(ctx, id)
}

// AuthenticateHandler verifies a username/password pair
type AuthenticateHandler struct {
	credentials domain.CredentialRepository
	recorder    *metrics.Recorder
}

func NewAuthenticateHandler(credentials domain.CredentialRepository, recorder *metrics.Recorder) *AuthenticateHandler {
	return &AuthenticateHandler{credentials: credentials, recorder: recorder}
}

// Handle returns the authenticated identity or an Unauthorized error
func (h *AuthenticateHandler) Handle(ctx context.Context, in dto.Authentication) (*dto.AuthenticatedUser, error) {
	credential, err := h.credentials.FindByUsername(ctx, in.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, h.reject(ctx, in.Username, "unknown username")
		}
		return nil, err
	}

	if !credential.IsEnabled || !credential.IsAccountNonLocked {
		return nil, h.reject(ctx, in.Username, "account disabled")
	}
	if !auth.CheckPassword(credential.Password, in.Password) {
		return nil, h.reject(ctx, in.Username, "password mismatch")
	}

	h.recorder.Inc(metrics.UsersLoginSuccess)
	return &dto.AuthenticatedUser{
		UserID:   credential.UserRef,
		Username: credential.Username,
		Role:     credential.RoleBasedAuthority,
	}, nil
}

func (h *AuthenticateHandler) reject(ctx context.Context, username, reason string) error {
	h.recorder.Inc(metrics.UsersLoginFailed)
	logger.Warn(ctx).
		Str("username", username).
		Str("reason", reason).
		Msg("Authentication rejected")
	return apperror.Unauthorized("bad credentials")
}
