package command

import (
	"context"
	"fmt"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/dto"
)

// SaveAddressCommand creates (ID 0) or updates an address
type SaveAddressCommand struct {
	ID      int
	Address dto.Address
}

// SaveAddressHandler handles address create and update commands
type SaveAddressHandler struct {
	users     domain.UserRepository
	addresses domain.AddressRepository
}

func NewSaveAddressHandler(users domain.UserRepository, addresses domain.AddressRepository) *SaveAddressHandler {
	return &SaveAddressHandler{users: users, addresses: addresses}
}

func (h *SaveAddressHandler) Handle(ctx context.Context, cmd SaveAddressCommand) (*domain.Address, error) {
	userID := cmd.Address.RefUserID()

	if cmd.ID == 0 {
		if userID <= 0 {
			return nil, apperror.Validationf("address must reference a user")
		}
		user, err := h.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		address := &domain.Address{
			UserRef:     userID,
			FullAddress: cmd.Address.FullAddress,
			PostalCode:  cmd.Address.PostalCode,
			City:        cmd.Address.City,
		}
		if err := h.addresses.Create(ctx, address); err != nil {
			return nil, fmt.Errorf("failed to create address: %w", err)
		}
		address.User = user
		return address, nil
	}

	address, err := h.addresses.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}
	address.FullAddress = cmd.Address.FullAddress
	address.PostalCode = cmd.Address.PostalCode
	address.City = cmd.Address.City
	if userID > 0 {
		address.UserRef = userID
	}
	if err := h.addresses.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

type DeleteAddressHandler struct {
	addresses domain.AddressRepository
}

func NewDeleteAddressHandler(addresses domain.AddressRepository) *DeleteAddressHandler {
	return &DeleteAddressHandler{addresses: addresses}
}

func (h *DeleteAddressHandler) Handle(ctx context.Context, id int) error {
	return h.addresses.Delete(ctx, id)
}
