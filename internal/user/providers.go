package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/usecase/query"
)

// ProvideUserRepository provides the user repository
func ProvideUserRepository(db *gorm.DB) domain.UserRepository {
	return repository.NewGormUserRepository(db)
}

func ProvideCredentialRepository(db *gorm.DB) domain.CredentialRepository {
	return repository.NewGormCredentialRepository(db)
}

func ProvideAddressRepository(db *gorm.DB) domain.AddressRepository {
	return repository.NewGormAddressRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideUserRepository,
	ProvideCredentialRepository,
	ProvideAddressRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewCreateUserHandler,
	command.NewUpdateUserHandler,
	command.NewDeleteUserHandler,
	command.NewCreateCredentialHandler,
	command.NewUpdateCredentialHandler,
	command.NewDeleteCredentialHandler,
	command.NewAuthenticateHandler,
	command.NewSaveAddressHandler,
	command.NewDeleteAddressHandler,
	wire.Struct(new(http.CommandHandlers), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetUserHandler,
	query.NewListUsersHandler,
	query.NewGetCredentialHandler,
	query.NewListCredentialsHandler,
	query.NewGetAddressHandler,
	query.NewListAddressesHandler,
	wire.Struct(new(http.QueryHandlers), "*"),
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
