package favourite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/usecase/query"
)

// ProvideFavouriteRepository provides the favourite repository
func ProvideFavouriteRepository(db *gorm.DB) domain.FavouriteRepository {
	return repository.NewGormFavouriteRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideFavouriteRepository,
	query.NewFavouriteEngine,
)

var CommandHandlerSet = wire.NewSet(
	command.NewSaveFavouriteHandler,
	command.NewDeleteFavouriteHandler,
	wire.Struct(new(http.CommandHandlers), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetFavouriteHandler,
	query.NewListFavouritesHandler,
	wire.Struct(new(http.QueryHandlers), "*"),
)
