package shipping

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/usecase/query"
)

// ProvideOrderItemRepository provides the order item repository
func ProvideOrderItemRepository(db *gorm.DB) domain.OrderItemRepository {
	return repository.NewGormOrderItemRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderItemRepository,
	query.NewOrderItemEngine,
)

var CommandHandlerSet = wire.NewSet(
	command.NewSaveOrderItemHandler,
	command.NewDeleteOrderItemHandler,
	wire.Struct(new(http.CommandHandlers), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetOrderItemHandler,
	query.NewListOrderItemsHandler,
	wire.Struct(new(http.QueryHandlers), "*"),
)
