package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/usecase/query"
)

// ProvideCartRepository provides the cart repository
func ProvideCartRepository(db *gorm.DB) domain.CartRepository {
	return repository.NewGormCartRepository(db)
}

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCartRepository,
	ProvideOrderRepository,
)

var EngineSet = wire.NewSet(
	query.NewCartEngine,
	query.NewOrderEngine,
)

var CommandHandlerSet = wire.NewSet(
	command.NewSaveCartHandler,
	command.NewDeleteCartHandler,
	command.NewSaveOrderHandler,
	command.NewDeleteOrderHandler,
	wire.Struct(new(http.CommandHandlers), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewGetCartHandler,
	query.NewListCartsHandler,
	query.NewGetOrderHandler,
	query.NewListOrdersHandler,
	wire.Struct(new(http.QueryHandlers), "*"),
)
