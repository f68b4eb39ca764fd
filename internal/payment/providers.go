package payment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/domain"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/command"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/query"
)

// ProvidePaymentRepository provides the payment repository
func ProvidePaymentRepository(db *gorm.DB) domain.PaymentRepository {
	return repository.NewGormPaymentRepository(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvidePaymentRepository,
)

var CommandHandlerSet = wire.NewSet(
	command.NewSavePaymentHandler,
	command.NewDeletePaymentHandler,
	wire.Struct(new(http.CommandHandlers), "*"),
)

var QueryHandlerSet = wire.NewSet(
	query.NewPaymentEngine,
	query.NewGetPaymentHandler,
	query.NewListPaymentsHandler,
	wire.Struct(new(http.QueryHandlers), "*"),
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)
