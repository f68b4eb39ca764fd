//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/delivery/events"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	lookup enrich.Lookup,
	publisher kafka.EventPublisher,
	recorder *metrics.Recorder,
	opts enrich.Options,
) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		EngineSet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewOrderHandler,
	)
	return nil, nil
}

// InitializePaymentListener initializes the payment event listener
func InitializePaymentListener(recorder *metrics.Recorder) (*events.PaymentListener, error) {
	wire.Build(events.NewPaymentListener)
	return nil, nil
}
