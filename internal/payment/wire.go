//go:build wireinject
// +build wireinject

package payment

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

// InitializeHTTPHandler initializes payment handler with all dependencies
func InitializeHTTPHandler(
	db *gorm.DB,
	lookup enrich.Lookup,
	publisher kafka.EventPublisher,
	recorder *metrics.Recorder,
	opts enrich.Options,
	plan query.PlanOptions,
) (*http.PaymentHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewPaymentHandler,
	)
	return nil, nil
}
