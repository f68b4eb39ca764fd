//go:build wireinject
// +build wireinject

package product

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/delivery/events"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/usecase/command"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.ProductHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewProductHandler,
	)
	return nil, nil
}

// InitializeStockListener initializes the shipment event listener
func InitializeStockListener(db *gorm.DB) (*events.StockListener, error) {
	wire.Build(
		ProvideProductRepository,
		command.NewUpdateStockHandler,
		events.NewStockListener,
	)
	return nil, nil
}
