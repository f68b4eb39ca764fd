//go:build wireinject
// +build wireinject

package favourite

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/enrich"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, lookup enrich.Lookup, publisher kafka.EventPublisher, opts enrich.Options) (*http.FavouriteHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewFavouriteHandler,
	)
	return nil, nil
}
