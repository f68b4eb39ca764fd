//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/delivery/http"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, recorder *metrics.Recorder) (*http.UserHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewUserHandler,
	)
	return nil, nil
}
