package main

import (
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/favourite/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/bootstrap"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

func main() {
	svc := bootstrap.Init("favourite-service", "favouritedb", repository.AutoMigrate)

	favouriteHandler, err := favourite.InitializeHTTPHandler(svc.DB, svc.Remote, svc.Publisher, svc.EnrichOptions())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	ctx, stop := bootstrap.Context()
	defer stop()

	svc.Serve(ctx, "Favourite Service API", favouriteHandler.RegisterRoutes)
}
