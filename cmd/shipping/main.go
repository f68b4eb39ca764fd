package main

import (
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/shipping/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/bootstrap"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

func main() {
	svc := bootstrap.Init("shipping-service", "shippingdb", repository.AutoMigrate)

	shippingHandler, err := shipping.InitializeHTTPHandler(svc.DB, svc.Remote, svc.Publisher, svc.EnrichOptions())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	ctx, stop := bootstrap.Context()
	defer stop()

	svc.Serve(ctx, "Shipping Service API", shippingHandler.RegisterRoutes)
}
