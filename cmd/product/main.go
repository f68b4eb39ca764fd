package main

import (
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/product/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/bootstrap"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

func main() {
	svc := bootstrap.Init("product-service", "productdb", repository.AutoMigrate)

	productHandler, err := product.InitializeHTTPHandler(svc.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	stockListener, err := product.InitializeStockListener(svc.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize stock listener")
	}

	ctx, stop := bootstrap.Context()
	defer stop()

	// shipments reduce stock
	svc.Consume(ctx, []string{kafka.TopicShippingEvents}, stockListener.Register)

	svc.Serve(ctx, "Product Service API", productHandler.RegisterRoutes)
}
