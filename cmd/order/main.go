package main

import (
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/order/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/bootstrap"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

func main() {
	svc := bootstrap.Init("order-service", "orderdb", repository.AutoMigrate)

	orderHandler, err := order.InitializeHTTPHandler(svc.DB, svc.Remote, svc.Publisher, svc.Recorder, svc.EnrichOptions())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	paymentListener, err := order.InitializePaymentListener(svc.Recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize payment listener")
	}

	ctx, stop := bootstrap.Context()
	defer stop()

	svc.Consume(ctx, []string{kafka.TopicPaymentEvents}, paymentListener.Register)

	svc.Serve(ctx, "Order Service API", orderHandler.RegisterRoutes)
}
