package main

import (
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/payment/usecase/query"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/bootstrap"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

func main() {
	svc := bootstrap.Init("payment-service", "paymentdb", repository.AutoMigrate)

	plan := query.PlanOptions{OrderRequired: svc.Config.Enrich.PaymentOrderRequired}
	paymentHandler, err := payment.InitializeHTTPHandler(svc.DB, svc.Remote, svc.Publisher, svc.Recorder, svc.EnrichOptions(), plan)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().
		Bool("order_required", plan.OrderRequired).
		Msg("Payment handler initialized")

	ctx, stop := bootstrap.Context()
	defer stop()

	svc.Serve(ctx, "Payment Service API", paymentHandler.RegisterRoutes)
}
