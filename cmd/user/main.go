package main

import (
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/internal/user/repository"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/bootstrap"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

func main() {
	svc := bootstrap.Init("user-service", "userdb", repository.AutoMigrate)

	userHandler, err := user.InitializeHTTPHandler(svc.DB, svc.Recorder)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	ctx, stop := bootstrap.Context()
	defer stop()

	svc.Serve(ctx, "User Service API", userHandler.RegisterRoutes)
}
