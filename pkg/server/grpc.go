package server

import (
	"context"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// NewGRPCServer builds the gRPC server every domain service exposes. It
// carries the standard health service (reporting serviceName as SERVING)
// and reflection.
func NewGRPCServer(serviceName string) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(LoggingInterceptor),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)
	return grpcServer, healthServer
}

// LoggingInterceptor logs gRPC requests with structured logging
func LoggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	duration := time.Since(start)

	if err != nil {
		grpcStatus := "unknown"
		if st, ok := status.FromError(err); ok {
			grpcStatus = st.Code().String()
		}
		logger.Error(ctx).
			Str("method", info.FullMethod).
			Str("protocol", "grpc").
			Dur("duration", duration).
			Str("grpc_status", grpcStatus).
			Err(err).
			Msg("gRPC request failed")
		return resp, err
	}

	logger.Debug(ctx).
		Str("method", info.FullMethod).
		Str("protocol", "grpc").
		Dur("duration", duration).
		Msg("gRPC request completed")
	return resp, err
}
