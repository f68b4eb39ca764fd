package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// InitTracer exports spans of serviceName to the Jaeger collector at endpoint
// and installs the provider and propagators globally.
func InitTracer(serviceName, endpoint string) (trace.TracerProvider, error) {
	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceNamespace("ecommerce"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	InstallPropagators()

	logger.Logger.Info().Str("endpoint", endpoint).Msg("Tracing enabled")
	return tp, nil
}

// InstallPropagators sets W3C trace-context and baggage propagation. Services
// call it even without an exporter so inbound trace ids reach the logs and
// outbound calls.
func InstallPropagators() {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// Shutdown flushes pending spans. Providers other than the SDK one are ignored.
func Shutdown(ctx context.Context, tp trace.TracerProvider) error {
	sdk, ok := tp.(*sdktrace.TracerProvider)
	if !ok {
		return nil
	}
	return sdk.Shutdown(ctx)
}
