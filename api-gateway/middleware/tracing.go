package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware starts a server span per request, continuing any trace
// the caller sent, and injects the context into the relayed headers
func TracingMiddleware() fiber.Handler {
	tracer := otel.Tracer(gatewayService)

	return func(c *fiber.Ctx) error {
		inbound := propagation.HeaderCarrier(http.Header{})
		c.Request().Header.VisitAll(func(key, value []byte) {
			inbound.Set(string(key), string(value))
		})
		parent := otel.GetTextMapPropagator().Extract(c.UserContext(), inbound)

		ctx, span := tracer.Start(
			parent,
			c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.Path()),
				attribute.String("http.host", c.Hostname()),
				attribute.String("http.user_agent", c.Get(fiber.HeaderUserAgent)),
				attribute.String("http.client_ip", c.IP()),
			),
		)
		defer span.End()

		c.SetUserContext(ctx)

		outbound := propagation.HeaderCarrier(http.Header{})
		otel.GetTextMapPropagator().Inject(ctx, outbound)
		for _, key := range outbound.Keys() {
			c.Request().Header.Set(key, outbound.Get(key))
		}

		if span.SpanContext().HasTraceID() {
			c.Set("X-Trace-Id", span.SpanContext().TraceID().String())
		}

		err := c.Next()

		statusCode := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
		if route := c.Route(); route != nil {
			span.SetAttributes(attribute.String("http.route", route.Path))
		}

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case statusCode >= fiber.StatusInternalServerError:
			span.SetStatus(codes.Error, http.StatusText(statusCode))
		default:
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
