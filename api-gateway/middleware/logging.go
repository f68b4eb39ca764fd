package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/metrics"
)

const gatewayService = "api-gateway"

// RequestContext copies the request id set by the requestid middleware into
// the user context, so downstream calls and log lines carry it
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, _ := c.Locals("requestid").(string)
		if requestID == "" {
			requestID = c.Get(fiber.HeaderXRequestID)
		}
		if requestID != "" {
			c.SetUserContext(logger.ContextWithRequestID(c.UserContext(), requestID))
		}
		return c.Next()
	}
}

// StructuredLoggingMiddleware logs each request and records its latency
func StructuredLoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start)
		statusCode := c.Response().StatusCode()
		route := c.Route().Path

		metrics.ObserveHTTP(gatewayService, c.Method(), route, statusCode, duration)

		log := logger.WithContext(c.UserContext())
		var event *zerolog.Event
		switch {
		case err != nil || statusCode >= fiber.StatusInternalServerError:
			event = log.Error().Err(err)
		case statusCode >= fiber.StatusBadRequest:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", statusCode).
			Dur("duration", duration).
			Int("response_size", len(c.Response().Body())).
			Str("ip", c.IP()).
			Msg("Gateway request completed")

		return err
	}
}
