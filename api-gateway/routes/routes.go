package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/flow"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/health"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/middleware"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/proxy"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/auth"
)

// Dependencies are built once in main and shared by every route
type Dependencies struct {
	ContextPath string
	Proxy       *proxy.ReverseProxy
	Caller      flow.Caller
	Tokens      *auth.Manager
	Health      *health.HealthChecker
	Breakers    *middleware.CircuitBreakerManager
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(deps.Health.QuickCheck())
	})

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	// Readiness fails only when no downstream service is healthy
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		status := deps.Health.CheckAllServices(ctx)
		code := fiber.StatusOK
		if status.Status == health.StatusUnhealthy {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(status)
	})

	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		return c.JSON(deps.Health.CheckAllServices(ctx))
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", func(c *fiber.Ctx) error {
		out := fiber.Map{
			"message":     "API Gateway",
			"contextPath": deps.ContextPath,
			"routes":      Routes,
		}
		if deps.Breakers != nil {
			out["circuitBreakers"] = deps.Breakers.AllStats()
		}
		return c.JSON(out)
	})

	api := app.Group(deps.ContextPath)

	api.Post("/api/authenticate", flow.NewAuthenticator(deps.Caller, deps.Tokens).Handle)
	api.Post("/api/purchases", middleware.AuthMiddleware(deps.Tokens), flow.NewPurchase(deps.Caller).Handle)

	for _, route := range Routes {
		registerServiceRoutes(api, route, deps)
	}
}

// registerServiceRoutes relays every method on the prefix and below it
func registerServiceRoutes(router fiber.Router, route RouteDefinition, deps Dependencies) {
	var handlers []fiber.Handler
	if route.RequireAuth {
		handlers = append(handlers, middleware.AuthMiddleware(deps.Tokens))
	}
	if route.RequireAdmin {
		handlers = append(handlers, middleware.AdminMiddleware())
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return deps.Proxy.ProxyRequest(c, route.ServiceName)
	})

	router.All(route.Prefix, handlers...)
	router.All(route.Prefix+"/*", handlers...)
}
