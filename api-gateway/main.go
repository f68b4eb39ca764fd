package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/config"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/health"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/middleware"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/proxy"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/routes"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/auth"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/remote"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("api-gateway", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.Service.Name, cfg.IsDevelopment())
	logger.SetLevel(cfg.Log.Level)

	logger.Logger.Info().
		Str("service", cfg.Service.Name).
		Str("environment", cfg.Environment).
		Str("context_path", cfg.ContextPath).
		Msg("Starting API Gateway")

	if cfg.Jaeger.Enabled {
		tp, err := tracing.InitTracer(cfg.Service.Name, cfg.Jaeger.Endpoint)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
			tracing.InstallPropagators()
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(ctx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	} else {
		tracing.InstallPropagators()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := connectRedis(ctx, cfg)
	if redisClient != nil {
		defer redisClient.Close()
		startCacheInvalidation(ctx, cfg, redisClient)
	}

	registry := discovery.NewRegistry(cfg.Discovery.Services)
	breakers := middleware.NewCircuitBreakerManager(5, 30*time.Second)
	resolve := routes.ServiceResolver(cfg.ContextPath)

	app := fiber.New(fiber.Config{
		AppName:      "API Gateway",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.FlowTimeout() * 4,
		IdleTimeout:  30 * time.Second,
		ErrorHandler: errorHandler,
	})

	setupMiddleware(app, cfg, redisClient, breakers, resolve)

	routes.SetupRoutes(app, routes.Dependencies{
		ContextPath: cfg.ContextPath,
		Proxy:       proxy.NewReverseProxy(registry, cfg.Services, cfg.ContextPath),
		Caller:      remote.NewClient(registry, cfg.FlowTimeout()),
		Tokens:      auth.NewManager(cfg.JWT.Secret, cfg.JWT.TTL),
		Health:      health.NewHealthChecker(registry, cfg.Services, routes.Services(), health.CheckGRPC),
		Breakers:    breakers,
	})

	go func() {
		for _, name := range registry.Services() {
			pool, _ := registry.Pool(name)
			logger.Logger.Info().
				Str("service", name).
				Strs("instances", pool.Instances()).
				Msg("Routing to service")
		}
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down API Gateway")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

// connectRedis returns nil when Redis is unreachable. Caching is then off and
// rate limiting stays in process.
func connectRedis(ctx context.Context, cfg *config.GatewayConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("redis_addr", cfg.Redis.Addr).
			Msg("Failed to connect to Redis - caching disabled")
		client.Close()
		return nil
	}

	logger.Logger.Info().Str("redis_addr", cfg.Redis.Addr).Msg("Connected to Redis")
	return client
}

func startCacheInvalidation(ctx context.Context, cfg *config.GatewayConfig, redisClient *redis.Client) {
	if !cfg.Kafka.Enabled {
		return
	}

	consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, kafka.AllTopics)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable - cache relies on TTL")
		return
	}
	middleware.RegisterCacheInvalidation(consumer, redisClient)
	consumer.Start(ctx)

	go func() {
		<-ctx.Done()
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close consumer")
		}
	}()
}

// setupMiddleware configures global middleware
func setupMiddleware(app *fiber.App, cfg *config.GatewayConfig, redisClient *redis.Client, breakers *middleware.CircuitBreakerManager, resolve func(string) string) {
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(middleware.RequestContext())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLoggingMiddleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,PATCH,OPTIONS,HEAD",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-Id, traceparent, tracestate",
		ExposeHeaders: "X-Request-Id, X-Trace-Id, X-Cache, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:        86400,
	}))

	// Everything below sees and caches uncompressed bodies
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	app.Use(middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window).Middleware())

	if redisClient != nil {
		app.Use(middleware.CacheMiddleware(redisClient, middleware.CacheConfig{
			TTL:     cfg.Cache.TTL,
			Resolve: resolve,
		}))
		logger.Logger.Info().Dur("ttl", cfg.Cache.TTL).Msg("Response caching enabled (GET only)")
	}

	app.Use(middleware.CircuitBreakerMiddleware(breakers, resolve))
}

// errorHandler renders errors returned by handlers
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":      err.Error(),
		"statusCode": code,
		"path":       c.Path(),
		"method":     c.Method(),
		"requestId":  c.GetRespHeader(fiber.HeaderXRequestID),
	})
}
