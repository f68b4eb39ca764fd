package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/kafka"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

const cachePrefix = "cache:"

// CacheConfig holds cache configuration
type CacheConfig struct {
	TTL time.Duration
	// Resolve names the service behind a path; "" disables caching
	Resolve func(path string) string
}

// CacheMiddleware caches successful GET responses in Redis, one key
// namespace per service. It must run inside the compression middleware:
// encoded bodies are never stored.
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if redisClient == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		service := config.Resolve(c.Path())
		if service == "" {
			return c.Next()
		}

		ctx := c.UserContext()
		cacheKey := CacheKey(service, c)

		cached, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cached) > 0 {
			logger.Debug(ctx).
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			c.Set("X-Cache", "HIT")
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() != fiber.StatusOK {
			return nil
		}
		if len(c.Response().Header.Peek(fiber.HeaderContentEncoding)) > 0 {
			c.Set("X-Cache", "BYPASS")
			return nil
		}

		body := c.Response().Body()
		if err := redisClient.Set(ctx, cacheKey, body, config.TTL).Err(); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("cache_key", cacheKey).
				Msg("Failed to cache response")
			return nil
		}

		c.Set("X-Cache", "MISS")
		return nil
	}
}

// CacheKey hashes method, path, query and caller under the service namespace
func CacheKey(service string, c *fiber.Ctx) string {
	components := fmt.Sprintf("%s:%s:%s:%s",
		c.Method(),
		c.Path(),
		string(c.Request().URI().QueryString()),
		c.Get(fiber.HeaderAuthorization),
	)

	hash := sha256.Sum256([]byte(components))
	return cachePrefix + service + ":" + hex.EncodeToString(hash[:])
}

// InvalidateService drops every cached response of service
func InvalidateService(ctx context.Context, redisClient *redis.Client, service string) error {
	pattern := cachePrefix + service + ":*"
	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		logger.Info(ctx).
			Int("count", len(keys)).
			Str("service", service).
			Msg("Cache invalidated")
	}
	return nil
}

// InvalidatedEvents are the domain events that change what a service answers
var InvalidatedEvents = []string{
	kafka.EventTypeOrderCreated,
	kafka.EventTypeOrderUpdated,
	kafka.EventTypeOrderDeleted,
	kafka.EventTypePaymentCreated,
	kafka.EventTypePaymentCompleted,
	kafka.EventTypeShippingCreated,
	kafka.EventTypeFavouriteAdded,
	kafka.EventTypeFavouriteRemoved,
}

// InvalidationHandler drops the cache of the service owning an event. A
// shipment also changes product stock.
func InvalidationHandler(redisClient *redis.Client) kafka.EventHandler {
	return func(ctx context.Context, event kafka.Event) error {
		services := []string{kafka.ServiceFor(event.EventType)}
		if event.EventType == kafka.EventTypeShippingCreated {
			services = append(services, "product-service")
		}
		for _, service := range services {
			if err := InvalidateService(ctx, redisClient, service); err != nil {
				return fmt.Errorf("failed to invalidate %s cache: %w", service, err)
			}
		}
		return nil
	}
}

// RegisterCacheInvalidation binds InvalidationHandler to every event type
func RegisterCacheInvalidation(consumer *kafka.Consumer, redisClient *redis.Client) {
	handler := InvalidationHandler(redisClient)
	for _, eventType := range InvalidatedEvents {
		consumer.RegisterHandler(eventType, handler)
	}
}
