package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// RateLimiter allows maxRequests per window per caller. It counts in a Redis
// sliding window and falls back to an in-process token bucket when Redis is
// absent or failing.
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
	local       *localLimiter
}

// NewRateLimiter creates a new rate limiter. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:       redisClient,
		maxRequests: maxRequests,
		window:      window,
		local:       newLocalLimiter(maxRequests, window),
	}
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := "ip:" + c.IP()
		if userID := c.Locals("user_id"); userID != nil {
			identifier = fmt.Sprintf("user:%v", userID)
		}

		allowed, remaining, resetTime := rl.allow(c.UserContext(), identifier)

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			logger.Warn(c.UserContext()).
				Str("identifier", identifier).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Rate limit exceeded",
				"retry_after": time.Until(resetTime).Round(time.Second).Seconds(),
			})
		}
		return c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, identifier string) (bool, int, time.Time) {
	if rl.redis != nil {
		allowed, remaining, resetTime, err := rl.checkLimit(ctx, identifier)
		if err == nil {
			return allowed, remaining, resetTime
		}
		logger.Warn(ctx).
			Err(err).
			Str("identifier", identifier).
			Msg("Rate limiter store failed, using local limiter")
	}
	return rl.local.allow(identifier)
}

// checkLimit counts requests in a sliding window kept as a Redis sorted set
func (rl *RateLimiter) checkLimit(ctx context.Context, identifier string) (bool, int, time.Time, error) {
	key := "ratelimit:" + identifier
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(countCmd.Val())
	remaining := max(rl.maxRequests-count-1, 0)
	return count < rl.maxRequests, remaining, now.Add(rl.window), nil
}

// localLimiter keeps one token bucket per caller
type localLimiter struct {
	limit   rate.Limit
	burst   int
	window  time.Duration
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

func newLocalLimiter(maxRequests int, window time.Duration) *localLimiter {
	return &localLimiter{
		limit:   rate.Limit(float64(maxRequests) / window.Seconds()),
		burst:   maxRequests,
		window:  window,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *localLimiter) allow(identifier string) (bool, int, time.Time) {
	l.mu.Lock()
	bucket, ok := l.buckets[identifier]
	if !ok {
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[identifier] = bucket
	}
	l.mu.Unlock()

	now := time.Now()
	allowed := bucket.AllowN(now, 1)
	remaining := max(int(bucket.TokensAt(now)), 0)
	return allowed, remaining, now.Add(l.window)
}
