package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "api-gateway", cfg.Service.Name)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/app", cfg.ContextPath)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, []string{"http://localhost:8300"}, cfg.Discovery.Services["order-service"])

	order := cfg.Services["order-service"]
	assert.Equal(t, 30*time.Second, order.Timeout)
	assert.Equal(t, "/health", order.HealthCheck)
	assert.Equal(t, "localhost:9300", order.GRPCAddr)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9080")
	t.Setenv("CONTEXT_PATH", "/shop")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("PAYMENT_SERVICE_URL", "http://payment:8400")
	t.Setenv("SERVICES_PAYMENT_SERVICE_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9080", cfg.Port)
	assert.Equal(t, "/shop", cfg.ContextPath)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.RateLimit.Requests)
	assert.Equal(t, []string{"http://payment:8400"}, cfg.Discovery.Services["payment-service"])
	assert.Equal(t, 2*time.Second, cfg.Services["payment-service"].Timeout)
	assert.Equal(t, 30*time.Second, cfg.Services["user-service"].Timeout)
	assert.Equal(t, 30*time.Second, cfg.FlowTimeout())
}
