package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServiceDefaults(t *testing.T) {
	cfg, err := LoadService("payment-service", "paymentdb")
	require.NoError(t, err)

	assert.Equal(t, "payment-service", cfg.Service.Name)
	assert.Equal(t, "8400", cfg.HTTP.Port)
	assert.Equal(t, "9400", cfg.GRPC.Port)
	assert.Equal(t, "paymentdb", cfg.DB.DBName)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 8, cfg.Remote.MaxConcurrency)
	assert.Equal(t, []string{"http://localhost:8300"}, cfg.Discovery.Services["order-service"])
	assert.False(t, cfg.Enrich.PaymentOrderRequired)
}

func TestLoadServiceEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_NAME", "payments")
	t.Setenv("HTTP_PORT", "18400")
	t.Setenv("REMOTE_TIMEOUT", "750ms")
	t.Setenv("REMOTE_MAX_CONCURRENCY", "3")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ORDER_SERVICE_URL", "http://order-a:8300,http://order-b:8300")
	t.Setenv("ENRICH_PAYMENT_ORDER_REQUIRED", "true")

	cfg, err := LoadService("payment-service", "paymentdb")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Host)
	assert.Equal(t, "payments", cfg.DB.DBName)
	assert.Equal(t, "18400", cfg.HTTP.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.Remote.Timeout)
	assert.Equal(t, 3, cfg.Remote.MaxConcurrency)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"http://order-a:8300", "http://order-b:8300"}, cfg.Discovery.Services["order-service"])
	assert.Equal(t, []string{"http://localhost:8700"}, cfg.Discovery.Services["user-service"])
	assert.True(t, cfg.Enrich.PaymentOrderRequired)
}

func TestLoadServiceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\nremote:\n  timeout: 2s\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadService("order-service", "orderdb")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Remote.Timeout)
}

func TestLoadServiceUnknown(t *testing.T) {
	_, err := LoadService("inventory-service", "inventorydb")
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	known := map[string]any{
		"remote": map[string]any{"maxConcurrency": 8, "timeout": "5s"},
		"db":     map[string]any{"sslmode": "disable"},
	}

	assert.Equal(t, "remote.maxConcurrency", envKey("REMOTE_MAX_CONCURRENCY", known))
	assert.Equal(t, "db.sslmode", envKey("DB_SSLMODE", known))
	assert.Equal(t, "discovery.services.favourite-service", envKey("FAVOURITE_SERVICE_URL", known))
	assert.Equal(t, "home", envKey("HOME", known))
	assert.Equal(t, "remote_retries", envKey("REMOTE_RETRIES", known))
}
