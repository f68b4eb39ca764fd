package config

import (
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/config"
)

// ServiceConfig holds per-service settings for a backend service
type ServiceConfig struct {
	Timeout     time.Duration `koanf:"timeout"`
	HealthCheck string        `koanf:"healthPath"`
	GRPCAddr    string        `koanf:"grpcAddr"`
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Environment string `koanf:"environment"`

	Service struct {
		Name string `koanf:"name"`
	} `koanf:"service"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	Port        string `koanf:"port"`
	ContextPath string `koanf:"contextPath"`

	Jaeger struct {
		Enabled  bool   `koanf:"enabled"`
		Endpoint string `koanf:"endpoint"`
	} `koanf:"jaeger"`

	JWT struct {
		Secret string        `koanf:"secret"`
		TTL    time.Duration `koanf:"ttl"`
	} `koanf:"jwt"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Cache struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"cache"`

	RateLimit struct {
		Requests int           `koanf:"requests"`
		Window   time.Duration `koanf:"window"`
	} `koanf:"rateLimit"`

	Kafka struct {
		Enabled bool     `koanf:"enabled"`
		Brokers []string `koanf:"brokers"`
		GroupID string   `koanf:"groupId"`
	} `koanf:"kafka"`

	Discovery struct {
		Services map[string][]string `koanf:"services"`
	} `koanf:"discovery"`

	Services map[string]ServiceConfig `koanf:"services"`
}

// IsDevelopment reports whether console logging should be used
func (c *GatewayConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// FlowTimeout is the longest per-service timeout. Multi-step flows use one
// client for every step.
func (c *GatewayConfig) FlowTimeout() time.Duration {
	longest := 5 * time.Second
	for _, svc := range c.Services {
		if svc.Timeout > longest {
			longest = svc.Timeout
		}
	}
	return longest
}

// LoadConfig loads the gateway configuration
func LoadConfig() (*GatewayConfig, error) {
	defaults := map[string]any{
		"environment":        "development",
		"service.name":       "api-gateway",
		"log.level":          "info",
		"port":               "8080",
		"contextPath":        "/app",
		"jaeger.enabled":     true,
		"jaeger.endpoint":    "http://localhost:14268/api/traces",
		"jwt.secret":         "change-me",
		"jwt.ttl":            "10h",
		"redis.addr":         "localhost:6379",
		"redis.password":     "",
		"cache.ttl":          "1m",
		"rateLimit.requests": 100,
		"rateLimit.window":   "1m",
		"kafka.enabled":      false,
		"kafka.brokers":      []string{"localhost:9092"},
		"kafka.groupId":      "api-gateway",
	}

	for name, instances := range config.DefaultDiscovery() {
		defaults["discovery.services."+name] = instances
	}
	for name, ports := range config.DefaultPorts {
		defaults["services."+name+".timeout"] = "30s"
		defaults["services."+name+".healthPath"] = "/health"
		defaults["services."+name+".grpcAddr"] = "localhost:" + ports.GRPC
	}

	var cfg GatewayConfig
	if err := config.Load(defaults, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
