package config

import (
	"fmt"
	"time"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/database"
)

// Config is the runtime configuration of a domain service.
type Config struct {
	Environment string `koanf:"environment"`

	Service struct {
		Name string `koanf:"name"`
	} `koanf:"service"`

	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`

	HTTP struct {
		Port string `koanf:"port"`
	} `koanf:"http"`

	GRPC struct {
		Port string `koanf:"port"`
	} `koanf:"grpc"`

	DB database.Config `koanf:"db"`

	Jaeger struct {
		Enabled  bool   `koanf:"enabled"`
		Endpoint string `koanf:"endpoint"`
	} `koanf:"jaeger"`

	Kafka struct {
		Enabled bool     `koanf:"enabled"`
		Brokers []string `koanf:"brokers"`
		GroupID string   `koanf:"groupId"`
	} `koanf:"kafka"`

	Discovery struct {
		Services map[string][]string `koanf:"services"`
	} `koanf:"discovery"`

	Remote struct {
		Timeout        time.Duration `koanf:"timeout"`
		MaxConcurrency int           `koanf:"maxConcurrency"`
	} `koanf:"remote"`

	JWT struct {
		Secret string        `koanf:"secret"`
		TTL    time.Duration `koanf:"ttl"`
	} `koanf:"jwt"`

	Enrich struct {
		PaymentOrderRequired bool `koanf:"paymentOrderRequired"`
	} `koanf:"enrich"`
}

// IsDevelopment reports whether console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Ports of the services on a single development host.
var DefaultPorts = map[string]struct{ HTTP, GRPC string }{
	"user-service":      {"8700", "9700"},
	"product-service":   {"8500", "9500"},
	"order-service":     {"8300", "9300"},
	"payment-service":   {"8400", "9400"},
	"shipping-service":  {"8600", "9600"},
	"favourite-service": {"8800", "9800"},
}

// DefaultDiscovery points every service at its development port.
func DefaultDiscovery() map[string][]string {
	services := make(map[string][]string, len(DefaultPorts))
	for name, ports := range DefaultPorts {
		services[name] = []string{"http://localhost:" + ports.HTTP}
	}
	return services
}

// LoadService loads the configuration of the named domain service.
func LoadService(serviceName, dbName string) (*Config, error) {
	ports, ok := DefaultPorts[serviceName]
	if !ok {
		return nil, fmt.Errorf("unknown service %s", serviceName)
	}

	defaults := map[string]any{
		"environment":                 "development",
		"service.name":                serviceName,
		"log.level":                   "info",
		"http.port":                   ports.HTTP,
		"grpc.port":                   ports.GRPC,
		"db.host":                     "localhost",
		"db.port":                     "5432",
		"db.user":                     "postgres",
		"db.password":                 "postgres",
		"db.name":                     dbName,
		"db.sslmode":                  "disable",
		"jaeger.enabled":              true,
		"jaeger.endpoint":             "http://localhost:14268/api/traces",
		"kafka.enabled":               false,
		"kafka.brokers":               []string{"localhost:9092"},
		"kafka.groupId":               serviceName,
		"remote.timeout":              "5s",
		"remote.maxConcurrency":       8,
		"jwt.secret":                  "change-me",
		"jwt.ttl":                     "10h",
		"enrich.paymentOrderRequired": false,
	}

	// one key per service so an override of one keeps the others
	for name, instances := range DefaultDiscovery() {
		defaults["discovery.services."+name] = instances
	}

	var cfg Config
	if err := Load(defaults, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
