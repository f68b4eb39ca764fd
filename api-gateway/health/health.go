package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/config"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// ServiceHealth represents the health status of a service
type ServiceHealth struct {
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	URL        string    `json:"url"`
	GRPCStatus string    `json:"grpcStatus,omitempty"`
	LatencyMS  int64     `json:"latency_ms"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// GatewayHealth represents the overall gateway health
type GatewayHealth struct {
	Gateway  string                   `json:"gateway"`
	Status   string                   `json:"status"`
	Services map[string]ServiceHealth `json:"services"`
	Uptime   float64                  `json:"uptime_seconds"`
}

// GRPCCheck asks a gRPC health server for the status of service
type GRPCCheck func(ctx context.Context, addr, service string) (string, error)

// HealthChecker checks health of downstream services
type HealthChecker struct {
	resolver  discovery.Resolver
	services  map[string]config.ServiceConfig
	names     []string
	client    *http.Client
	check     GRPCCheck
	startTime time.Time
}

// NewHealthChecker creates a checker over names. check may be nil to skip
// the gRPC check.
func NewHealthChecker(resolver discovery.Resolver, services map[string]config.ServiceConfig, names []string, check GRPCCheck) *HealthChecker {
	return &HealthChecker{
		resolver:  resolver,
		services:  services,
		names:     names,
		client:    &http.Client{Timeout: 5 * time.Second},
		check:     check,
		startTime: time.Now(),
	}
}

// CheckService checks health of a single service
func (h *HealthChecker) CheckService(ctx context.Context, name string) ServiceHealth {
	start := time.Now()
	result := ServiceHealth{Name: name, Timestamp: start}

	svc := h.services[name]
	healthPath := svc.HealthCheck
	if healthPath == "" {
		healthPath = "/health"
	}

	baseURL, err := h.resolver.ResolveBaseURL(ctx, name)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
		return finish(&result, start)
	}
	result.URL = baseURL

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+healthPath, nil)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		return finish(&result, start)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("Failed to reach service: %v", err)
		return finish(&result, start)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		result.Status = StatusUnhealthy
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
		return finish(&result, start)
	}
	result.Status = StatusHealthy

	if h.check != nil && svc.GRPCAddr != "" {
		grpcStatus, err := h.check(ctx, svc.GRPCAddr, name)
		result.GRPCStatus = grpcStatus
		if err != nil {
			result.Status = StatusDegraded
			result.Error = fmt.Sprintf("gRPC health: %v", err)
		}
	}
	return finish(&result, start)
}

func finish(result *ServiceHealth, start time.Time) ServiceHealth {
	result.LatencyMS = time.Since(start).Milliseconds()
	return *result
}

// CheckAllServices checks every service concurrently
func (h *HealthChecker) CheckAllServices(ctx context.Context) GatewayHealth {
	services := make(map[string]ServiceHealth, len(h.names))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, name := range h.names {
		wg.Go(func() {
			health := h.CheckService(ctx, name)

			mu.Lock()
			services[name] = health
			mu.Unlock()

			if health.Status != StatusHealthy {
				logger.Warn(ctx).
					Str("service", name).
					Str("status", health.Status).
					Str("error", health.Error).
					Msg("Service health check failed")
			}
		})
	}
	wg.Wait()

	return GatewayHealth{
		Gateway:  "api-gateway",
		Status:   overallStatus(services),
		Services: services,
		Uptime:   time.Since(h.startTime).Seconds(),
	}
}

func overallStatus(services map[string]ServiceHealth) string {
	healthy := 0
	for _, svc := range services {
		if svc.Status == StatusHealthy {
			healthy++
		}
	}

	switch {
	case healthy == len(services):
		return StatusHealthy
	case healthy > 0:
		return StatusDegraded
	default:
		return StatusUnhealthy
	}
}

// QuickCheck reports the gateway itself only
func (h *HealthChecker) QuickCheck() map[string]any {
	return map[string]any{
		"status":    StatusHealthy,
		"gateway":   "api-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}

// CheckGRPC calls the standard gRPC health service at addr
func CheckGRPC(ctx context.Context, addr, service string) (string, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return "", err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return "", err
	}
	status := resp.GetStatus().String()
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return status, fmt.Errorf("service reports %s", status)
	}
	return status, nil
}
