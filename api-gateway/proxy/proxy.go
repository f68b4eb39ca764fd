package proxy

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/api-gateway/config"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// hop-by-hop headers are never relayed
var hopHeaders = map[string]bool{
	"connection":          true,
	"keep-alive":          true,
	"proxy-authenticate":  true,
	"proxy-authorization": true,
	"te":                  true,
	"trailer":             true,
	"transfer-encoding":   true,
	"upgrade":             true,
	"host":                true,
	"content-length":      true,
}

// ReverseProxy relays requests to backend services
type ReverseProxy struct {
	resolver    discovery.Resolver
	services    map[string]config.ServiceConfig
	contextPath string
	client      *http.Client
}

// NewReverseProxy creates a new reverse proxy
func NewReverseProxy(resolver discovery.Resolver, services map[string]config.ServiceConfig, contextPath string) *ReverseProxy {
	return &ReverseProxy{
		resolver:    resolver,
		services:    services,
		contextPath: contextPath,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// ProxyRequest forwards the request to /{serviceName}{path} on one instance
// of serviceName and copies status, headers and body back unchanged.
func (p *ReverseProxy) ProxyRequest(c *fiber.Ctx, serviceName string) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), p.timeout(serviceName))
	defer cancel()

	serverURL, err := p.resolver.ResolveBaseURL(ctx, serviceName)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "No available instances",
			"service": serviceName,
		})
	}

	targetURL := p.buildTargetURL(c, serverURL, serviceName)

	logger.Debug(ctx).
		Str("service", serviceName).
		Str("target_url", targetURL).
		Msg("Relaying request")

	req, err := http.NewRequestWithContext(ctx, c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create request",
		})
	}
	p.copyHeaders(c, req)

	resp, err := p.client.Do(req)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to reach backend service",
			"service": serviceName,
			"details": err.Error(),
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to read response",
			"service": serviceName,
		})
	}

	copyResponseHeaders(c, resp)
	c.Status(resp.StatusCode)
	return c.Send(body)
}

func (p *ReverseProxy) timeout(serviceName string) time.Duration {
	if svc, ok := p.services[serviceName]; ok && svc.Timeout > 0 {
		return svc.Timeout
	}
	return defaultTimeout
}

// buildTargetURL strips the gateway context path and mounts the rest under
// the service name, keeping the query string.
func (p *ReverseProxy) buildTargetURL(c *fiber.Ctx, serverURL, serviceName string) string {
	path := strings.TrimPrefix(string(c.Request().URI().Path()), p.contextPath)

	target := serverURL + "/" + serviceName + path
	if query := string(c.Request().URI().QueryString()); query != "" {
		target += "?" + query
	}
	return target
}

func (p *ReverseProxy) copyHeaders(c *fiber.Ctx, req *http.Request) {
	c.Request().Header.VisitAll(func(key, value []byte) {
		name := string(key)
		if hopHeaders[strings.ToLower(name)] {
			return
		}
		req.Header.Add(name, string(value))
	})

	req.Header.Set("X-Forwarded-For", c.IP())
	req.Header.Set("X-Forwarded-Proto", c.Protocol())
	req.Header.Set("X-Forwarded-Host", c.Hostname())
	if prefix := p.contextPath; prefix != "" {
		req.Header.Set("X-Forwarded-Prefix", prefix)
	}
}

func copyResponseHeaders(c *fiber.Ctx, resp *http.Response) {
	for key, values := range resp.Header {
		if hopHeaders[strings.ToLower(key)] {
			continue
		}
		for _, value := range values {
			c.Response().Header.Add(key, value)
		}
	}
}
