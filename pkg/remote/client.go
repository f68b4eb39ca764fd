package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/discovery"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// DefaultTimeout bounds a single downstream call when none is configured.
const DefaultTimeout = 5 * time.Second

const requestIDHeader = "X-Request-ID"

// Client calls sibling services by name. It never retries and never caches.
type Client struct {
	resolver discovery.Resolver
	http     *http.Client
	timeout  time.Duration
}

// NewClient builds a client whose transport is instrumented with otelhttp
func NewClient(resolver discovery.Resolver, timeout time.Duration) *Client {
	return NewClientWithHTTP(resolver, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, timeout)
}

// NewClientWithHTTP is NewClient with a caller supplied *http.Client
func NewClientWithHTTP(resolver discovery.Resolver, httpClient *http.Client, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{resolver: resolver, http: httpClient, timeout: timeout}
}

// Get fetches resourcePath/id from service and decodes the body into out
func (c *Client) Get(ctx context.Context, service, resourcePath, id string, out any) error {
	return c.call(ctx, http.MethodGet, service, joinID(resourcePath, id), nil, out)
}

// Post submits body to service and decodes the created representation into out
func (c *Client) Post(ctx context.Context, service, resourcePath string, body, out any) error {
	return c.call(ctx, http.MethodPost, service, resourcePath, body, out)
}

// Put submits an updated representation
func (c *Client) Put(ctx context.Context, service, resourcePath string, body, out any) error {
	return c.call(ctx, http.MethodPut, service, resourcePath, body, out)
}

// Delete removes resourcePath/id. out may be nil.
func (c *Client) Delete(ctx context.Context, service, resourcePath, id string, out any) error {
	return c.call(ctx, http.MethodDelete, service, joinID(resourcePath, id), nil, out)
}

// Fetch is a typed Get
func Fetch[T any](ctx context.Context, c *Client, service, resourcePath, id string) (*T, error) {
	var out T
	if err := c.Get(ctx, service, resourcePath, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Do sends a raw body and returns the raw 2xx response body. body may be nil.
func (c *Client) Do(ctx context.Context, method, service, path string, body []byte) ([]byte, error) {
	start := time.Now()
	raw, err := c.do(ctx, method, service, path, body)
	observe(service, start, err)
	return raw, err
}

func (c *Client) call(ctx context.Context, method, service, path string, body, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, service, path, body, out)
	observe(service, start, err)
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, service, path string, body, out any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request body: %w", service, err)
		}
		payload = encoded
	}

	raw, err := c.do(ctx, method, service, path, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &LookupError{Kind: MalformedResponse, Service: service, URL: path, Body: raw, Err: err}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, service, path string, body []byte) ([]byte, error) {
	base, err := c.resolver.ResolveBaseURL(ctx, service)
	if err != nil {
		return nil, &LookupError{Kind: Unreachable, Service: service, URL: path, Err: err}
	}
	target := base + "/" + service + path

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &LookupError{Kind: Unreachable, Service: service, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	logger.Debug(ctx).
		Str("method", method).
		Str("url", target).
		Msg("Calling downstream service")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LookupError{Kind: Unreachable, Service: service, URL: target, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LookupError{Kind: Unreachable, Service: service, URL: target, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LookupError{
			Kind:    RemoteRejected,
			Service: service,
			URL:     target,
			Status:  resp.StatusCode,
			Body:    raw,
		}
	}
	return raw, nil
}

func joinID(resourcePath, id string) string {
	if id == "" {
		return resourcePath
	}
	return strings.TrimSuffix(resourcePath, "/") + "/" + url.PathEscape(id)
}
