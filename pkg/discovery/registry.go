package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrServiceNotRegistered is returned for a service with no known instances.
var ErrServiceNotRegistered = errors.New("service not registered")

// Resolver turns a logical service name into a base URL.
type Resolver interface {
	ResolveBaseURL(ctx context.Context, serviceName string) (string, error)
}

// Registry is a static, configuration-backed Resolver. It is populated once
// at startup and only read afterwards.
type Registry struct {
	pools map[string]*RoundRobin
}

// NewRegistry builds a registry from service name to instance base URLs.
func NewRegistry(services map[string][]string) *Registry {
	pools := make(map[string]*RoundRobin, len(services))
	for name, instances := range services {
		cleaned := make([]string, 0, len(instances))
		for _, instance := range instances {
			instance = strings.TrimRight(strings.TrimSpace(instance), "/")
			if instance != "" {
				cleaned = append(cleaned, instance)
			}
		}
		pools[strings.ToLower(name)] = NewRoundRobin(cleaned)
	}
	return &Registry{pools: pools}
}

func (r *Registry) ResolveBaseURL(ctx context.Context, serviceName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pool, ok := r.pools[strings.ToLower(serviceName)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrServiceNotRegistered, serviceName)
	}

	instance := pool.Next()
	if instance == "" {
		return "", fmt.Errorf("%w: %s has no instances", ErrServiceNotRegistered, serviceName)
	}
	return instance, nil
}

// Services lists the registered service names in order.
func (r *Registry) Services() []string {
	names := make([]string, 0, len(r.pools))
	for name := range r.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pool exposes the balancer of one service for stats and health checks.
func (r *Registry) Pool(serviceName string) (*RoundRobin, bool) {
	pool, ok := r.pools[strings.ToLower(serviceName)]
	return pool, ok
}
