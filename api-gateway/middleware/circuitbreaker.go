package middleware

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
)

// CircuitState represents the state of a circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half-open"
)

// ErrCircuitOpen is returned by Call while the circuit rejects calls
var ErrCircuitOpen = errors.New("circuit breaker is open")

// closes again after this many successes in half-open
const halfOpenSuccesses = 3

// CircuitBreaker opens after maxFailures consecutive failures and tries
// again once timeout has passed
type CircuitBreaker struct {
	name            string
	maxFailures     int
	timeout         time.Duration
	state           CircuitState
	failures        int
	successCount    int
	lastFailureTime time.Time
	lastStateChange time.Time
	now             func() time.Time
	mu              sync.Mutex
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(name string, maxFailures int, timeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:            name,
		maxFailures:     maxFailures,
		timeout:         timeout,
		state:           StateClosed,
		lastStateChange: time.Now(),
		now:             time.Now,
	}
}

// Call executes fn unless the circuit is open, and records its outcome
func (cb *CircuitBreaker) Call(fn func() error) error {
	if cb.State() == StateOpen {
		return fmt.Errorf("%w for %s", ErrCircuitOpen, cb.name)
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.onFailure()
	} else {
		cb.onSuccess()
	}
	return err
}

// State returns the current state, moving an expired open circuit to half-open
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.lastStateChange) > cb.timeout {
		cb.setState(StateHalfOpen)
		cb.successCount = 0
		logger.Logger.Info().
			Str("circuit", cb.name).
			Msg("Circuit breaker transitioning to half-open")
	}
	return cb.state
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++
	cb.lastFailureTime = cb.now()

	switch {
	case cb.state == StateHalfOpen:
		cb.setState(StateOpen)
		logger.Logger.Warn().
			Str("circuit", cb.name).
			Msg("Circuit breaker reopened after half-open failure")
	case cb.failures >= cb.maxFailures && cb.state == StateClosed:
		cb.setState(StateOpen)
		logger.Logger.Error().
			Str("circuit", cb.name).
			Int("failures", cb.failures).
			Int("threshold", cb.maxFailures).
			Msg("Circuit breaker opened")
	}
}

func (cb *CircuitBreaker) onSuccess() {
	switch cb.state {
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= halfOpenSuccesses {
			cb.setState(StateClosed)
			cb.failures = 0
			cb.successCount = 0
			logger.Logger.Info().
				Str("circuit", cb.name).
				Msg("Circuit breaker closed after successful recovery")
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) setState(state CircuitState) {
	cb.state = state
	cb.lastStateChange = cb.now()
}

// CircuitStats is a snapshot of one breaker
type CircuitStats struct {
	Name            string       `json:"name"`
	State           CircuitState `json:"state"`
	Failures        int          `json:"failures"`
	MaxFailures     int          `json:"maxFailures"`
	LastFailureTime time.Time    `json:"lastFailureTime,omitzero"`
	LastStateChange time.Time    `json:"lastStateChange"`
}

// Stats returns circuit breaker statistics
func (cb *CircuitBreaker) Stats() CircuitStats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return CircuitStats{
		Name:            cb.name,
		State:           cb.state,
		Failures:        cb.failures,
		MaxFailures:     cb.maxFailures,
		LastFailureTime: cb.lastFailureTime,
		LastStateChange: cb.lastStateChange,
	}
}

// CircuitBreakerManager keeps one breaker per downstream service
type CircuitBreakerManager struct {
	maxFailures int
	timeout     time.Duration
	breakers    map[string]*CircuitBreaker
	mu          sync.Mutex
}

// NewCircuitBreakerManager creates a new manager
func NewCircuitBreakerManager(maxFailures int, timeout time.Duration) *CircuitBreakerManager {
	return &CircuitBreakerManager{
		maxFailures: maxFailures,
		timeout:     timeout,
		breakers:    make(map[string]*CircuitBreaker),
	}
}

// GetOrCreate gets or creates a circuit breaker for a service
func (m *CircuitBreakerManager) GetOrCreate(serviceName string) *CircuitBreaker {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cb, exists := m.breakers[serviceName]; exists {
		return cb
	}

	cb := NewCircuitBreaker(serviceName, m.maxFailures, m.timeout)
	m.breakers[serviceName] = cb

	logger.Logger.Info().
		Str("service", serviceName).
		Msg("Circuit breaker created")
	return cb
}

// AllStats returns stats for all circuit breakers
func (m *CircuitBreakerManager) AllStats() map[string]CircuitStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := make(map[string]CircuitStats, len(m.breakers))
	for name, cb := range m.breakers {
		stats[name] = cb.Stats()
	}
	return stats
}

// CircuitBreakerMiddleware guards relayed paths. A 5xx from downstream
// counts as a failure.
func CircuitBreakerMiddleware(manager *CircuitBreakerManager, resolve func(path string) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		serviceName := resolve(c.Path())
		if serviceName == "" {
			return c.Next()
		}

		cb := manager.GetOrCreate(serviceName)

		var responseErr error
		err := cb.Call(func() error {
			responseErr = c.Next()
			if status := c.Response().StatusCode(); status >= fiber.StatusInternalServerError {
				return fmt.Errorf("downstream service error: %d", status)
			}
			return nil
		})

		if errors.Is(err, ErrCircuitOpen) {
			logger.Warn(c.UserContext()).
				Str("service", serviceName).
				Str("path", c.Path()).
				Msg("Circuit breaker is open - request blocked")

			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":       "Service temporarily unavailable",
				"service":     serviceName,
				"retry_after": int(manager.timeout.Seconds()),
			})
		}

		return responseErr
	}
}
