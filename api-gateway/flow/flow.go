package flow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/remote"
)

// Caller is the part of *remote.Client the flows use
type Caller interface {
	Do(ctx context.Context, method, service, path string, body []byte) ([]byte, error)
}

// StepError reports the first failing step of a flow
type StepError struct {
	Step   string
	Status int
	Body   json.RawMessage
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed with status %d: %v", e.Step, e.Status, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// step runs one downstream call and tags any failure with the step name.
// Rejections keep the upstream status and body. An unreachable service is a
// 503, a malformed body a 502.
func step(ctx context.Context, caller Caller, name, method, service, path string, body []byte) ([]byte, *StepError) {
	raw, err := caller.Do(ctx, method, service, path, body)
	if err == nil {
		return raw, nil
	}

	stepErr := &StepError{Step: name, Status: http.StatusBadGateway, Err: err}
	if lookupErr, ok := remote.AsLookupError(err); ok {
		switch lookupErr.Kind {
		case remote.RemoteRejected:
			stepErr.Status = lookupErr.Status
			if json.Valid(lookupErr.Body) {
				stepErr.Body = lookupErr.Body
			}
		case remote.Unreachable:
			stepErr.Status = http.StatusServiceUnavailable
		}
	}

	logger.Warn(ctx).
		Err(err).
		Str("step", name).
		Str("service", service).
		Int("status", stepErr.Status).
		Msg("Flow step failed")
	return nil, stepErr
}

// encode marshals the request body of step name. A value that cannot be
// encoded, such as a non-finite fee, fails the step with a 500.
func encode(ctx context.Context, name string, v any) ([]byte, *StepError) {
	body, err := json.Marshal(v)
	if err == nil {
		return body, nil
	}
	logger.Error(ctx).Err(err).Str("step", name).Msg("Failed to encode step request")
	return nil, &StepError{Step: name, Status: http.StatusInternalServerError, Err: fmt.Errorf("failed to encode request: %w", err)}
}

// respondStepError answers with the failing step, its status and body
func respondStepError(c *fiber.Ctx, err *StepError, completed map[string]json.RawMessage) error {
	body := fiber.Map{
		"failedStep": err.Step,
		"status":     err.Status,
		"error":      err.Err.Error(),
	}
	if len(err.Body) > 0 {
		body["body"] = err.Body
	}
	if len(completed) > 0 {
		body["completed"] = completed
	}
	return c.Status(err.Status).JSON(body)
}
