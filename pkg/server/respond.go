package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/apperror"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/logger"
	"github.com/Dantesiio/ecommerce-microservice-backend-app/pkg/remote"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorBody is the payload of every non-2xx answer
type ErrorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// StatusFor maps an error onto its HTTP status
func StatusFor(err error) int {
	if kind, ok := apperror.KindOf(err); ok {
		return kind.HTTPStatus()
	}

	if lookupErr, ok := remote.AsLookupError(err); ok {
		switch {
		case lookupErr.Kind == remote.Unreachable:
			return http.StatusServiceUnavailable
		case lookupErr.Kind == remote.RemoteRejected && lookupErr.Status == http.StatusNotFound:
			return http.StatusNotFound
		default:
			return http.StatusBadGateway
		}
	}

	return http.StatusInternalServerError
}

// WriteError logs err and answers with the mapped status
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	event := logger.Warn(r.Context())
	if status >= http.StatusInternalServerError {
		event = logger.Error(r.Context())
	}
	event.
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Request failed")

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}

	RespondJSON(w, status, newErrorBody(status, message))
}

func newErrorBody(status int, message string) ErrorBody {
	return ErrorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
}

// DecodeJSON reads the request body into dst and validates its struct tags
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var keyErr *apperror.Error
		if errors.As(err, &keyErr) {
			return keyErr
		}
		return apperror.Validationf("invalid request body: %v", err)
	}
	return Validate(dst)
}

// Validate runs the validator over v
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return apperror.Validation(fmt.Errorf("field %s failed on %s", fe.Namespace(), fe.Tag()))
		}
		return apperror.Validation(err)
	}
	return nil
}

// PathInt reads a numeric mux path variable
func PathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return 0, apperror.Validationf("%s %q is not a valid id", name, raw)
	}
	return id, nil
}

// TargetID picks the row a save addresses: the path variable when the route
// has one, the body id on PUT, or 0 for a create.
func TargetID(r *http.Request, name string, bodyID int) (int, error) {
	if _, ok := mux.Vars(r)[name]; ok {
		return PathInt(r, name)
	}
	if r.Method == http.MethodPut {
		if bodyID <= 0 {
			return 0, apperror.Validationf("%s is required", name)
		}
		return bodyID, nil
	}
	return 0, nil
}
