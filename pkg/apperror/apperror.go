package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindInvalidKeyFormat Kind = "invalid_key_format"
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
)

// Error is the single tagged error used by the domain services.
type Error struct {
	Kind    Kind
	Entity  string
	Key     string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports that entityType has no row for key.
func NotFound(entityType string, key any) *Error {
	k := fmt.Sprint(key)
	return &Error{
		Kind:    KindNotFound,
		Entity:  entityType,
		Key:     k,
		Message: fmt.Sprintf("%s with id: %s not found", entityType, k),
	}
}

// InvalidKeyFormat reports a malformed composite key.
func InvalidKeyFormat(format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidKeyFormat,
		Message: "invalid key format: " + fmt.Sprintf(format, args...),
	}
}

// Validation wraps a request validation failure.
func Validation(err error) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Err: err}
}

// Validationf builds a validation error from a message.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(entityType string, err error) *Error {
	return &Error{Kind: KindConflict, Entity: entityType, Message: entityType + " already exists", Err: err}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}

func IsInvalidKeyFormat(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindInvalidKeyFormat
}

// HTTPStatus maps a kind to its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidKeyFormat, KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
