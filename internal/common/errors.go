package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error taxonomy. Handlers map these to HTTP status codes with
// HTTPStatus; anything unrecognized is treated as an internal error and
// logged rather than detailed to the caller.

// ValidationError carries per-field failure messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// FieldError is a convenience for a single-field validation failure.
func FieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrDuplicateSignup  = errors.New("duplicate signup")
	ErrCapacityExceeded = errors.New("position capacity exceeded")
	ErrAlreadyAssigned  = errors.New("signup already assigned")
	ErrNotAssigned      = errors.New("signup not assigned")
	ErrEventFinalized   = errors.New("event staffing is finalized")
)

// HTTPStatus resolves a domain error to its response status code.
func HTTPStatus(err error) int {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateSignup),
		errors.Is(err, ErrCapacityExceeded),
		errors.Is(err, ErrAlreadyAssigned),
		errors.Is(err, ErrNotAssigned),
		errors.Is(err, ErrEventFinalized):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FieldMessages extracts the per-field detail map when err wraps a
// ValidationError, nil otherwise.
func FieldMessages(err error) map[string]string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	return nil
}
