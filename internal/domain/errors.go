package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict")
	ErrInternal      = errors.New("internal error")

	// Business-rule errors. They describe a caller or data problem and are
	// never reported as ErrInternal.
	ErrUnsupportedPartner       = errors.New("unsupported partner")
	ErrInvalidPlanConfiguration = errors.New("invalid plan configuration")
	ErrPlanNotConfigured        = errors.New("plan not configured for partner")

	// ErrUpstream reports a failed call to the culops API.
	ErrUpstream = errors.New("upstream unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ServerError is returned by stores for any failure reported by the database
// driver. The message names the attempted operation and its key identifiers.
// The driver error is kept for logging only: Unwrap yields ErrInternal, so
// callers cannot depend on driver-specific types.
type ServerError struct {
	Op    string
	cause error
}

// NewServerError wraps cause into a ServerError describing op.
func NewServerError(cause error, op string) *ServerError {
	return &ServerError{Op: op, cause: cause}
}

func (e *ServerError) Error() string {
	return "server error: " + e.Op
}

func (e *ServerError) Unwrap() error { return ErrInternal }

// Cause returns the underlying driver error for logging.
func (e *ServerError) Cause() error { return e.cause }
