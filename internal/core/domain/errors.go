package domain

import (
	"errors"

	"eventhub/internal/pkg/validation"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Auth errors
var (
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUserAlreadyExists       = errors.New("user already exists")
	ErrInvalidVerifyToken      = errors.New("invalid or expired token")
	ErrRefreshTokenInvalid     = errors.New("refresh token invalid or expired")
	ErrSigningConfigIncomplete = errors.New("token signing configuration incomplete")
)

// Role and event errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRoleNotConfigured = errors.New("required role not found in database")
	ErrEventNotFound     = errors.New("event not found")
	ErrEventTypeInvalid  = errors.New("invalid event type id")
	ErrNoEvents          = errors.New("no events found")
)

// ValidationError carries per-field messages for a malformed request
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError wraps field errors; returns nil when there are none
func NewValidationError(fields []validation.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// AsValidationError extracts a *ValidationError from an error chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
