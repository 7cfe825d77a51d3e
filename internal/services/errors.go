package services

import (
	"errors"
	"fmt"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"
)

var (
	// ErrValidation is returned for missing or malformed input (HTTP 400)
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is returned when the addressed record does not exist (HTTP 404)
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when the transition policy refuses a decision (HTTP 409)
	ErrInvalidTransition = models.ErrInvalidTransition
	// ErrConflict is returned when a unique value is already taken (HTTP 409)
	ErrConflict = errors.New("already exists")
	// ErrUnauthorized is returned for a missing, invalid or foreign token (HTTP 401/403)
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotConfigured is returned when an optional backend is switched off (HTTP 503)
	ErrNotConfigured = errors.New("not configured")
)

// validationError wraps ErrValidation with a client-safe reason
type validationError struct {
	reason string
}

func (e *validationError) Error() string { return e.reason }

func (e *validationError) Unwrap() error { return ErrValidation }

// Invalid builds an ErrValidation with a reason that may be shown to clients
func Invalid(format string, args ...any) error {
	return &validationError{reason: fmt.Sprintf(format, args...)}
}

// Reason returns the client-safe reason of a validation error, if any
func Reason(err error) (string, bool) {
	var ve *validationError
	if errors.As(err, &ve) {
		return ve.reason, true
	}
	return "", false
}

// storeErr translates repository sentinels into service errors and keeps the
// original chain for logging.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
