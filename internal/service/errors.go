package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrNotFound           = errors.New("medicine not found")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// Validation failure kinds.
const (
	KindRequired  = "required"
	KindBadDate   = "bad_date"
	KindNotNumber = "not_number"
	KindNegative  = "negative"
	KindTooLong   = "too_long"
)

// ValidationError reports the first form field that failed to parse.
type ValidationError struct {
	Field  string
	Kind   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Message is the user-facing form of the error.
func (e *ValidationError) Message() string {
	return fmt.Sprintf("Invalid %s: %s.", e.Field, e.Reason)
}

func newValidationError(field, kind, reason string) *ValidationError {
	return &ValidationError{Field: field, Kind: kind, Reason: reason}
}
