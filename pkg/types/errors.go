package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidUserID    = errors.New("user ID must be 1-64 characters, alphanumeric + underscore/hyphen only")
	ErrEmptyContent     = errors.New("message content cannot be empty")
	ErrContentTooLong   = errors.New("message content exceeds 4000 characters")
	ErrInvalidCourseID  = errors.New("course ID is required")
	ErrInvalidKind      = errors.New("invalid notification kind")
	ErrInvalidRecipient = errors.New("notification recipient is required")
)

// Error codes surfaced to clients.
const (
	CodeValidation    = "validation_error"
	CodeRateLimited   = "rate_limited"
	CodeUnauthorized  = "authorization_error"
	CodePersistence   = "persistence_error"
	CodeNotFound      = "not_found"
	CodeUnknownEvent  = "unknown_event"
	CodeInvalidFrame  = "invalid_frame"
	CodeInternalError = "internal_error"
)

// ValidationError rejects malformed input. It is reported to the caller only.
type ValidationError struct {
	Code string
	Err  error
}

func NewValidationError(err error) *ValidationError {
	return &ValidationError{Code: CodeValidation, Err: err}
}

func (e *ValidationError) Error() string { return fmt.Sprintf("validation failed: %v", e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

// AuthorizationError rejects an operation on a resource the caller does not own.
type AuthorizationError struct {
	Reason string
}

func NewAuthorizationError(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *AuthorizationError) Error() string { return "not authorized: " + e.Reason }

// PersistenceError wraps a store failure that aborted an operation.
type PersistenceError struct {
	Op  string
	Err error
}

func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("failed to %s: %v", e.Op, e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuthorization reports whether err carries an *AuthorizationError.
func IsAuthorization(err error) bool {
	var a *AuthorizationError
	return errors.As(err, &a)
}

// IsPersistence reports whether err carries a *PersistenceError.
func IsPersistence(err error) bool {
	var p *PersistenceError
	return errors.As(err, &p)
}

// ErrorCode maps an error onto the code sent in realtime error events.
func ErrorCode(err error) string {
	var v *ValidationError
	switch {
	case errors.As(err, &v):
		return v.Code
	case IsAuthorization(err):
		return CodeUnauthorized
	case IsPersistence(err):
		return CodePersistence
	default:
		return CodeInternalError
	}
}
