package websocket

import "errors"

// Connection-related errors
var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrWriteTimeout     = errors.New("write timeout")
	ErrInvalidJSON      = errors.New("invalid JSON data")
)

// Registry-related errors
var (
	ErrNilConnection   = errors.New("connection cannot be nil")
	ErrEmptyCourseID   = errors.New("course ID cannot be empty")
	ErrNotRegistered   = errors.New("connection is not registered")
	ErrMissingIdentity = errors.New("connection has no authenticated user")
)
