package auth

import "errors"

var (
	ErrMissingToken  = errors.New("missing bearer token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("token claims are incomplete")
	ErrEmptySecret   = errors.New("jwt secret cannot be empty")
)
