package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrTokenExpired    = errors.New("access token expired")
	ErrUpstream        = errors.New("upstream request failed")
)
