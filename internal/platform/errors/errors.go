package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("already exists")
	ErrCorruptState  = errors.New("corrupt persisted state")
	ErrNoToken       = errors.New("no auth token")
	ErrTokenExpired  = errors.New("auth token expired")
	ErrNotConfigured = errors.New("not configured")
)
