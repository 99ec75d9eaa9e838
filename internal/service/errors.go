package service

import "errors"

// Identity errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("email already in use")
	ErrWeakPassword       = errors.New("password too weak")
)

// Store errors
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrTransport        = errors.New("backend unavailable")
)

// Validation errors. These are resolved locally, before any backend call.
var (
	ErrEmptyTitle = errors.New("title required")
)
