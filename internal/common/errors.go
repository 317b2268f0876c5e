// Package common defines shared constants and sentinel errors used across
// client and server layers of userboarding. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Startup/configuration errors.
	ErrorMisconfigured = errors.New("auth config invalid")

	// Auth errors (invalid, mis-signed or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
