// Package common defines shared constants and sentinel errors used across
// AuthKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorConfiguration marks a required configuration value that is absent.
	// Issuance fails loudly on it instead of degrading silently.
	ErrorConfiguration = errors.New("missing configuration")

	// ErrorDelivery marks a notification channel failure. The OTP is already
	// committed when delivery runs, so the token survives this error.
	ErrorDelivery = errors.New("delivery failed")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
)
