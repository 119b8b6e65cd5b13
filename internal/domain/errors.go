package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity fails validation.
	// Specific validation errors below wrap it so callers can match the
	// whole category with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")
)
