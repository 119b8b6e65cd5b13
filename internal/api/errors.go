package api

import (
	"errors"
	"net/http"

	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/service"
)

// MapErrorToStatusCode maps core errors to appropriate HTTP status codes
// based on the error kind. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authorization errors
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrMessageNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrAccountHasMessages):
		return http.StatusConflict

	// Validation errors
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: storage or unknown failure
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message based
// on the error kind. Validation and conflict sentinels carry no internal
// detail, so their own text is safe to expose; everything else collapses to
// a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrNotOwner):
		return "You do not own this message"

	case errors.Is(err, service.ErrMessageNotFound):
		return "Message not found"

	case errors.Is(err, service.ErrUsernameTaken):
		return "Username is already taken"

	case errors.Is(err, service.ErrAccountHasMessages):
		return "Account still owns messages"

	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}
