package service

import (
	"errors"
	"fmt"

	"github.com/chirpd/chirp-api/internal/domain"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is(); anything that is not one of these
// sentinels (and not a domain validation error) is a wrapped infrastructure
// failure carrying its cause.
//
// Error handling principles:
// 1. Business-rule violations surface as the sentinels below or as
//    domain validation errors, never wrapped in a service error type.
// 2. Storage failures are wrapped in AccountServiceError/MessageServiceError
//    so the original cause stays reachable via errors.As/Unwrap.
// 3. The API layer maps each kind to an HTTP status code; nothing is
//    downgraded inside the core.
var (
	// ErrUsernameTaken indicates a registration or update would duplicate an
	// existing username.
	ErrUsernameTaken = errors.New("username is already taken")

	// ErrMessageNotFound indicates the referenced message does not exist.
	ErrMessageNotFound = errors.New("message not found")

	// ErrNotOwner indicates the acting account does not own the target
	// message.
	ErrNotOwner = errors.New("account not authorized to modify this message")

	// ErrAccountHasMessages indicates an account cannot be deleted because
	// messages still reference it.
	ErrAccountHasMessages = errors.New("account still owns messages")

	// ErrOwnerMissing indicates a message was submitted without a resolved
	// owner account. It is a validation failure: the caller can correct the
	// input and retry.
	ErrOwnerMissing = fmt.Errorf(
		"%w: account must exist when posting a new message",
		domain.ErrValidation,
	)

	// ErrMissingAccountID indicates a delete was requested for an account
	// whose surrogate key was never assigned.
	ErrMissingAccountID = fmt.Errorf("%w: account ID must be set", domain.ErrValidation)
)

// AccountServiceError wraps storage failures from the account service with
// the operation that hit them.
type AccountServiceError struct {
	Operation string // The operation that failed (e.g., "create_account")
	Message   string // Human-readable description
	Err       error  // Underlying cause
}

// Error implements the error interface for AccountServiceError.
func (e *AccountServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("account service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("account service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *AccountServiceError) Unwrap() error {
	return e.Err
}

// NewAccountServiceError wraps err with operation context. Service and
// domain sentinels pass through untouched so callers can keep matching them
// with errors.Is.
func NewAccountServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrAccountHasMessages) ||
		errors.Is(err, domain.ErrValidation) {
		return err
	}
	return &AccountServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// MessageServiceError wraps storage failures from the message service with
// the operation that hit them.
type MessageServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for MessageServiceError.
func (e *MessageServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("message service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("message service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MessageServiceError) Unwrap() error {
	return e.Err
}

// NewMessageServiceError wraps err with operation context, passing service
// and domain sentinels through untouched.
func NewMessageServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrMessageNotFound) ||
		errors.Is(err, ErrNotOwner) ||
		errors.Is(err, domain.ErrValidation) {
		return err
	}
	return &MessageServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
