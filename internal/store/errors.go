package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., an account with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrUsernameExists indicates that an account with the given username
	// already exists. It wraps ErrDuplicate.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrInvalidReference is returned when an operation references an entity
	// that does not exist, such as inserting a message whose owner account
	// is gone (a foreign key violation at the medium level).
	ErrInvalidReference = errors.New("referenced entity does not exist")

	// ErrNoIDObtained is returned when an insert succeeds but the medium
	// does not hand back a generated key.
	ErrNoIDObtained = errors.New("no generated ID obtained")
)

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError wraps a failure of the persistent medium with the entity and
// operation that hit it. It is the storage-failure kind of the error
// taxonomy: infrastructure trouble, distinct from any business-rule error.
type StoreError struct {
	Entity    string // The entity type (e.g., "account", "message")
	Operation string // The operation that failed (e.g., "create", "update")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// IsStoreError reports whether the error chain contains a StoreError,
// i.e. whether the failure came from the persistent medium rather than
// from a business rule.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}
