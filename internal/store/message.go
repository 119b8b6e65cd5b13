package store

import (
	"context"
	"database/sql"

	"github.com/chirpd/chirp-api/internal/domain"
)

// MessageStore defines the interface for message data persistence.
//
// Semantics match AccountStore: absence is (nil, nil), medium failures come
// back as *StoreError.
type MessageStore interface {
	// GetByID retrieves a message by its surrogate key.
	// Returns (nil, nil) if no such message exists.
	GetByID(ctx context.Context, id int64) (*domain.Message, error)

	// GetAll retrieves every message. Order is not guaranteed.
	GetAll(ctx context.Context) ([]*domain.Message, error)

	// GetByOwnerID retrieves every message posted by the given account.
	// Returns an empty slice when the account has no messages.
	GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Message, error)

	// Create inserts the message and fills in its generated ID.
	// Returns ErrInvalidReference (wrapped) when the owner account does not
	// exist and a *StoreError when no ID can be obtained or the medium fails.
	Create(ctx context.Context, message *domain.Message) error

	// Update rewrites the text of the stored message.
	// The returned bool is true iff exactly one row was affected.
	Update(ctx context.Context, message *domain.Message) (bool, error)

	// Delete removes the message by its ID.
	// The returned bool is true iff exactly one row was affected.
	Delete(ctx context.Context, message *domain.Message) (bool, error)

	// WithTx returns a new MessageStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) MessageStore
}
