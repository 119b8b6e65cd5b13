package store

import (
	"context"
	"database/sql"

	"github.com/chirpd/chirp-api/internal/domain"
)

// AccountStore defines the interface for account data persistence.
//
// Lookup operations report absence by returning a nil account and a nil
// error; they never fail just because a record is missing. Medium failures
// are wrapped in a *StoreError.
type AccountStore interface {
	// GetByID retrieves an account by its surrogate key.
	// Returns (nil, nil) if no such account exists.
	GetByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetAll retrieves every account. Order is not guaranteed.
	GetAll(ctx context.Context) ([]*domain.Account, error)

	// FindByUsername retrieves an account by its exact username.
	// Returns (nil, nil) if no such account exists.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)

	// ValidateCredentials looks up the account by username and compares the
	// stored password with the given one by exact equality. Any mismatch,
	// unknown username or wrong password alike, yields (nil, nil); the two
	// cases are indistinguishable to the caller.
	ValidateCredentials(ctx context.Context, username, password string) (*domain.Account, error)

	// UsernameExists reports whether an account with the given username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)

	// Create inserts the account and fills in its generated ID.
	// Returns ErrUsernameExists (wrapped) when the username is taken and a
	// *StoreError when no ID can be obtained or the medium fails.
	Create(ctx context.Context, account *domain.Account) error

	// Update rewrites the username and password of the stored account.
	// The returned bool is true iff exactly one row was affected.
	Update(ctx context.Context, account *domain.Account) (bool, error)

	// Delete removes the account by its ID.
	// The returned bool is true iff exactly one row was affected.
	Delete(ctx context.Context, account *domain.Account) (bool, error)

	// WithTx returns a new AccountStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) AccountStore
}
