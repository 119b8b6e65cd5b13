package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/platform/logger"
	"github.com/chirpd/chirp-api/internal/store"
)

// AccountStore implements the store.AccountStore interface using a
// PostgreSQL database as the storage backend.
type AccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAccountStore creates a new PostgreSQL implementation of the
// AccountStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewAccountStore(db store.DBTX, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure AccountStore implements store.AccountStore interface
var _ store.AccountStore = (*AccountStore)(nil)

// WithTx implements store.AccountStore.WithTx
func (s *AccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &AccountStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByID implements store.AccountStore.GetByID
// Absence of the account is not an error: it returns (nil, nil).
func (s *AccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT account_id, username, password
		FROM account
		WHERE account_id = $1
	`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Username,
		&account.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.Int64("account_id", id))
			return nil, nil
		}
		log.Error("failed to get account by ID",
			slog.String("error", err.Error()),
			slog.Int64("account_id", id))
		return nil, store.NewStoreError("account", "get_by_id", "query failed", err)
	}

	return &account, nil
}

// GetAll implements store.AccountStore.GetAll
func (s *AccountStore) GetAll(ctx context.Context) ([]*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT account_id, username, password
		FROM account
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query all accounts", slog.String("error", err.Error()))
		return nil, store.NewStoreError("account", "get_all", "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var accounts []*domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(&account.ID, &account.Username, &account.Password); err != nil {
			log.Error("failed to scan account row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("account", "get_all", "row scan failed", err)
		}
		accounts = append(accounts, &account)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("account", "get_all", "row iteration failed", err)
	}

	if accounts == nil {
		accounts = []*domain.Account{}
	}

	return accounts, nil
}

// FindByUsername implements store.AccountStore.FindByUsername
// Absence of the account is not an error: it returns (nil, nil).
func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1
	`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found by username", slog.String("username", username))
			return nil, nil
		}
		log.Error("failed to find account by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, store.NewStoreError("account", "find_by_username", "query failed", err)
	}

	return &account, nil
}

// ValidateCredentials implements store.AccountStore.ValidateCredentials
// The stored password is compared by exact equality; any mismatch, whether
// unknown username or wrong password, yields (nil, nil).
func (s *AccountStore) ValidateCredentials(
	ctx context.Context,
	username, password string,
) (*domain.Account, error) {
	account, err := s.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil || account.Password != password {
		return nil, nil
	}
	return account, nil
}

// UsernameExists implements store.AccountStore.UsernameExists
func (s *AccountStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM account
		WHERE username = $1
	`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		log.Error("failed to check username existence",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return false, store.NewStoreError("account", "username_exists", "query failed", err)
	}

	return count > 0, nil
}

// Create implements store.AccountStore.Create
// It inserts the account and fills in the generated surrogate key.
// Returns store.ErrUsernameExists (wrapped) on a unique constraint violation
// and a *store.StoreError on any other medium failure.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id
	`

	err := s.db.QueryRowContext(ctx, query, account.Username, account.Password).
		Scan(&account.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate username on account creation",
				slog.String("username", account.Username))
			return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("account insert returned no generated key",
				slog.String("username", account.Username))
			return store.NewStoreError("account", "create", "insert failed", store.ErrNoIDObtained)
		}
		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.String("username", account.Username))
		return store.NewStoreError("account", "create", "insert failed", err)
	}

	log.Info("account created",
		slog.Int64("account_id", account.ID),
		slog.String("username", account.Username))
	return nil
}

// Update implements store.AccountStore.Update
// The returned bool is true iff exactly one row was affected.
func (s *AccountStore) Update(ctx context.Context, account *domain.Account) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE account
		SET username = $1, password = $2
		WHERE account_id = $3
	`

	result, err := s.db.ExecContext(ctx, query, account.Username, account.Password, account.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return false, fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
		}
		log.Error("failed to update account",
			slog.String("error", err.Error()),
			slog.Int64("account_id", account.ID))
		return false, store.NewStoreError("account", "update", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("account_id", account.ID))
		return false, store.NewStoreError("account", "update", "rows affected unavailable", err)
	}

	return rows == 1, nil
}

// Delete implements store.AccountStore.Delete
// The returned bool is true iff exactly one row was affected.
func (s *AccountStore) Delete(ctx context.Context, account *domain.Account) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM account
		WHERE account_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, account.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			// Messages reference their owner without ON DELETE CASCADE, so an
			// account cannot be removed while it still owns messages.
			log.Debug("account still owns messages",
				slog.Int64("account_id", account.ID))
			return false, fmt.Errorf("%w: account still owns messages: %v",
				store.ErrInvalidReference, err)
		}
		log.Error("failed to delete account",
			slog.String("error", err.Error()),
			slog.Int64("account_id", account.ID))
		return false, store.NewStoreError("account", "delete", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("account_id", account.ID))
		return false, store.NewStoreError("account", "delete", "rows affected unavailable", err)
	}

	return rows == 1, nil
}
