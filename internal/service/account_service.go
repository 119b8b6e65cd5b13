package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/store"
)

// AccountService provides account-related operations: registration,
// credential checks, and pass-through reads and writes.
//
// Lookup operations report absence as (nil, nil) rather than as an error;
// callers branch on the nil account. This asymmetry with MessageService is
// deliberate: the transport layer treats a missing account as a condition to
// branch on, not a hard failure.
type AccountService interface {
	// CreateAccount validates and registers a new account, returning it with
	// its assigned ID. Fails with a domain validation error for a blank or
	// short credential and with ErrUsernameTaken for a duplicate username.
	CreateAccount(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// ValidateLogin checks the candidate's credentials. A mismatch yields
	// (nil, nil), never an error, without distinguishing unknown username
	// from wrong password.
	ValidateLogin(ctx context.Context, candidate *domain.Account) (*domain.Account, error)

	// GetAccountByID retrieves an account by ID, (nil, nil) when absent.
	GetAccountByID(ctx context.Context, id int64) (*domain.Account, error)

	// GetAllAccounts retrieves every account.
	GetAllAccounts(ctx context.Context) ([]*domain.Account, error)

	// FindAccountByUsername retrieves an account by username, (nil, nil)
	// when absent.
	FindAccountByUsername(ctx context.Context, username string) (*domain.Account, error)

	// UpdateAccount rewrites the stored account, reporting whether exactly
	// one row was affected.
	UpdateAccount(ctx context.Context, account *domain.Account) (bool, error)

	// DeleteAccount removes the account. Fails with ErrMissingAccountID when
	// the ID was never assigned and with ErrAccountHasMessages while
	// messages still reference the account.
	DeleteAccount(ctx context.Context, account *domain.Account) (bool, error)

	// AccountExists reports whether an account with the given ID exists.
	AccountExists(ctx context.Context, id int64) (bool, error)
}

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	accountStore store.AccountStore
	db           *sql.DB
	logger       *slog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accountStore store.AccountStore,
	db *sql.DB,
	logger *slog.Logger,
) AccountService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountServiceImpl{
		accountStore: accountStore,
		db:           db,
		logger:       logger.With("component", "account_service"),
	}
}

// CreateAccount validates and registers a new account.
// The uniqueness check and the insert run inside one transaction, and a
// unique-constraint violation from the medium is converted to
// ErrUsernameTaken, so a concurrent duplicate registration cannot slip past
// the check.
func (s *AccountServiceImpl) CreateAccount(
	ctx context.Context,
	account *domain.Account,
) (*domain.Account, error) {
	if err := account.Validate(); err != nil {
		s.logger.Debug("account validation failed",
			"error", err,
			"username", account.Username)
		return nil, err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.accountStore.WithTx(tx)

		exists, err := txStore.UsernameExists(ctx, account.Username)
		if err != nil {
			s.logger.Error("failed to check username uniqueness",
				"error", err,
				"username", account.Username)
			return NewAccountServiceError("create_account", "failed to check username", err)
		}
		if exists {
			return ErrUsernameTaken
		}

		if err := txStore.Create(ctx, account); err != nil {
			// The unique constraint is the backstop for registrations racing
			// past the existence check above.
			if store.IsDuplicateError(err) {
				return ErrUsernameTaken
			}
			s.logger.Error("failed to insert account",
				"error", err,
				"username", account.Username)
			return NewAccountServiceError("create_account", "failed to insert account", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created successfully",
		"account_id", account.ID,
		"username", account.Username)
	return account, nil
}

// ValidateLogin checks the candidate's credentials against the store.
func (s *AccountServiceImpl) ValidateLogin(
	ctx context.Context,
	candidate *domain.Account,
) (*domain.Account, error) {
	account, err := s.accountStore.ValidateCredentials(
		ctx,
		candidate.Username,
		candidate.Password,
	)
	if err != nil {
		s.logger.Error("failed to validate login",
			"error", err,
			"username", candidate.Username)
		return nil, NewAccountServiceError("validate_login", "failed to validate credentials", err)
	}

	s.logger.Debug("login validation finished",
		"username", candidate.Username,
		"valid", account != nil)
	return account, nil
}

// GetAccountByID retrieves an account by its ID.
func (s *AccountServiceImpl) GetAccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to retrieve account",
			"error", err,
			"account_id", id)
		return nil, NewAccountServiceError("get_account", "failed to retrieve account", err)
	}
	return account, nil
}

// GetAllAccounts retrieves every account.
func (s *AccountServiceImpl) GetAllAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := s.accountStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve accounts", "error", err)
		return nil, NewAccountServiceError("get_all_accounts", "failed to retrieve accounts", err)
	}

	s.logger.Debug("retrieved accounts", "count", len(accounts))
	return accounts, nil
}

// FindAccountByUsername retrieves an account by its username.
func (s *AccountServiceImpl) FindAccountByUsername(
	ctx context.Context,
	username string,
) (*domain.Account, error) {
	account, err := s.accountStore.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Error("failed to find account by username",
			"error", err,
			"username", username)
		return nil, NewAccountServiceError(
			"find_account_by_username",
			"failed to find account",
			err,
		)
	}
	return account, nil
}

// UpdateAccount rewrites the stored account.
func (s *AccountServiceImpl) UpdateAccount(
	ctx context.Context,
	account *domain.Account,
) (bool, error) {
	updated, err := s.accountStore.Update(ctx, account)
	if err != nil {
		if store.IsDuplicateError(err) {
			return false, ErrUsernameTaken
		}
		s.logger.Error("failed to update account",
			"error", err,
			"account_id", account.ID)
		return false, NewAccountServiceError("update_account", "failed to update account", err)
	}

	s.logger.Info("account update finished",
		"account_id", account.ID,
		"updated", updated)
	return updated, nil
}

// DeleteAccount removes the account by its ID.
func (s *AccountServiceImpl) DeleteAccount(
	ctx context.Context,
	account *domain.Account,
) (bool, error) {
	if account.ID == 0 {
		return false, ErrMissingAccountID
	}

	deleted, err := s.accountStore.Delete(ctx, account)
	if err != nil {
		if errors.Is(err, store.ErrInvalidReference) {
			s.logger.Debug("refusing to delete account that still owns messages",
				"account_id", account.ID)
			return false, ErrAccountHasMessages
		}
		s.logger.Error("failed to delete account",
			"error", err,
			"account_id", account.ID)
		return false, NewAccountServiceError("delete_account", "failed to delete account", err)
	}

	s.logger.Info("account delete finished",
		"account_id", account.ID,
		"deleted", deleted)
	return deleted, nil
}

// AccountExists reports whether an account with the given ID exists.
func (s *AccountServiceImpl) AccountExists(ctx context.Context, id int64) (bool, error) {
	account, err := s.GetAccountByID(ctx, id)
	if err != nil {
		return false, err
	}
	return account != nil, nil
}
