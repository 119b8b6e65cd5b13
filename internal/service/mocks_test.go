package service

import (
	"context"
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/store"
)

// MockAccountStore mocks the store.AccountStore interface.
type MockAccountStore struct {
	mock.Mock
}

func (m *MockAccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *MockAccountStore) GetAll(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]*domain.Account)
	return accounts, args.Error(1)
}

func (m *MockAccountStore) FindByUsername(
	ctx context.Context,
	username string,
) (*domain.Account, error) {
	args := m.Called(ctx, username)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *MockAccountStore) ValidateCredentials(
	ctx context.Context,
	username, password string,
) (*domain.Account, error) {
	args := m.Called(ctx, username, password)
	account, _ := args.Get(0).(*domain.Account)
	return account, args.Error(1)
}

func (m *MockAccountStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountStore) Update(ctx context.Context, account *domain.Account) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountStore) Delete(ctx context.Context, account *domain.Account) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

// WithTx hands the same mock back so transactional code paths exercise the
// expectations registered on it.
func (m *MockAccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return m
}

// MockMessageStore mocks the store.MessageStore interface.
type MockMessageStore struct {
	mock.Mock
}

func (m *MockMessageStore) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	args := m.Called(ctx, id)
	message, _ := args.Get(0).(*domain.Message)
	return message, args.Error(1)
}

func (m *MockMessageStore) GetAll(ctx context.Context) ([]*domain.Message, error) {
	args := m.Called(ctx)
	messages, _ := args.Get(0).([]*domain.Message)
	return messages, args.Error(1)
}

func (m *MockMessageStore) GetByOwnerID(
	ctx context.Context,
	ownerID int64,
) ([]*domain.Message, error) {
	args := m.Called(ctx, ownerID)
	messages, _ := args.Get(0).([]*domain.Message)
	return messages, args.Error(1)
}

func (m *MockMessageStore) Create(ctx context.Context, message *domain.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageStore) Update(ctx context.Context, message *domain.Message) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageStore) Delete(ctx context.Context, message *domain.Message) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return m
}

// testingT is the subset of *testing.T the helpers below need.
type testingT interface {
	require.TestingT
	Helper()
	Cleanup(func())
}

// newTxDB returns a stub *sql.DB whose transaction lifecycle is scripted
// with sqlmock. commit=true expects begin+commit, commit=false expects
// begin+rollback.
func newTxDB(t testingT, commit bool) *sql.DB {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	dbMock.ExpectBegin()
	if commit {
		dbMock.ExpectCommit()
	} else {
		dbMock.ExpectRollback()
	}

	return db
}
