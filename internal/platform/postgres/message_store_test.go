package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/store"
)

func newMessageStoreWithMock(t *testing.T) (*MessageStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return NewMessageStore(db, nil), mock
}

func messageRows(messages ...*domain.Message) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"message_id", "posted_by", "message_text", "time_posted_epoch"})
	for _, m := range messages {
		rows.AddRow(m.ID, m.OwnerID, m.Text, m.PostedAtEpoch)
	}
	return rows
}

func TestMessageStoreGetByID(t *testing.T) {
	t.Run("returns the matching message", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE message_id = $1")).
			WithArgs(int64(5)).
			WillReturnRows(messageRows(
				&domain.Message{ID: 5, OwnerID: 1, Text: "hi", PostedAtEpoch: 1000},
			))

		message, err := s.GetByID(context.Background(), 5)
		require.NoError(t, err)
		require.NotNil(t, message)
		assert.Equal(t, int64(5), message.ID)
		assert.Equal(t, int64(1), message.OwnerID)
		assert.Equal(t, "hi", message.Text)
		assert.Equal(t, int64(1000), message.PostedAtEpoch)
	})

	t.Run("absence is not an error", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE message_id = $1")).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		message, err := s.GetByID(context.Background(), 99)
		assert.NoError(t, err)
		assert.Nil(t, message)
	})

	t.Run("medium failure is wrapped as a store error", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE message_id = $1")).
			WithArgs(int64(5)).
			WillReturnError(errors.New("connection reset"))

		message, err := s.GetByID(context.Background(), 5)
		assert.Nil(t, message)
		require.Error(t, err)
		assert.True(t, store.IsStoreError(err))
	})
}

func TestMessageStoreGetAll(t *testing.T) {
	s, mock := newMessageStoreWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT message_id, posted_by, message_text, time_posted_epoch")).
		WillReturnRows(messageRows(
			&domain.Message{ID: 1, OwnerID: 1, Text: "first", PostedAtEpoch: 1000},
			&domain.Message{ID: 2, OwnerID: 2, Text: "second", PostedAtEpoch: 2000},
		))

	messages, err := s.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)
}

func TestMessageStoreGetByOwnerID(t *testing.T) {
	t.Run("messages for the owner", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE posted_by = $1")).
			WithArgs(int64(1)).
			WillReturnRows(messageRows(
				&domain.Message{ID: 1, OwnerID: 1, Text: "hi", PostedAtEpoch: 1000},
			))

		messages, err := s.GetByOwnerID(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, int64(1), messages[0].OwnerID)
	})

	t.Run("owner without messages gets an empty slice", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("WHERE posted_by = $1")).
			WithArgs(int64(42)).
			WillReturnRows(messageRows())

		messages, err := s.GetByOwnerID(context.Background(), 42)
		require.NoError(t, err)
		assert.NotNil(t, messages)
		assert.Empty(t, messages)
	})
}

func TestMessageStoreCreate(t *testing.T) {
	t.Run("fills in the generated ID", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO message")).
			WithArgs(int64(1), "hi", int64(1000)).
			WillReturnRows(sqlmock.NewRows([]string{"message_id"}).AddRow(9))

		message := &domain.Message{OwnerID: 1, Text: "hi", PostedAtEpoch: 1000}
		require.NoError(t, s.Create(context.Background(), message))
		assert.Equal(t, int64(9), message.ID)
	})

	t.Run("missing owner maps to the reference sentinel", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO message")).
			WithArgs(int64(42), "hi", int64(1000)).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

		err := s.Create(context.Background(), &domain.Message{OwnerID: 42, Text: "hi", PostedAtEpoch: 1000})
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrInvalidReference)
	})

	t.Run("medium failure is a store error", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO message")).
			WithArgs(int64(1), "hi", int64(1000)).
			WillReturnError(errors.New("disk full"))

		err := s.Create(context.Background(), &domain.Message{OwnerID: 1, Text: "hi", PostedAtEpoch: 1000})
		require.Error(t, err)
		assert.True(t, store.IsStoreError(err))
	})
}

func TestMessageStoreUpdate(t *testing.T) {
	message := &domain.Message{ID: 5, OwnerID: 1, Text: "edited", PostedAtEpoch: 1000}

	t.Run("rewrites only the text column", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectExec(regexp.QuoteMeta("SET message_text = $1")).
			WithArgs("edited", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := s.Update(context.Background(), message)
		require.NoError(t, err)
		assert.True(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row affected", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectExec(regexp.QuoteMeta("SET message_text = $1")).
			WithArgs("edited", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := s.Update(context.Background(), message)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestMessageStoreDelete(t *testing.T) {
	message := &domain.Message{ID: 5, OwnerID: 1, Text: "hi", PostedAtEpoch: 1000}

	t.Run("one row affected", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM message")).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := s.Delete(context.Background(), message)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("no row affected", func(t *testing.T) {
		s, mock := newMessageStoreWithMock(t)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM message")).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := s.Delete(context.Background(), message)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
