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

// MessageStore implements the store.MessageStore interface using a
// PostgreSQL database as the storage backend.
type MessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewMessageStore creates a new PostgreSQL implementation of the
// MessageStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewMessageStore(db store.DBTX, logger *slog.Logger) *MessageStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &MessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

// Ensure MessageStore implements store.MessageStore interface
var _ store.MessageStore = (*MessageStore)(nil)

// WithTx implements store.MessageStore.WithTx
func (s *MessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return &MessageStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetByID implements store.MessageStore.GetByID
// Absence of the message is not an error: it returns (nil, nil).
func (s *MessageStore) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE message_id = $1
	`

	var message domain.Message
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&message.ID,
		&message.OwnerID,
		&message.Text,
		&message.PostedAtEpoch,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("message not found", slog.Int64("message_id", id))
			return nil, nil
		}
		log.Error("failed to get message by ID",
			slog.String("error", err.Error()),
			slog.Int64("message_id", id))
		return nil, store.NewStoreError("message", "get_by_id", "query failed", err)
	}

	return &message, nil
}

// GetAll implements store.MessageStore.GetAll
func (s *MessageStore) GetAll(ctx context.Context) ([]*domain.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
	`
	return s.queryMessages(ctx, "get_all", query)
}

// GetByOwnerID implements store.MessageStore.GetByOwnerID
func (s *MessageStore) GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Message, error) {
	query := `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE posted_by = $1
	`
	return s.queryMessages(ctx, "get_by_owner_id", query, ownerID)
}

// queryMessages runs a multi-row message query and scans the results.
func (s *MessageStore) queryMessages(
	ctx context.Context,
	operation, query string,
	args ...any,
) ([]*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query messages",
			slog.String("error", err.Error()),
			slog.String("operation", operation))
		return nil, store.NewStoreError("message", operation, "query failed", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var messages []*domain.Message
	for rows.Next() {
		var message domain.Message
		err := rows.Scan(
			&message.ID,
			&message.OwnerID,
			&message.Text,
			&message.PostedAtEpoch,
		)
		if err != nil {
			log.Error("failed to scan message row",
				slog.String("error", err.Error()),
				slog.String("operation", operation))
			return nil, store.NewStoreError("message", operation, "row scan failed", err)
		}
		messages = append(messages, &message)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()),
			slog.String("operation", operation))
		return nil, store.NewStoreError("message", operation, "row iteration failed", err)
	}

	if messages == nil {
		messages = []*domain.Message{}
	}

	return messages, nil
}

// Create implements store.MessageStore.Create
// It inserts the message and fills in the generated surrogate key.
// Returns store.ErrInvalidReference (wrapped) when the owner account does
// not exist and a *store.StoreError on any other medium failure.
func (s *MessageStore) Create(ctx context.Context, message *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO message (posted_by, message_text, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`

	err := s.db.QueryRowContext(
		ctx,
		query,
		message.OwnerID,
		message.Text,
		message.PostedAtEpoch,
	).Scan(&message.ID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("owner account missing on message creation",
				slog.Int64("owner_id", message.OwnerID))
			return fmt.Errorf("%w: account %d: %v", store.ErrInvalidReference, message.OwnerID, err)
		}
		if errors.Is(err, sql.ErrNoRows) {
			log.Error("message insert returned no generated key",
				slog.Int64("owner_id", message.OwnerID))
			return store.NewStoreError("message", "create", "insert failed", store.ErrNoIDObtained)
		}
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", message.OwnerID))
		return store.NewStoreError("message", "create", "insert failed", err)
	}

	log.Info("message created",
		slog.Int64("message_id", message.ID),
		slog.Int64("owner_id", message.OwnerID))
	return nil
}

// Update implements store.MessageStore.Update
// Only the text column is rewritten; ownership and the posting timestamp are
// immutable once stored. The returned bool is true iff exactly one row was
// affected.
func (s *MessageStore) Update(ctx context.Context, message *domain.Message) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE message
		SET message_text = $1
		WHERE message_id = $2
	`

	result, err := s.db.ExecContext(ctx, query, message.Text, message.ID)
	if err != nil {
		log.Error("failed to update message",
			slog.String("error", err.Error()),
			slog.Int64("message_id", message.ID))
		return false, store.NewStoreError("message", "update", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("message_id", message.ID))
		return false, store.NewStoreError("message", "update", "rows affected unavailable", err)
	}

	return rows == 1, nil
}

// Delete implements store.MessageStore.Delete
// The returned bool is true iff exactly one row was affected.
func (s *MessageStore) Delete(ctx context.Context, message *domain.Message) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM message
		WHERE message_id = $1
	`

	result, err := s.db.ExecContext(ctx, query, message.ID)
	if err != nil {
		log.Error("failed to delete message",
			slog.String("error", err.Error()),
			slog.Int64("message_id", message.ID))
		return false, store.NewStoreError("message", "delete", "exec failed", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("message_id", message.ID))
		return false, store.NewStoreError("message", "delete", "rows affected unavailable", err)
	}

	return rows == 1, nil
}
