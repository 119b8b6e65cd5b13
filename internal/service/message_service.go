package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/store"
)

// MessageService provides message-related operations.
//
// Unlike AccountService, lookups by ID promote absence to ErrMessageNotFound:
// callers of message operations expect a hard failure for a dangling
// reference, and the transport layer depends on that distinction.
type MessageService interface {
	// CreateMessage validates and stores a new message on behalf of owner,
	// returning it with its assigned ID. Fails with ErrOwnerMissing when
	// owner is nil, with a domain validation error for bad text, and with
	// ErrNotOwner when owner does not match the message's owner reference.
	CreateMessage(
		ctx context.Context,
		message *domain.Message,
		owner *domain.Account,
	) (*domain.Message, error)

	// GetMessageByID retrieves a message, failing with ErrMessageNotFound
	// when it does not exist.
	GetMessageByID(ctx context.Context, id int64) (*domain.Message, error)

	// GetAllMessages retrieves every message.
	GetAllMessages(ctx context.Context) ([]*domain.Message, error)

	// GetMessagesByOwnerID retrieves every message posted by the given
	// account. An unknown account simply yields an empty list.
	GetMessagesByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Message, error)

	// UpdateMessage replaces the text of the stored message identified by
	// patch.ID with patch.Text and returns the updated full record. The
	// owner reference and posting timestamp are preserved from the stored
	// row, never taken from the patch.
	UpdateMessage(ctx context.Context, patch *domain.Message) (*domain.Message, error)

	// DeleteMessage removes the message by its ID, failing with
	// ErrMessageNotFound when nothing was deleted.
	DeleteMessage(ctx context.Context, message *domain.Message) error
}

// MessageServiceImpl implements the MessageService interface.
type MessageServiceImpl struct {
	messageStore store.MessageStore
	db           *sql.DB
	logger       *slog.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(
	messageStore store.MessageStore,
	db *sql.DB,
	logger *slog.Logger,
) MessageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageServiceImpl{
		messageStore: messageStore,
		db:           db,
		logger:       logger.With("component", "message_service"),
	}
}

// CreateMessage validates and stores a new message on behalf of owner.
// The ownership check is performed even though callers normally resolve
// owner by the message's own owner reference: a caller-supplied mismatch
// must be rejected.
func (s *MessageServiceImpl) CreateMessage(
	ctx context.Context,
	message *domain.Message,
	owner *domain.Account,
) (*domain.Message, error) {
	if owner == nil {
		s.logger.Debug("message submitted without an owner account",
			"owner_id", message.OwnerID)
		return nil, ErrOwnerMissing
	}

	if err := message.Validate(); err != nil {
		s.logger.Debug("message validation failed",
			"error", err,
			"owner_id", message.OwnerID)
		return nil, err
	}

	if owner.ID != message.OwnerID {
		s.logger.Warn("account attempted to post for another account",
			"account_id", owner.ID,
			"owner_id", message.OwnerID)
		return nil, ErrNotOwner
	}

	if err := s.messageStore.Create(ctx, message); err != nil {
		// The foreign key is the backstop for the owner account vanishing
		// between the caller's existence check and the insert.
		if errors.Is(err, store.ErrInvalidReference) {
			return nil, ErrOwnerMissing
		}
		s.logger.Error("failed to insert message",
			"error", err,
			"owner_id", message.OwnerID)
		return nil, NewMessageServiceError("create_message", "failed to insert message", err)
	}

	s.logger.Info("message created successfully",
		"message_id", message.ID,
		"owner_id", message.OwnerID)
	return message, nil
}

// GetMessageByID retrieves a message by its ID, promoting absence to
// ErrMessageNotFound.
func (s *MessageServiceImpl) GetMessageByID(ctx context.Context, id int64) (*domain.Message, error) {
	message, err := s.messageStore.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to retrieve message",
			"error", err,
			"message_id", id)
		return nil, NewMessageServiceError("get_message", "failed to retrieve message", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

// GetAllMessages retrieves every message.
func (s *MessageServiceImpl) GetAllMessages(ctx context.Context) ([]*domain.Message, error) {
	messages, err := s.messageStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve messages", "error", err)
		return nil, NewMessageServiceError("get_all_messages", "failed to retrieve messages", err)
	}

	s.logger.Debug("retrieved messages", "count", len(messages))
	return messages, nil
}

// GetMessagesByOwnerID retrieves every message posted by the given account.
func (s *MessageServiceImpl) GetMessagesByOwnerID(
	ctx context.Context,
	ownerID int64,
) ([]*domain.Message, error) {
	messages, err := s.messageStore.GetByOwnerID(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to retrieve messages by owner",
			"error", err,
			"owner_id", ownerID)
		return nil, NewMessageServiceError(
			"get_messages_by_owner",
			"failed to retrieve messages",
			err,
		)
	}

	s.logger.Debug("retrieved messages by owner",
		"owner_id", ownerID,
		"count", len(messages))
	return messages, nil
}

// UpdateMessage replaces the text of the stored message identified by
// patch.ID. The fetch and the write run inside one transaction so the
// preserved fields cannot go stale between the two steps.
func (s *MessageServiceImpl) UpdateMessage(
	ctx context.Context,
	patch *domain.Message,
) (*domain.Message, error) {
	var updated *domain.Message

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.messageStore.WithTx(tx)

		existing, err := txStore.GetByID(ctx, patch.ID)
		if err != nil {
			s.logger.Error("failed to retrieve message for update",
				"error", err,
				"message_id", patch.ID)
			return NewMessageServiceError("update_message", "failed to retrieve message", err)
		}
		if existing == nil {
			return ErrMessageNotFound
		}

		existing.Text = patch.Text
		if err := existing.Validate(); err != nil {
			s.logger.Debug("updated message failed validation",
				"error", err,
				"message_id", patch.ID)
			return err
		}

		ok, err := txStore.Update(ctx, existing)
		if err != nil {
			s.logger.Error("failed to persist message update",
				"error", err,
				"message_id", patch.ID)
			return NewMessageServiceError("update_message", "failed to persist message", err)
		}
		if !ok {
			return ErrMessageNotFound
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("message updated successfully", "message_id", updated.ID)
	return updated, nil
}

// DeleteMessage removes the message by its ID.
func (s *MessageServiceImpl) DeleteMessage(ctx context.Context, message *domain.Message) error {
	deleted, err := s.messageStore.Delete(ctx, message)
	if err != nil {
		s.logger.Error("failed to delete message",
			"error", err,
			"message_id", message.ID)
		return NewMessageServiceError("delete_message", "failed to delete message", err)
	}
	if !deleted {
		return ErrMessageNotFound
	}

	s.logger.Info("message deleted successfully", "message_id", message.ID)
	return nil
}
