package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chirpd/chirp-api/internal/api/shared"
	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/service"
)

// MessageHandler handles message-related HTTP requests.
type MessageHandler struct {
	messageService service.MessageService
	accountService service.AccountService
	logger         *slog.Logger
}

// NewMessageHandler creates a new MessageHandler. The account service is
// used to resolve the owning account before a message is created.
func NewMessageHandler(
	messageService service.MessageService,
	accountService service.AccountService,
	logger *slog.Logger,
) *MessageHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageHandler{
		messageService: messageService,
		accountService: accountService,
		logger:         logger.With("component", "message_handler"),
	}
}

// messageIDParam parses the {message_id} path parameter.
func messageIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "message_id"), 10, 64)
}

// Create handles POST /messages requests. The owning account is resolved by
// the message's posted_by reference and handed to the service, which rejects
// a mismatch.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var message domain.Message
	if err := shared.DecodeJSON(r, &message); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(&message); err != nil {
		h.logger.Debug("message input rejected",
			"error", err,
			"owner_id", message.OwnerID)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	owner, err := h.accountService.GetAccountByID(r.Context(), message.OwnerID)
	if err != nil {
		h.logger.Error("failed to resolve message owner",
			"error", err,
			"owner_id", message.OwnerID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	created, err := h.messageService.CreateMessage(r.Context(), &message, owner)
	if err != nil {
		h.logger.Debug("message creation rejected",
			"error", err,
			"owner_id", message.OwnerID)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, created)
}

// GetAll handles GET /messages requests.
func (h *MessageHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageService.GetAllMessages(r.Context())
	if err != nil {
		h.logger.Error("failed to list messages", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messages)
}

// GetByID handles GET /messages/{message_id} requests. A missing message
// yields 200 with an empty body, matching the behavior clients of the
// previous system rely on.
func (h *MessageHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := messageIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid message ID")
		return
	}

	message, err := h.messageService.GetMessageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Error("failed to get message",
			"error", err,
			"message_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, message)
}

// GetByOwner handles GET /accounts/{account_id}/messages requests.
func (h *MessageHandler) GetByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "account_id"), 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid account ID")
		return
	}

	messages, err := h.messageService.GetMessagesByOwnerID(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("failed to list messages by owner",
			"error", err,
			"owner_id", ownerID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, messages)
}

// Update handles PATCH /messages/{message_id} requests. Only the text field
// of the body is applied; the rest of the record is preserved. Failures,
// including a missing target, are reported as 400 to match the previous
// system's contract.
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := messageIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid message ID")
		return
	}

	// The patch carries only the replacement text, so it cannot be validated
	// on its own; the service validates the merged record against the stored
	// fields.
	var patch domain.Message
	if err := shared.DecodeJSON(r, &patch); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	patch.ID = id

	updated, err := h.messageService.UpdateMessage(r.Context(), &patch)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) || errors.Is(err, domain.ErrValidation) {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		h.logger.Error("failed to update message",
			"error", err,
			"message_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /messages/{message_id} requests. Deletion is
// idempotent at the transport level: deleting an absent message still
// yields 200, with the deleted record in the body only when one existed.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := messageIDParam(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid message ID")
		return
	}

	message, err := h.messageService.GetMessageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Error("failed to get message for deletion",
			"error", err,
			"message_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	if err := h.messageService.DeleteMessage(r.Context(), message); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			// Deleted concurrently between the fetch and the delete.
			w.WriteHeader(http.StatusOK)
			return
		}
		h.logger.Error("failed to delete message",
			"error", err,
			"message_id", id)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, message)
}
