package api

import (
	"log/slog"
	"net/http"

	"github.com/chirpd/chirp-api/internal/api/shared"
	"github.com/chirpd/chirp-api/internal/domain"
	"github.com/chirpd/chirp-api/internal/service"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{
		accountService: accountService,
		logger:         logger.With("component", "account_handler"),
	}
}

// Register handles POST /register requests.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var account domain.Account
	if err := shared.DecodeJSON(r, &account); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(&account); err != nil {
		h.logger.Debug("registration input rejected",
			"error", err,
			"username", account.Username)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	created, err := h.accountService.CreateAccount(r.Context(), &account)
	if err != nil {
		h.logger.Debug("registration rejected",
			"error", err,
			"username", account.Username)
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, created)
}

// Login handles POST /login requests. A credential mismatch is reported as
// 401 without distinguishing unknown username from wrong password.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var candidate domain.Account
	if err := shared.DecodeJSON(r, &candidate); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := h.accountService.ValidateLogin(r.Context(), &candidate)
	if err != nil {
		h.logger.Error("login check failed", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	if account == nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, account)
}
