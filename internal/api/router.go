package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chirpd/chirp-api/internal/platform/logger"
)

// NewRouter creates and configures the application router with all routes
// and standard middleware.
func NewRouter(accountHandler *AccountHandler, messageHandler *MessageHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Post("/register", accountHandler.Register)
	r.Post("/login", accountHandler.Login)

	r.Post("/messages", messageHandler.Create)
	r.Get("/messages", messageHandler.GetAll)
	r.Get("/messages/{message_id}", messageHandler.GetByID)
	r.Patch("/messages/{message_id}", messageHandler.Update)
	r.Delete("/messages/{message_id}", messageHandler.Delete)
	r.Get("/accounts/{account_id}/messages", messageHandler.GetByOwner)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

// requestLogger stores a request-scoped logger in the context so log lines
// emitted downstream, including inside the stores and transaction helper,
// carry the request ID. Must run after middleware.RequestID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := slog.Default()
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			log = log.With(slog.String("request_id", reqID))
		}
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(r.Context(), log)))
	})
}
