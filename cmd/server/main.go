// Command server runs the chirp API: it loads configuration, connects to
// the database, wires the stores and services together, and serves the HTTP
// adapter until interrupted.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/chirpd/chirp-api/internal/api"
	"github.com/chirpd/chirp-api/internal/config"
	"github.com/chirpd/chirp-api/internal/platform/logger"
	"github.com/chirpd/chirp-api/internal/platform/postgres"
	"github.com/chirpd/chirp-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	accountStore := postgres.NewAccountStore(db, log)
	messageStore := postgres.NewMessageStore(db, log)

	accountService := service.NewAccountService(accountStore, db, log)
	messageService := service.NewMessageService(messageStore, db, log)

	accountHandler := api.NewAccountHandler(accountService, log)
	messageHandler := api.NewMessageHandler(messageService, accountService, log)

	router := api.NewRouter(accountHandler, messageHandler)

	return serveHTTP(cfg, log, router)
}

// setupDatabase establishes the database connection, configures the pool,
// and provisions the schema.
func setupDatabase(cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}

	log.Info("database connection established")
	return db, nil
}

// serveHTTP runs the HTTP server until SIGINT/SIGTERM, then shuts it down
// gracefully.
func serveHTTP(cfg *config.Config, log *slog.Logger, router http.Handler) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-shutdownCh:
		log.Info("shutting down server", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server shutdown completed")
	return nil
}
