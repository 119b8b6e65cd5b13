package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaStatements create the tables and constraints the stores depend on.
// The statements are idempotent: startup runs them unconditionally and an
// already-provisioned database is left untouched. The unique constraint on
// username and the foreign key from message to account are the medium-level
// backstops for the service-layer uniqueness and existence checks.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS account (
		account_id BIGSERIAL PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS message (
		message_id        BIGSERIAL PRIMARY KEY,
		posted_by         BIGINT NOT NULL REFERENCES account (account_id),
		message_text      TEXT NOT NULL,
		time_posted_epoch BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_message_posted_by ON message (posted_by)`,
}

// EnsureSchema provisions the database schema if it is not already present.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
