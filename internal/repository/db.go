package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id             TEXT PRIMARY KEY,
	vendor         TEXT NOT NULL,
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP,
	status         TEXT NOT NULL,
	invoice_files  INTEGER NOT NULL DEFAULT 0,
	manifest_files INTEGER NOT NULL DEFAULT 0,
	invoice_lines  INTEGER NOT NULL DEFAULT 0,
	manifest_lines INTEGER NOT NULL DEFAULT 0,
	output_rows    INTEGER NOT NULL DEFAULT 0,
	error_message  TEXT NOT NULL DEFAULT ''
);`

// Open opens (or creates) the run-ledger database and applies the schema.
// An empty path means in-memory, which the CLI uses for throwaway runs.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Single connection: writes are serial, and an in-memory DSN would
	// otherwise get a fresh empty database per connection.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}
