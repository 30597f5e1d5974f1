package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	email           TEXT NOT NULL UNIQUE,
	hashed_password TEXT NOT NULL,
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS query_responses (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL REFERENCES users(id),
	query      TEXT NOT NULL CHECK (query <> ''),
	model      TEXT NOT NULL,
	response   TEXT NOT NULL CHECK (response <> ''),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_query_responses_user_id ON query_responses(user_id);
`

// DB wraps a database/sql pool over an embedded SQLite file. It backs local
// development and the HTTP tests.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	}

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite allows one writer; an in-memory database exists per connection
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}

	log.Info().Str("path", path).Msg("Opened sqlite database")

	return &DB{conn: conn}, nil
}

// Close closes the underlying pool
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies database connectivity
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// WithTx runs fn inside a transaction, committing on success
func (db *DB) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
