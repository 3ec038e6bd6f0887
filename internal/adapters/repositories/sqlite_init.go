package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWalkLogQuery := `
	CREATE TABLE IF NOT EXISTS walk_log (
		session_id TEXT NOT NULL,
		cursor INTEGER NOT NULL,
		place_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		distance_text TEXT NOT NULL DEFAULT '',
		duration_text TEXT NOT NULL DEFAULT '',
		shown_at TIMESTAMP NOT NULL,
		PRIMARY KEY (session_id, cursor)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_walk_log_shown_at
	ON walk_log(shown_at);
	`

	statements := []string{
		createWalkLogQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	statements := []string{
		`
		CREATE TABLE IF NOT EXISTS walk_log (
			session_id TEXT NOT NULL,
			cursor INTEGER NOT NULL,
			place_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			distance_text TEXT NOT NULL DEFAULT '',
			duration_text TEXT NOT NULL DEFAULT '',
			shown_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (session_id, cursor)
		);
		`,
		`
		CREATE INDEX IF NOT EXISTS idx_walk_log_shown_at
		ON walk_log(shown_at);
		`,
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
