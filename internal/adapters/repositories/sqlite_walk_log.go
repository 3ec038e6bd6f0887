package repositories

import (
	"attractions-walker/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite-backed implementation of the WalkLog port.
type SqliteWalkLog struct{ DB *sql.DB }

func NewSqliteWalkLog(db *sql.DB) *SqliteWalkLog {
	return &SqliteWalkLog{DB: db}
}

// Record stores one shown place. Re-showing the same cursor replaces the entry.
func (s *SqliteWalkLog) Record(ctx context.Context, e ports.WalkEntry) error {
	if s.DB == nil {
		return errors.New("sqlite walk log: DB is nil")
	}

	if strings.TrimSpace(e.SessionID) == "" {
		return errors.New("record walk: session id must not be empty")
	}

	query := `
	INSERT OR REPLACE INTO walk_log (
		session_id,
		cursor,
		place_id,
		name,
		category,
		distance_text,
		duration_text,
		shown_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := s.DB.ExecContext(ctx, query,
		e.SessionID, e.Cursor, e.PlaceID, e.Name, e.Category, e.Distance, e.Duration, e.ShownAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record walk session=%s cursor=%d: %w", e.SessionID, e.Cursor, err)
	}

	return nil
}

// Return the places shown by a session in cursor order.
func (s *SqliteWalkLog) List(ctx context.Context, sessionID string) ([]ports.WalkEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite walk log: DB is nil")
	}

	query := `
	SELECT
		session_id,
		cursor,
		place_id,
		name,
		category,
		distance_text,
		duration_text,
		shown_at
	FROM walk_log
	WHERE session_id = ?
	ORDER BY cursor;
	`
	rows, err := s.DB.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list walk: query walk_log table: %w", err)
	}
	defer rows.Close()

	return scanWalkEntries(rows)
}

func scanWalkEntries(rows *sql.Rows) ([]ports.WalkEntry, error) {
	entries := make([]ports.WalkEntry, 0, 16)
	for rows.Next() {
		var e ports.WalkEntry
		var shownAt time.Time
		err := rows.Scan(&e.SessionID, &e.Cursor, &e.PlaceID, &e.Name, &e.Category, &e.Distance, &e.Duration, &shownAt)
		if err != nil {
			return nil, fmt.Errorf("list walk: scan row: %w", err)
		}
		e.ShownAt = shownAt.UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list walk: row iteration: %w", err)
	}

	return entries, nil
}
