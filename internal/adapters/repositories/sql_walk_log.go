package repositories

import (
	"attractions-walker/internal/platform/obs"
	"attractions-walker/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLWalkLog is the Postgres implementation of the WalkLog port (pgx driver).
type SQLWalkLog struct {
	DB *sql.DB
}

func NewSQLWalkLog(db *sql.DB) *SQLWalkLog {
	return &SQLWalkLog{DB: db}
}

func (s *SQLWalkLog) Record(ctx context.Context, e ports.WalkEntry) (err error) {
	defer obs.Time(ctx, "walklog.Record")(&err)

	if s.DB == nil {
		return errors.New("walk log: db is nil")
	}

	if strings.TrimSpace(e.SessionID) == "" {
		return errors.New("record walk: session id must not be empty")
	}

	q := `
	INSERT INTO walk_log (session_id, cursor, place_id, name, category, distance_text, duration_text, shown_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (session_id, cursor) DO UPDATE
	SET place_id = EXCLUDED.place_id,
		name = EXCLUDED.name,
		category = EXCLUDED.category,
		distance_text = EXCLUDED.distance_text,
		duration_text = EXCLUDED.duration_text,
		shown_at = EXCLUDED.shown_at;
	`

	_, err = s.DB.ExecContext(ctx, q,
		e.SessionID, e.Cursor, e.PlaceID, e.Name, e.Category, e.Distance, e.Duration, e.ShownAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record walk session=%s cursor=%d: %w", e.SessionID, e.Cursor, err)
	}

	return nil
}

func (s *SQLWalkLog) List(ctx context.Context, sessionID string) (_ []ports.WalkEntry, err error) {
	defer obs.Time(ctx, "walklog.List")(&err)

	if s.DB == nil {
		return nil, errors.New("walk log: db is nil")
	}

	q := `
	SELECT session_id, cursor, place_id, name, category, distance_text, duration_text, shown_at
	FROM walk_log
	WHERE session_id = $1
	ORDER BY cursor;
	`

	rows, err := s.DB.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list walk: query walk_log table: %w", err)
	}
	defer rows.Close()

	return scanWalkEntries(rows)
}
