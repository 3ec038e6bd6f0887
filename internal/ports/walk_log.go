package ports

import (
	"attractions-walker/internal/domain"
	"context"
	"time"
)

// A place shown to the user during a session.
type WalkEntry struct {
	SessionID string
	Cursor    int
	PlaceID   string
	Name      string
	Category  string
	Distance  string
	Duration  string
	ShownAt   time.Time
}

// Port: append-only record of the places a session has shown.
type WalkLog interface {
	Record(ctx context.Context, e WalkEntry) error
	List(ctx context.Context, sessionID string) ([]WalkEntry, error)
}

func NewWalkEntry(sessionID string, d *domain.Display, at time.Time) WalkEntry {
	return WalkEntry{
		SessionID: sessionID,
		Cursor:    d.Cursor,
		PlaceID:   d.PlaceID,
		Name:      d.Name,
		Category:  d.Category,
		Distance:  d.Distance,
		Duration:  d.Duration,
		ShownAt:   at,
	}
}
