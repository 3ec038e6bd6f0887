package ports

import (
	"attractions-walker/internal/domain"
	"context"
)

// Port: session-lifetime storage of walk sessions.
// Implementations must return copies; callers mutate what they load and Save it back.
type SessionStore interface {
	// Return domain.ErrSessionNotFound when the session is unknown or expired.
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}
