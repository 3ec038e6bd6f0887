package sessions

import (
	"attractions-walker/internal/domain"
	"context"
	"errors"
	"sync"
	"time"
)

// In-process session store. Sessions idle for longer than the TTL are
// treated as gone and removed by Sweep.
type MemorySessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*domain.Session
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*domain.Session),
	}
}

func (m *MemorySessionStore) expired(s *domain.Session, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.UpdatedAt) > m.ttl
}

func (m *MemorySessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || m.expired(s, m.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (m *MemorySessionStore) Save(ctx context.Context, s *domain.Session) error {
	if s == nil || s.ID == "" {
		return errors.New("memory session store: session id must not be empty")
	}

	m.mu.Lock()
	m.sessions[s.ID] = s.Clone()
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (m *MemorySessionStore) Sweep(ctx context.Context) (int, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if m.expired(s, now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
