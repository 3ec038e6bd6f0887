package services

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"math/rand/v2"
	"slices"
	"sync"
)

func place(id string, lat, lng float64) domain.Place {
	return domain.Place{
		PlaceID:  id,
		Name:     "Place " + id,
		Types:    []string{"museum"},
		Location: domain.Coordinates{Lat: lat, Lng: lng},
	}
}

func fixedRand() func() *rand.Rand {
	return func() *rand.Rand { return rand.New(rand.NewPCG(42, 1)) }
}

func ids(places []domain.Place) []string {
	out := make([]string, 0, len(places))
	for _, p := range places {
		out = append(out, p.PlaceID)
	}
	return out
}

func sortedIDs(places []domain.Place) []string {
	out := ids(places)
	slices.Sort(out)
	return out
}

type recordingSink struct {
	pages     [][]domain.Place
	total     int
	finished  int
	exhausted bool
	err       error
}

func (s *recordingSink) AppendPage(ctx context.Context, page []domain.Place) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.pages = append(s.pages, page)
	s.total += len(page)
	return s.total, nil
}

func (s *recordingSink) Finish(ctx context.Context, exhausted bool) error {
	s.finished++
	s.exhausted = exhausted
	return nil
}

type memWalkLog struct {
	mu      sync.Mutex
	entries []ports.WalkEntry
}

func (l *memWalkLog) Record(ctx context.Context, e ports.WalkEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	return nil
}

func (l *memWalkLog) List(ctx context.Context, sessionID string) ([]ports.WalkEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []ports.WalkEntry
	for _, e := range l.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// gatedSearcher holds the first directory request until gate is closed.
type gatedSearcher struct {
	gate  chan struct{}
	inner ports.NearbySearcher
}

func (g *gatedSearcher) SearchNearby(ctx context.Context, req ports.NearbySearchRequest) (ports.NearbyPage, error) {
	select {
	case <-g.gate:
	case <-ctx.Done():
		return ports.NearbyPage{}, ctx.Err()
	}
	return g.inner.SearchNearby(ctx, req)
}

func (g *gatedSearcher) NextPage(ctx context.Context, token string) (ports.NearbyPage, error) {
	return g.inner.NextPage(ctx, token)
}

// lateSearcher serves the first page at once and holds every later page
// until release is closed.
type lateSearcher struct {
	inner   ports.NearbySearcher
	release chan struct{}
}

func (l *lateSearcher) SearchNearby(ctx context.Context, req ports.NearbySearchRequest) (ports.NearbyPage, error) {
	return l.inner.SearchNearby(ctx, req)
}

func (l *lateSearcher) NextPage(ctx context.Context, token string) (ports.NearbyPage, error) {
	select {
	case <-l.release:
	case <-ctx.Done():
		return ports.NearbyPage{}, ctx.Err()
	}
	return l.inner.NextPage(ctx, token)
}
