package services

import (
	"attractions-walker/internal/adapters/fake"
	"attractions-walker/internal/adapters/sessions"
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"
)

type testManager struct {
	*Manager
	store      *sessions.MemorySessionStore
	walkLog    *memWalkLog
	directions *fake.Directions
}

func newTestManager(t *testing.T, searcher ports.NearbySearcher, firstPageTimeout time.Duration) *testManager {
	t.Helper()

	store := sessions.NewMemorySessionStore(0)
	walkLog := &memWalkLog{}
	directions := &fake.Directions{Route: testRoute}

	n := 0
	m, err := NewManager(ManagerConfig{
		Store:      store,
		WalkLog:    walkLog,
		Geocoder:   &fake.Geocoder{Name: "Soho, London"},
		Aggregator: newTestAggregator(searcher),
		Presenter: &Presenter{
			Details:    fake.Details{},
			Directions: directions,
		},
		FirstPageTimeout: firstPageTimeout,
		NewID: func() string {
			n++
			return fmt.Sprintf("session-%d", n)
		},
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	t.Cleanup(m.Wait)

	return &testManager{Manager: m, store: store, walkLog: walkLog, directions: directions}
}

func located() StartRequest {
	return StartRequest{Sensor: fake.Sensor{Coords: domain.Coordinates{Lat: 51.513, Lng: -0.136}}}
}

func TestManagerWalksOnePage(t *testing.T) {
	dir := fake.NewDirectory(fake.OKPage(place("a", 1, 1), place("b", 2, 2), place("c", 3, 3)))
	m := newTestManager(t, dir, time.Second)
	ctx := context.Background()

	f, err := m.Start(ctx, located())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Wait()

	if f.SessionID != "session-1" || f.Heading != "Bored in Soho, London?" || f.Notice != "" {
		t.Fatalf("start frame = %+v", f)
	}
	if f.Display == nil || f.Display.Cursor != 0 || !f.NextEnabled {
		t.Fatalf("start display = %+v next=%v", f.Display, f.NextEnabled)
	}

	s, err := m.Get(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(s.Results) != 3 || s.PagesFetched != 1 || !s.AggregationDone {
		t.Fatalf("session = %+v", s)
	}
	if s.State != domain.StateTraversing {
		t.Fatalf("state = %s, want traversing", s.State)
	}

	shown := []string{f.Display.PlaceID}
	for i := 1; i < 3; i++ {
		f, err = m.Next(ctx, s.ID)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if f.Display == nil || f.Display.Cursor != i {
			t.Fatalf("next %d display = %+v", i, f.Display)
		}
		shown = append(shown, f.Display.PlaceID)
	}

	slices.Sort(shown)
	if !slices.Equal(shown, []string{"a", "b", "c"}) {
		t.Fatalf("shown = %v; each place once", shown)
	}

	f, err = m.Next(ctx, s.ID)
	if err != nil {
		t.Fatalf("final next: %v", err)
	}
	if f.Exhaustion == nil || f.Exhaustion.Message() != "No more places found. You should probably move ..." {
		t.Fatalf("final frame = %+v", f.Exhaustion)
	}
	if f.NextEnabled || f.State != domain.StateExhausted {
		t.Fatalf("final state=%s next=%v", f.State, f.NextEnabled)
	}

	if _, err := m.Next(ctx, s.ID); !errors.Is(err, domain.ErrExhausted) {
		t.Fatalf("next after exhaustion err = %v", err)
	}

	history, err := m.History(ctx, s.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history entries = %d, want 3", len(history))
	}
	for i, e := range history {
		if e.Cursor != i || e.Distance != "2.3 km" {
			t.Fatalf("history[%d] = %+v", i, e)
		}
	}
}

func TestManagerCurrentDoesNotAdvance(t *testing.T) {
	dir := fake.NewDirectory(fake.OKPage(place("a", 1, 1), place("b", 2, 2)))
	m := newTestManager(t, dir, time.Second)
	ctx := context.Background()

	f, err := m.Start(ctx, located())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	again, err := m.Current(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if again.Display == nil || again.Display.PlaceID != f.Display.PlaceID || again.Display.Cursor != 0 {
		t.Fatalf("current = %+v, want %+v", again.Display, f.Display)
	}

	history, _ := m.History(ctx, f.SessionID)
	if len(history) != 1 {
		t.Fatalf("re-showing must not log again: %d entries", len(history))
	}
}

func TestManagerNoPlaces(t *testing.T) {
	m := newTestManager(t, fake.NewDirectory(), time.Second)
	ctx := context.Background()

	f, err := m.Start(ctx, StartRequest{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if f.Exhaustion == nil || f.Exhaustion.Message() != "No places found. You should probably move ..." {
		t.Fatalf("frame = %+v", f)
	}
	if f.Notice != "Geolocation not supported ... Imagine you're in London, UK." {
		t.Fatalf("notice = %q", f.Notice)
	}
	if f.MapCenter != domain.DefaultCoordinates {
		t.Fatalf("map center = %v", f.MapCenter)
	}
	if _, err := m.Next(ctx, f.SessionID); !errors.Is(err, domain.ErrExhausted) {
		t.Fatalf("next err = %v, want ErrExhausted", err)
	}
}

func TestManagerNextDisabledBeforeFirstPage(t *testing.T) {
	gate := make(chan struct{})
	searcher := &gatedSearcher{
		gate:  gate,
		inner: fake.NewDirectory(fake.OKPage(place("a", 1, 1))),
	}
	m := newTestManager(t, searcher, 20*time.Millisecond)
	ctx := context.Background()

	f, err := m.Start(ctx, located())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if f.State != domain.StateIdle || f.Display != nil || f.Exhaustion != nil || f.NextEnabled {
		t.Fatalf("pending frame = %+v", f)
	}

	if _, err := m.Next(ctx, f.SessionID); !errors.Is(err, domain.ErrNextDisabled) {
		t.Fatalf("next err = %v, want ErrNextDisabled", err)
	}

	close(gate)
	m.Wait()

	f, err = m.Current(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if f.Display == nil || f.Display.PlaceID != "a" || f.State != domain.StateTraversing {
		t.Fatalf("frame after first page = %+v", f)
	}

	history, _ := m.History(ctx, f.SessionID)
	if len(history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(history))
	}
}

func TestManagerKeepsPageOrder(t *testing.T) {
	dir := fake.NewDirectory(
		fake.OKPage(place("a", 1, 1), place("b", 2, 2)),
		fake.OKPage(place("c", 3, 3)),
	)
	m := newTestManager(t, dir, time.Second)
	ctx := context.Background()

	f, err := m.Start(ctx, located())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Wait()

	s, err := m.Get(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(s.Results) != 3 || s.PagesFetched != 2 {
		t.Fatalf("results=%d pages=%d", len(s.Results), s.PagesFetched)
	}
	if got := sortedIDs(s.Results[:2]); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("first page = %v", got)
	}
	if s.Results[2].PlaceID != "c" {
		t.Fatalf("second page = %s, want c", s.Results[2].PlaceID)
	}
}

func TestManagerUnknownSession(t *testing.T) {
	m := newTestManager(t, fake.NewDirectory(), time.Second)
	ctx := context.Background()

	if _, err := m.Next(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("next err = %v", err)
	}
	if _, err := m.Current(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("current err = %v", err)
	}
	if _, err := m.History(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("history err = %v", err)
	}
}

func TestNewManagerRequiresDependencies(t *testing.T) {
	if _, err := NewManager(ManagerConfig{}); err == nil {
		t.Fatal("expected error for missing store")
	}
	if _, err := NewManager(ManagerConfig{Store: sessions.NewMemorySessionStore(0)}); err == nil {
		t.Fatal("expected error for missing collaborators")
	}
}

func TestManagerDefaultLocationWalk(t *testing.T) {
	dir := fake.NewDirectory(fake.OKPage(place("a", 1, 1), place("b", 2, 2), place("c", 3, 3)))
	m := newTestManager(t, dir, time.Second)
	ctx := context.Background()

	f, err := m.Start(ctx, StartRequest{})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Wait()

	if f.MapCenter != domain.DefaultCoordinates || f.Heading != "Bored in London, UK?" {
		t.Fatalf("center=%v heading=%q", f.MapCenter, f.Heading)
	}
	if f.Display == nil || f.Display.Cursor != 0 || f.Display.Total != 3 {
		t.Fatalf("first display = %+v", f.Display)
	}
	if got := m.directions.Origins(); len(got) != 1 || got[0] != domain.DefaultCoordinates {
		t.Fatalf("route origins = %v, want the default coordinate", got)
	}

	for i := 1; i <= 2; i++ {
		if f, err = m.Next(ctx, f.SessionID); err != nil || f.Display == nil {
			t.Fatalf("next %d: frame=%+v err=%v", i, f, err)
		}
	}
	f, err = m.Next(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("final next: %v", err)
	}
	if f.Exhaustion == nil || f.Exhaustion.Headline != "No more places found." {
		t.Fatalf("final frame = %+v", f.Exhaustion)
	}
}

func TestManagerFirstPageReadyOnce(t *testing.T) {
	dir := fake.NewDirectory(
		fake.OKPage(),
		fake.OKPage(place("a", 1, 1), place("b", 2, 2), place("c", 3, 3)),
		fake.OKPage(place("d", 4, 4)),
	)
	m := newTestManager(t, dir, time.Second)
	ctx := context.Background()

	s := domain.NewSession("walk", time.Now())
	if err := m.store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	fired := 0
	sink := &sessionSink{m: m.Manager, id: s.ID, onFirstPage: func() { fired++ }}
	if err := m.aggregator.Aggregate(ctx, domain.DefaultCoordinates, sink); err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if fired != 1 {
		t.Fatalf("first page signalled %d times, want 1", fired)
	}

	got, err := m.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Results) != 4 || got.State != domain.StateFirstPageReady || !got.AggregationDone {
		t.Fatalf("session = %+v", got)
	}
}

func TestManagerRouteFailureDoesNotBlockNext(t *testing.T) {
	first := place("a", 1, 1)
	dir := fake.NewDirectory(
		fake.OKPage(first),
		fake.OKPage(place("b", 2, 2)),
	)
	m := newTestManager(t, dir, time.Second)
	m.directions.Fail = map[domain.Coordinates]bool{first.Location: true}
	ctx := context.Background()

	f, err := m.Start(ctx, located())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	m.Wait()

	if f.Display == nil || f.Display.PlaceID != "a" {
		t.Fatalf("first display = %+v", f.Display)
	}
	if f.Display.Route != nil || f.Display.Distance != "" || f.Display.Marker == nil {
		t.Fatalf("failed route should leave a marker only: %+v", f.Display)
	}
	if !f.NextEnabled {
		t.Fatal("next disabled after a route failure")
	}

	f, err = m.Next(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if f.Display == nil || f.Display.PlaceID != "b" || f.Display.Route == nil || f.Display.Distance != "2.3 km" {
		t.Fatalf("second display = %+v", f.Display)
	}
}

func TestManagerFinalMessageSurvivesLatePages(t *testing.T) {
	release := make(chan struct{})
	late := &lateSearcher{
		inner:   fake.NewDirectory(fake.OKPage(place("a", 1, 1)), fake.OKPage(place("b", 2, 2), place("c", 3, 3))),
		release: release,
	}
	m := newTestManager(t, late, time.Second)
	ctx := context.Background()

	f, err := m.Start(ctx, located())
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// past the only loaded place while page 2 is still pending
	f, err = m.Next(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if f.Exhaustion == nil || f.Exhaustion.Total != 1 {
		t.Fatalf("exhaustion = %+v", f.Exhaustion)
	}
	want := *f.Exhaustion

	close(release)
	m.Wait()

	f, err = m.Current(ctx, f.SessionID)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if f.Exhaustion == nil || *f.Exhaustion != want {
		t.Fatalf("final message changed after exhaustion: %+v, want %+v", f.Exhaustion, want)
	}

	s, _ := m.Get(ctx, f.SessionID)
	if len(s.Results) != 1 || s.State != domain.StateExhausted || !s.AggregationDone {
		t.Fatalf("session after late page = %+v", s)
	}
}

func TestManagerCloseCancelsAggregation(t *testing.T) {
	searcher := &gatedSearcher{
		gate:  make(chan struct{}),
		inner: fake.NewDirectory(fake.OKPage(place("a", 1, 1))),
	}
	m := newTestManager(t, searcher, 10*time.Millisecond)

	if _, err := m.Start(context.Background(), located()); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan struct{})
	go func() {
		m.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("close did not stop the background aggregation")
	}
}
