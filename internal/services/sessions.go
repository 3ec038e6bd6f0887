package services

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"attractions-walker/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ManagerConfig struct {
	Store      ports.SessionStore
	WalkLog    ports.WalkLog // optional
	Geocoder   ports.ReverseGeocoder
	Aggregator *Aggregator
	Presenter  *Presenter

	// How long Start waits for the first page before answering with a
	// pending frame.
	FirstPageTimeout time.Duration
	// Upper bound for one background aggregation run.
	AggregationTimeout time.Duration

	Now   func() time.Time
	NewID func() string
}

// Manager runs walk sessions: locate, aggregate in the background, and
// present one place at a time.
//
// Every read-modify-write of a session happens under that session's lock,
// so background page appends and user "next" actions never interleave.
type Manager struct {
	store      ports.SessionStore
	walkLog    ports.WalkLog
	geocoder   ports.ReverseGeocoder
	aggregator *Aggregator
	presenter  *Presenter

	firstPageTimeout   time.Duration
	aggregationTimeout time.Duration
	now                func() time.Time
	newID              func() string

	locks keyedMutex
	wg    sync.WaitGroup

	// bg is cancelled by Close to stop background aggregations.
	bg       context.Context
	cancelBg context.CancelFunc
}

func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Store == nil {
		return nil, errors.New("new session manager: store is nil")
	}
	if cfg.Geocoder == nil || cfg.Aggregator == nil || cfg.Presenter == nil {
		return nil, errors.New("new session manager: geocoder, aggregator and presenter are required")
	}

	m := &Manager{
		store:              cfg.Store,
		walkLog:            cfg.WalkLog,
		geocoder:           cfg.Geocoder,
		aggregator:         cfg.Aggregator,
		presenter:          cfg.Presenter,
		firstPageTimeout:   cfg.FirstPageTimeout,
		aggregationTimeout: cfg.AggregationTimeout,
		now:                cfg.Now,
		newID:              cfg.NewID,
	}
	if m.firstPageTimeout <= 0 {
		m.firstPageTimeout = 15 * time.Second
	}
	if m.aggregationTimeout <= 0 {
		m.aggregationTimeout = 2 * time.Minute
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	m.bg, m.cancelBg = context.WithCancel(context.Background())

	return m, nil
}

type StartRequest struct {
	Sensor ports.LocationSensor
}

// Start opens a session: it locates the user, starts aggregation exactly
// once whatever the locate outcome, waits for the first page (or
// exhaustion, or FirstPageTimeout) and presents the first place.
func (m *Manager) Start(ctx context.Context, req StartRequest) (domain.Frame, error) {
	id := m.newID()
	ctx = obs.WithSessionID(ctx, id)

	s := domain.NewSession(id, m.now())
	s.Location = Locate(ctx, req.Sensor, m.geocoder)
	if err := m.store.Save(ctx, s); err != nil {
		return domain.Frame{}, fmt.Errorf("start session: save: %w", err)
	}
	log.Printf("session start id=%s location=%q source=%s", id, s.Location.Name, s.Location.Source)

	ready := make(chan struct{})
	var once sync.Once
	signal := func() { once.Do(func() { close(ready) }) }

	m.wg.Add(1)
	go func(at domain.Coordinates) {
		defer m.wg.Done()
		defer signal()

		actx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.aggregationTimeout)
		defer cancel()
		stop := context.AfterFunc(m.bg, cancel)
		defer stop()

		sink := &sessionSink{m: m, id: id, onFirstPage: signal}
		if err := m.aggregator.Aggregate(actx, at, sink); err != nil {
			log.Printf("session aggregate id=%s err=%v", id, err)
		}
	}(s.Location.Coordinates)

	timer := time.NewTimer(m.firstPageTimeout)
	defer timer.Stop()

	select {
	case <-ready:
	case <-timer.C:
		log.Printf("session start id=%s first page not ready after %s", id, m.firstPageTimeout)
	case <-ctx.Done():
		return domain.Frame{}, ctx.Err()
	}

	return m.present(ctx, id, nil)
}

// Next advances the cursor and presents the following place. It returns
// domain.ErrNextDisabled before the first page and domain.ErrExhausted once
// the session has ended; the session is left unchanged in both cases.
func (m *Manager) Next(ctx context.Context, id string) (domain.Frame, error) {
	ctx = obs.WithSessionID(ctx, id)
	return m.present(ctx, id, func(s *domain.Session) error {
		return s.Advance()
	})
}

// Current presents the place under the cursor again without advancing.
func (m *Manager) Current(ctx context.Context, id string) (domain.Frame, error) {
	ctx = obs.WithSessionID(ctx, id)
	return m.present(ctx, id, nil)
}

// Get returns a snapshot of the session.
func (m *Manager) Get(ctx context.Context, id string) (*domain.Session, error) {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return s, nil
}

// History lists the places the session has shown so far.
func (m *Manager) History(ctx context.Context, id string) ([]ports.WalkEntry, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return nil, err
	}
	if m.walkLog == nil {
		return []ports.WalkEntry{}, nil
	}

	entries, err := m.walkLog.List(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("session history %s: %w", id, err)
	}
	return entries, nil
}

// Wait blocks until all background aggregations have finished.
func (m *Manager) Wait() { m.wg.Wait() }

// Close cancels in-flight background aggregations and waits for them to
// return. Sessions keep the pages appended so far.
func (m *Manager) Close() {
	m.cancelBg()
	m.wg.Wait()
}

func (m *Manager) present(ctx context.Context, id string, before func(*domain.Session) error) (domain.Frame, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	s, err := m.store.Load(ctx, id)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("present session %s: %w", id, err)
	}

	if before != nil {
		if err := before(s); err != nil {
			return domain.Frame{}, err
		}
	}

	firstShow := s.State == domain.StateFirstPageReady
	frame := m.presenter.Present(ctx, s)

	s.UpdatedAt = m.now()
	if err := m.store.Save(ctx, s); err != nil {
		return domain.Frame{}, fmt.Errorf("present session %s: save: %w", id, err)
	}

	if frame.Display != nil && (before != nil || firstShow) {
		m.record(ctx, id, frame.Display)
	}

	return frame, nil
}

func (m *Manager) record(ctx context.Context, id string, d *domain.Display) {
	if m.walkLog == nil {
		return
	}
	if err := m.walkLog.Record(ctx, ports.NewWalkEntry(id, d, m.now())); err != nil {
		log.Printf("session walk log id=%s cursor=%d err=%v", id, d.Cursor, err)
	}
}

// update applies fn to the stored session under its lock.
func (m *Manager) update(ctx context.Context, id string, fn func(*domain.Session)) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	s, err := m.store.Load(ctx, id)
	if err != nil {
		return err
	}

	fn(s)

	s.UpdatedAt = m.now()
	return m.store.Save(ctx, s)
}

type sessionSink struct {
	m           *Manager
	id          string
	onFirstPage func()
}

func (k *sessionSink) AppendPage(ctx context.Context, page []domain.Place) (int, error) {
	var total int
	var first, exhausted bool
	err := k.m.update(ctx, k.id, func(s *domain.Session) {
		if s.State == domain.StateExhausted {
			exhausted = true
			return
		}
		first = s.AppendPage(page)
		total = len(s.Results)
	})
	if err != nil {
		return 0, err
	}
	if exhausted {
		return 0, domain.ErrExhausted
	}

	if first {
		log.Printf("session first page id=%s places=%d", k.id, total)
		k.onFirstPage()
	}
	return total, nil
}

func (k *sessionSink) Finish(ctx context.Context, exhausted bool) error {
	return k.m.update(ctx, k.id, func(s *domain.Session) {
		s.AggregationDone = true
		if exhausted && s.State == domain.StateIdle {
			s.Exhaust()
			log.Printf("session exhausted id=%s before first page", k.id)
		}
	})
}
