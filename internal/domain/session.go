package domain

import "time"

type SessionState string

// Session lifecycle. Exhausted is terminal.
const (
	StateIdle           SessionState = "idle"
	StateFirstPageReady SessionState = "first_page_ready"
	StateTraversing     SessionState = "traversing"
	StateExhausted      SessionState = "exhausted"
)

// Session is one walk through nearby places.
//
// Results only ever grows: each directory page is shuffled on its own and
// appended in arrival order. Cursor indexes the place currently shown and
// never exceeds len(Results); Cursor == len(Results) means nothing is left.
type Session struct {
	ID              string
	Location        Location
	Results         []Place
	Cursor          int
	State           SessionState
	PagesFetched    int
	AggregationDone bool
	// Final is fixed the first time the session is exhausted.
	Final           *Exhaustion
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		Location:  DefaultLocation(),
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AppendPage adds an already shuffled page to the result set.
// It reports true only for the append that takes the session out of Idle.
// Pages arriving after exhaustion are dropped.
func (s *Session) AppendPage(page []Place) bool {
	if s.State == StateExhausted {
		return false
	}

	s.PagesFetched++
	if len(page) == 0 {
		return false
	}

	s.Results = append(s.Results, page...)
	if s.State == StateIdle {
		s.State = StateFirstPageReady
		return true
	}
	return false
}

// Current returns the place under the cursor, or false once the cursor has
// run off the end of the result set.
func (s *Session) Current() (Place, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Results) {
		return Place{}, false
	}
	return s.Results[s.Cursor], true
}

// Advance moves the cursor forward by one.
func (s *Session) Advance() error {
	switch s.State {
	case StateIdle:
		return ErrNextDisabled
	case StateExhausted:
		return ErrExhausted
	}

	if s.Cursor < len(s.Results) {
		s.Cursor++
	}
	return nil
}

// MarkPresented records that a display record has been handed to the sink.
func (s *Session) MarkPresented() {
	if s.State == StateFirstPageReady {
		s.State = StateTraversing
	}
}

// Exhaust moves the session into its terminal state. The final message is
// computed once; later calls return the same one.
func (s *Session) Exhaust() Exhaustion {
	s.State = StateExhausted
	if s.Final == nil {
		e := NewExhaustion(len(s.Results))
		s.Final = &e
	}
	return *s.Final
}

func (s *Session) NextEnabled() bool {
	return s.State == StateFirstPageReady || s.State == StateTraversing
}

// Clone returns a copy that does not share the result slice.
func (s *Session) Clone() *Session {
	c := *s
	c.Results = append([]Place(nil), s.Results...)
	if s.Final != nil {
		e := *s.Final
		c.Final = &e
	}
	return &c
}
