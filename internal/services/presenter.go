package services

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"log"
)

// Presenter turns the place under a session's cursor into a frame for the
// rendering sink.
type Presenter struct {
	Details    ports.PlaceDetailsProvider
	Directions ports.DirectionsProvider
}

// Resolve fetches details and a driving route for place. Neither failure is
// fatal: missing details leave phone, website and reviews empty, and a
// missing route leaves a plain marker at the destination.
func (p *Presenter) Resolve(ctx context.Context, origin domain.Coordinates, place domain.Place) *domain.Display {
	details, err := p.Details.PlaceDetails(ctx, place.PlaceID)
	if err != nil {
		log.Printf("present: details fallback place_id=%s err=%v", place.PlaceID, err)
		details = domain.PlaceDetails{}
	}

	var route *domain.Route
	r, err := p.Directions.Directions(ctx, origin, place.Location)
	if err != nil {
		log.Printf("present: route fallback place_id=%s err=%v", place.PlaceID, err)
	} else {
		route = &r
	}

	return domain.BuildDisplay(place, details, route)
}

// Present builds the frame for the session's cursor, moving the session to
// Traversing or Exhausted as needed. An Idle session yields a pending frame
// with neither a display nor an exhaustion message.
func (p *Presenter) Present(ctx context.Context, s *domain.Session) domain.Frame {
	frame := domain.Frame{
		SessionID: s.ID,
		Heading:   s.Location.Heading(),
		Notice:    s.Location.Notice,
		MapCenter: s.Location.Coordinates,
	}

	switch place, ok := s.Current(); {
	case s.State == domain.StateIdle:
	case s.State == domain.StateExhausted || !ok:
		ex := s.Exhaust()
		frame.Exhaustion = &ex
	default:
		d := p.Resolve(ctx, s.Location.Coordinates, place)
		d.Cursor = s.Cursor
		d.Total = len(s.Results)
		s.MarkPresented()
		frame.Display = d
	}

	frame.State = s.State
	frame.NextEnabled = s.NextEnabled()
	return frame
}
