package dto

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"time"
)

type LocationResponse struct {
	Name        string              `json:"name"`
	Source      string              `json:"source"`
	Notice      string              `json:"notice,omitempty"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

type SessionResponse struct {
	SessionID       string           `json:"session_id"`
	State           string           `json:"state"`
	Cursor          int              `json:"cursor"`
	Total           int              `json:"total"`
	PagesFetched    int              `json:"pages_fetched"`
	AggregationDone bool             `json:"aggregation_done"`
	NextEnabled     bool             `json:"next_enabled"`
	Location        LocationResponse `json:"location"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func NewSessionResponse(s *domain.Session) SessionResponse {
	return SessionResponse{
		SessionID:       s.ID,
		State:           string(s.State),
		Cursor:          s.Cursor,
		Total:           len(s.Results),
		PagesFetched:    s.PagesFetched,
		AggregationDone: s.AggregationDone,
		NextEnabled:     s.NextEnabled(),
		Location: LocationResponse{
			Name:        s.Location.Name,
			Source:      string(s.Location.Source),
			Notice:      s.Location.Notice,
			Coordinates: coordinates(s.Location.Coordinates),
		},
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type HistoryEntryResponse struct {
	Cursor   int       `json:"cursor"`
	PlaceID  string    `json:"place_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Distance string    `json:"distance,omitempty"`
	Duration string    `json:"duration,omitempty"`
	ShownAt  time.Time `json:"shown_at"`
}

type HistoryResponse struct {
	SessionID string                 `json:"session_id"`
	Places    []HistoryEntryResponse `json:"places"`
}

func NewHistoryResponse(sessionID string, entries []ports.WalkEntry) HistoryResponse {
	res := HistoryResponse{
		SessionID: sessionID,
		Places:    make([]HistoryEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		res.Places = append(res.Places, HistoryEntryResponse{
			Cursor:   e.Cursor,
			PlaceID:  e.PlaceID,
			Name:     e.Name,
			Category: e.Category,
			Distance: e.Distance,
			Duration: e.Duration,
			ShownAt:  e.ShownAt,
		})
	}
	return res
}
