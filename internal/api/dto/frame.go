package dto

import (
	"attractions-walker/internal/domain"
)

type StartSessionRequest struct {
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	SensorError string   `json:"sensor_error,omitempty"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RouteResponse struct {
	DistanceText    string `json:"distance_text"`
	DurationText    string `json:"duration_text"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
	Polyline        string `json:"polyline,omitempty"`
}

type PlaceResponse struct {
	PlaceID     string               `json:"place_id"`
	Name        string               `json:"name"`
	Category    string               `json:"category"`
	OpenStatus  string               `json:"open_status,omitempty"`
	Reviews     []string             `json:"reviews"`
	Review      string               `json:"review"`
	Phone       string               `json:"phone,omitempty"`
	Website     string               `json:"website,omitempty"`
	Rating      *float64             `json:"rating,omitempty"`
	RatingWidth float64              `json:"rating_width,omitempty"`
	Location    CoordinatesResponse  `json:"location"`
	Route       *RouteResponse       `json:"route,omitempty"`
	Distance    string               `json:"distance,omitempty"`
	Duration    string               `json:"duration,omitempty"`
	Marker      *CoordinatesResponse `json:"marker,omitempty"`
	Cursor      int                  `json:"cursor"`
	Total       int                  `json:"total"`
}

type ExhaustionResponse struct {
	Variant  string `json:"variant"`
	Headline string `json:"headline"`
	Advice   string `json:"advice"`
	Message  string `json:"message"`
	Total    int    `json:"total"`
}

type FrameResponse struct {
	SessionID   string              `json:"session_id"`
	State       string              `json:"state"`
	NextEnabled bool                `json:"next_enabled"`
	Heading     string              `json:"heading"`
	Notice      string              `json:"notice,omitempty"`
	MapCenter   CoordinatesResponse `json:"map_center"`
	Place       *PlaceResponse      `json:"place,omitempty"`
	Exhaustion  *ExhaustionResponse `json:"exhaustion,omitempty"`
}

func coordinates(c domain.Coordinates) CoordinatesResponse {
	return CoordinatesResponse{Lat: c.Lat, Lng: c.Lng}
}

// NewFrameResponse maps a domain frame onto its JSON shape.
func NewFrameResponse(f domain.Frame) FrameResponse {
	res := FrameResponse{
		SessionID:   f.SessionID,
		State:       string(f.State),
		NextEnabled: f.NextEnabled,
		Heading:     f.Heading,
		Notice:      f.Notice,
		MapCenter:   coordinates(f.MapCenter),
	}

	if d := f.Display; d != nil {
		p := &PlaceResponse{
			PlaceID:     d.PlaceID,
			Name:        d.Name,
			Category:    d.Category,
			OpenStatus:  d.OpenStatus,
			Reviews:     d.Reviews,
			Review:      d.Review,
			Phone:       d.Phone,
			Website:     d.Website,
			Rating:      d.Rating,
			RatingWidth: d.RatingWidth,
			Location:    coordinates(d.Location),
			Distance:    d.Distance,
			Duration:    d.Duration,
			Cursor:      d.Cursor,
			Total:       d.Total,
		}
		if p.Reviews == nil {
			p.Reviews = []string{}
		}
		if d.Route != nil {
			p.Route = &RouteResponse{
				DistanceText:    d.Route.DistanceText,
				DurationText:    d.Route.DurationText,
				DistanceMeters:  d.Route.DistanceMeters,
				DurationSeconds: d.Route.DurationSeconds,
				Polyline:        d.Route.Polyline,
			}
		}
		if d.Marker != nil {
			m := coordinates(*d.Marker)
			p.Marker = &m
		}
		res.Place = p
	}

	if e := f.Exhaustion; e != nil {
		res.Exhaustion = &ExhaustionResponse{
			Variant:  string(e.Variant),
			Headline: e.Headline,
			Advice:   e.Advice,
			Message:  e.Message(),
			Total:    e.Total,
		}
	}

	return res
}
