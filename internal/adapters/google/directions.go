package google

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"context"
	"fmt"
	"net/url"
)

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance textValue `json:"distance"`
			Duration textValue `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Directions returns the first driving route from origin to destination.
func (c *Client) Directions(ctx context.Context, origin, destination domain.Coordinates) (_ domain.Route, err error) {
	defer obs.Time(ctx, "google.Directions")(&err)

	q := url.Values{}
	q.Set("origin", origin.String())
	q.Set("destination", destination.String())
	q.Set("mode", "driving")

	var decoded directionsResponse
	if err := c.getJSON(ctx, "/directions/json", q, &decoded); err != nil {
		return domain.Route{}, fmt.Errorf("directions: %w: %w", domain.ErrRoute, err)
	}

	if decoded.Status != "OK" {
		return domain.Route{}, &domain.StatusError{Kind: domain.ErrRoute, Status: decoded.Status}
	}

	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		return domain.Route{}, fmt.Errorf("directions: %w: response has no route legs", domain.ErrRoute)
	}

	route := decoded.Routes[0]
	leg := route.Legs[0]

	return domain.Route{
		DistanceText:    leg.Distance.Text,
		DurationText:    leg.Duration.Text,
		DistanceMeters:  leg.Distance.Value,
		DurationSeconds: leg.Duration.Value,
		Polyline:        route.OverviewPolyline.Points,
	}, nil
}
