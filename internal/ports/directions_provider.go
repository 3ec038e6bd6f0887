package ports

import (
	"attractions-walker/internal/domain"
	"context"
)

// Contract for retrieving a driving route between two points.
type DirectionsProvider interface {
	Directions(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error)
}
