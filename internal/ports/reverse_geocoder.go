package ports

import (
	"attractions-walker/internal/domain"
	"context"
)

// Contract for turning coordinates into a display name.
type ReverseGeocoder interface {
	// Return a formatted place name. domain.ErrGeocodeNotFound signals a
	// successful lookup without a usable name.
	ReverseGeocode(ctx context.Context, c domain.Coordinates) (string, error)
}
