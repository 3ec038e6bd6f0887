package ports

import (
	"attractions-walker/internal/domain"
	"context"
)

// Contract for obtaining the user's current position.
type LocationSensor interface {
	// Return the sensed coordinates, or one of domain.ErrSensorUnavailable,
	// domain.ErrSensorDenied, domain.ErrSensorFailed.
	Locate(ctx context.Context) (domain.Coordinates, error)
}
