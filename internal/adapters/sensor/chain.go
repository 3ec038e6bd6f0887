package sensor

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"errors"
)

// Chain asks each sensor in turn and returns the first position found.
// Only "unavailable" moves on to the next sensor; a denial or hard failure
// from an earlier sensor is final.
type Chain []ports.LocationSensor

func (c Chain) Locate(ctx context.Context) (domain.Coordinates, error) {
	err := error(domain.ErrSensorUnavailable)
	for _, s := range c {
		var coords domain.Coordinates
		coords, err = s.Locate(ctx)
		if err == nil {
			return coords, nil
		}
		if !errors.Is(err, domain.ErrSensorUnavailable) {
			return domain.Coordinates{}, err
		}
	}
	return domain.Coordinates{}, err
}
