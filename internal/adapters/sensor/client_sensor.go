package sensor

import (
	"attractions-walker/internal/domain"
	"context"
	"fmt"
	"strings"
)

// Failure kinds a browser reports when its Geolocation API gives up.
const (
	FailureUnavailable = "unavailable"
	FailureDenied      = "denied"
	FailureError       = "error"
)

// ClientSensor replays what the client's own geolocation produced:
// either coordinates or a failure kind.
type ClientSensor struct {
	Coordinates *domain.Coordinates
	Failure     string
}

// Reported is true when the client supplied either a position or a failure.
func (s ClientSensor) Reported() bool {
	return s.Coordinates != nil || strings.TrimSpace(s.Failure) != ""
}

func (s ClientSensor) Locate(ctx context.Context) (domain.Coordinates, error) {
	if s.Coordinates != nil {
		if !s.Coordinates.Valid() {
			return domain.Coordinates{}, fmt.Errorf("client sensor: %w: coordinates out of range", domain.ErrSensorFailed)
		}
		return *s.Coordinates, nil
	}

	switch strings.ToLower(strings.TrimSpace(s.Failure)) {
	case FailureDenied:
		return domain.Coordinates{}, domain.ErrSensorDenied
	case FailureError:
		return domain.Coordinates{}, domain.ErrSensorFailed
	default:
		return domain.Coordinates{}, domain.ErrSensorUnavailable
	}
}
