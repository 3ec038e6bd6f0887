package ports

import (
	"attractions-walker/internal/domain"
	"context"
)

type PlaceDetailsProvider interface {
	PlaceDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error)
}
