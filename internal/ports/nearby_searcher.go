package ports

import (
	"attractions-walker/internal/domain"
	"context"
)

type NearbySearchRequest struct {
	Location domain.Coordinates
	RadiusM  int
	Types    []string
}

// One page of nearby search results.
type NearbyPage struct {
	Status        string
	Places        []domain.Place
	NextPageToken string
}

func (p NearbyPage) OK() bool { return p.Status == StatusOK }

func (p NearbyPage) HasNextPage() bool { return p.NextPageToken != "" }

const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// Port: the paged points-of-interest directory.
type NearbySearcher interface {
	// Return the first page of results for the request.
	// A non-OK page status is reported in the page, not as an error;
	// errors are reserved for transport and decoding failures.
	SearchNearby(ctx context.Context, req NearbySearchRequest) (NearbyPage, error)
	// Return the page referenced by a token from a previous page.
	NextPage(ctx context.Context, token string) (NearbyPage, error)
}
