package google

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"context"
	"fmt"
	"net/url"
	"strings"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// ReverseGeocode returns a locality-level name for c.
//
// Google orders reverse-geocode results from most to least specific; the
// first is usually a street address, so the second result (typically the
// neighbourhood or town) is used as the display name.
func (c *Client) ReverseGeocode(ctx context.Context, coords domain.Coordinates) (_ string, err error) {
	defer obs.Time(ctx, "google.ReverseGeocode")(&err)

	q := url.Values{}
	q.Set("latlng", coords.String())

	var decoded geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", q, &decoded); err != nil {
		return "", fmt.Errorf("reverse geocode: %w: %w", domain.ErrGeocodeFailed, err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return "", fmt.Errorf("reverse geocode %s: %w", coords, domain.ErrGeocodeNotFound)
	default:
		return "", &domain.StatusError{Kind: domain.ErrGeocodeFailed, Status: decoded.Status}
	}

	if len(decoded.Results) < 2 {
		return "", fmt.Errorf("reverse geocode %s: %w", coords, domain.ErrGeocodeNotFound)
	}

	name := strings.TrimSpace(decoded.Results[1].FormattedAddress)
	if name == "" {
		return "", fmt.Errorf("reverse geocode %s: %w", coords, domain.ErrGeocodeNotFound)
	}

	return name, nil
}
