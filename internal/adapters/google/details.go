package google

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"context"
	"fmt"
	"net/url"
)

const detailsFields = "international_phone_number,website,reviews"

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		InternationalPhoneNumber string `json:"international_phone_number"`
		Website                  string `json:"website"`
		Reviews                  []struct {
			AuthorName string `json:"author_name"`
			Text       string `json:"text"`
		} `json:"reviews"`
	} `json:"result"`
}

func (c *Client) PlaceDetails(ctx context.Context, placeID string) (_ domain.PlaceDetails, err error) {
	defer obs.Time(ctx, "google.PlaceDetails")(&err)

	if placeID == "" {
		return domain.PlaceDetails{}, fmt.Errorf("place details: %w: empty place id", domain.ErrDetails)
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailsFields)

	var decoded detailsResponse
	if err := c.getJSON(ctx, "/place/details/json", q, &decoded); err != nil {
		return domain.PlaceDetails{}, fmt.Errorf("place details %q: %w: %w", placeID, domain.ErrDetails, err)
	}

	if decoded.Status != "OK" {
		return domain.PlaceDetails{}, &domain.StatusError{Kind: domain.ErrDetails, Status: decoded.Status}
	}

	out := domain.PlaceDetails{
		Phone:   decoded.Result.InternationalPhoneNumber,
		Website: decoded.Result.Website,
		Reviews: make([]domain.Review, 0, len(decoded.Result.Reviews)),
	}
	for _, r := range decoded.Result.Reviews {
		out.Reviews = append(out.Reviews, domain.Review{Author: r.AuthorName, Text: r.Text})
	}

	return out, nil
}
