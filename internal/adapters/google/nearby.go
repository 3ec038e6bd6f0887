package google

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/platform/obs"
	"attractions-walker/internal/ports"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Google hands out next_page_token before it is valid; using it too early
// yields INVALID_REQUEST. The token is polled at most this many times.
const maxTokenPolls = 4

type nearbyResponse struct {
	Status        string        `json:"status"`
	NextPageToken string        `json:"next_page_token"`
	Results       []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Vicinity string   `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	OpeningHours *struct {
		OpenNow *bool `json:"open_now"`
	} `json:"opening_hours,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

// pageCursor is what NextPageToken carries back to NextPage.
//
// The Nearby Search web service filters on a single type per request, so a
// multi-type search is walked as consecutive per-type result streams:
// Index selects the type and Token is Google's own page token within it.
type pageCursor struct {
	Lat    float64  `json:"lat"`
	Lng    float64  `json:"lng"`
	Radius int      `json:"r"`
	Types  []string `json:"t"`
	Index  int      `json:"i"`
	Token  string   `json:"p,omitempty"`
}

func (pc pageCursor) encode() (string, error) {
	b, err := json.Marshal(pc)
	if err != nil {
		return "", fmt.Errorf("encode page cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeCursor(token string) (pageCursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return pageCursor{}, fmt.Errorf("decode page cursor: %w", err)
	}
	var pc pageCursor
	if err := json.Unmarshal(b, &pc); err != nil {
		return pageCursor{}, fmt.Errorf("decode page cursor: %w", err)
	}
	if pc.Index < 0 || pc.Index >= len(pc.Types) {
		return pageCursor{}, fmt.Errorf("decode page cursor: type index %d out of range", pc.Index)
	}
	return pc, nil
}

func (pc pageCursor) moreTypes() bool { return pc.Index+1 < len(pc.Types) }

func (c *Client) SearchNearby(ctx context.Context, req ports.NearbySearchRequest) (ports.NearbyPage, error) {
	types := req.Types
	if len(types) == 0 {
		types = []string{""}
	}

	return c.fetchPage(ctx, pageCursor{
		Lat:    req.Location.Lat,
		Lng:    req.Location.Lng,
		Radius: req.RadiusM,
		Types:  types,
	})
}

func (c *Client) NextPage(ctx context.Context, token string) (ports.NearbyPage, error) {
	pc, err := decodeCursor(token)
	if err != nil {
		return ports.NearbyPage{}, fmt.Errorf("next page: %w", err)
	}
	return c.fetchPage(ctx, pc)
}

func (c *Client) fetchPage(ctx context.Context, pc pageCursor) (_ ports.NearbyPage, err error) {
	defer obs.Time(ctx, "google.NearbySearch")(&err)

	var decoded nearbyResponse
	if pc.Token == "" {
		q := url.Values{}
		q.Set("location", domain.Coordinates{Lat: pc.Lat, Lng: pc.Lng}.String())
		q.Set("radius", strconv.Itoa(pc.Radius))
		if t := pc.Types[pc.Index]; t != "" {
			q.Set("type", t)
		}
		if err := c.getJSON(ctx, "/place/nearbysearch/json", q, &decoded); err != nil {
			return ports.NearbyPage{}, fmt.Errorf("nearby search: %w: %w", domain.ErrDirectory, err)
		}
	} else {
		decoded, err = c.awaitPageToken(ctx, pc.Token)
		if err != nil {
			return ports.NearbyPage{}, fmt.Errorf("nearby search next page: %w: %w", domain.ErrDirectory, err)
		}
	}

	page := ports.NearbyPage{
		Status: decoded.Status,
		Places: toPlaces(decoded.Results),
	}

	var next *pageCursor
	switch decoded.Status {
	case ports.StatusOK:
		if decoded.NextPageToken != "" {
			n := pc
			n.Token = decoded.NextPageToken
			next = &n
		} else if pc.moreTypes() {
			n := pc
			n.Index++
			n.Token = ""
			next = &n
		}
	case ports.StatusZeroResults:
		// An empty category is not the end of a multi-type search.
		if pc.moreTypes() {
			page.Status = ports.StatusOK
			n := pc
			n.Index++
			n.Token = ""
			next = &n
		}
	}

	if next != nil {
		page.NextPageToken, err = next.encode()
		if err != nil {
			return ports.NearbyPage{}, err
		}
	}

	return page, nil
}

// awaitPageToken fetches the page behind a Google next_page_token, waiting
// for the token to become valid first.
func (c *Client) awaitPageToken(ctx context.Context, token string) (nearbyResponse, error) {
	wait := c.pageTokenDelay
	poll := c.pageTokenDelay / 4

	var decoded nearbyResponse
	for attempt := 1; attempt <= maxTokenPolls; attempt++ {
		if err := sleep(ctx, wait); err != nil {
			return nearbyResponse{}, err
		}

		q := url.Values{}
		q.Set("pagetoken", token)

		decoded = nearbyResponse{}
		if err := c.getJSON(ctx, "/place/nearbysearch/json", q, &decoded); err != nil {
			return nearbyResponse{}, err
		}

		if decoded.Status != "INVALID_REQUEST" {
			return decoded, nil
		}

		wait = poll
		poll *= 2
	}

	return decoded, nil
}

func toPlaces(results []placeResult) []domain.Place {
	places := make([]domain.Place, 0, len(results))
	for _, r := range results {
		p := domain.Place{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Types:    r.Types,
			Vicinity: r.Vicinity,
			Location: domain.Coordinates{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			Rating: r.Rating,
		}
		if r.OpeningHours != nil {
			p.OpenNow = r.OpeningHours.OpenNow
		}
		places = append(places, p)
	}
	return places
}
