package fake

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Sensor returns fixed coordinates or a fixed error.
type Sensor struct {
	Coords domain.Coordinates
	Err    error
}

func (s Sensor) Locate(ctx context.Context) (domain.Coordinates, error) {
	if s.Err != nil {
		return domain.Coordinates{}, s.Err
	}
	return s.Coords, nil
}

// Geocoder returns a fixed name or error and counts calls.
type Geocoder struct {
	Name string
	Err  error

	mu    sync.Mutex
	calls int
}

func (g *Geocoder) ReverseGeocode(ctx context.Context, c domain.Coordinates) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	if g.Err != nil {
		return "", g.Err
	}
	if g.Name == "" {
		return "", domain.ErrGeocodeNotFound
	}
	return g.Name, nil
}

func (g *Geocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// Directory replays a scripted sequence of nearby-search pages.
// Page i links to page i+1 when one exists; an empty Status means OK.
// Errs maps a page index to a transport error returned instead of the page.
type Directory struct {
	Pages []ports.NearbyPage
	Errs  map[int]error

	mu       sync.Mutex
	requests []ports.NearbySearchRequest
	fetched  []int
}

func NewDirectory(pages ...ports.NearbyPage) *Directory {
	return &Directory{Pages: pages}
}

// OKPage builds a successful page holding places.
func OKPage(places ...domain.Place) ports.NearbyPage {
	return ports.NearbyPage{Status: ports.StatusOK, Places: places}
}

func (d *Directory) SearchNearby(ctx context.Context, req ports.NearbySearchRequest) (ports.NearbyPage, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	d.mu.Unlock()
	return d.page(0)
}

func (d *Directory) NextPage(ctx context.Context, token string) (ports.NearbyPage, error) {
	i, err := strconv.Atoi(token)
	if err != nil {
		return ports.NearbyPage{}, fmt.Errorf("fake directory: bad token %q: %w", token, err)
	}
	return d.page(i)
}

func (d *Directory) page(i int) (ports.NearbyPage, error) {
	d.mu.Lock()
	d.fetched = append(d.fetched, i)
	d.mu.Unlock()

	if err, ok := d.Errs[i]; ok {
		return ports.NearbyPage{}, fmt.Errorf("fake directory page %d: %w: %w", i, domain.ErrDirectory, err)
	}
	if i >= len(d.Pages) {
		return ports.NearbyPage{Status: ports.StatusZeroResults}, nil
	}

	p := d.Pages[i]
	if p.Status == "" {
		p.Status = ports.StatusOK
	}
	p.Places = append([]domain.Place(nil), p.Places...)
	if p.OK() && i+1 < len(d.Pages) {
		p.NextPageToken = strconv.Itoa(i + 1)
	}
	return p, nil
}

// Fetched returns the page indexes requested so far, in order.
func (d *Directory) Fetched() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int(nil), d.fetched...)
}

func (d *Directory) Requests() []ports.NearbySearchRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]ports.NearbySearchRequest(nil), d.requests...)
}

// Details serves place details by place id; unknown ids fail.
type Details struct {
	ByID map[string]domain.PlaceDetails
}

func (d Details) PlaceDetails(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	details, ok := d.ByID[placeID]
	if !ok {
		return domain.PlaceDetails{}, &domain.StatusError{Kind: domain.ErrDetails, Status: "NOT_FOUND"}
	}
	return details, nil
}

// Directions returns the same route for every destination except those in Fail.
type Directions struct {
	Route domain.Route
	Fail  map[domain.Coordinates]bool

	mu      sync.Mutex
	origins []domain.Coordinates
}

func (d *Directions) Directions(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error) {
	d.mu.Lock()
	d.origins = append(d.origins, origin)
	d.mu.Unlock()

	if d.Fail[destination] {
		return domain.Route{}, &domain.StatusError{Kind: domain.ErrRoute, Status: "ZERO_RESULTS"}
	}
	return d.Route, nil
}

func (d *Directions) Origins() []domain.Coordinates {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.Coordinates(nil), d.origins...)
}
