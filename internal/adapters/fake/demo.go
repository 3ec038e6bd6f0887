package fake

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"fmt"
	"math"
)

type demoPlace struct {
	name    string
	kind    string
	dLat    float64
	dLng    float64
	rating  float64
	open    bool
	phone   string
	website string
	review  string
}

var demoPlaces = []demoPlace{
	{"Natural History Museum", "museum", 0.0, -0.048, 4.7, true, "+44 20 7942 5000", "https://www.nhm.ac.uk", "Dinosaurs and a blue whale."},
	{"ZSL London Zoo", "zoo", 0.028, -0.028, 4.5, true, "+44 344 225 1826", "https://www.zsl.org", "Great day out."},
	{"SEA LIFE London Aquarium", "aquarium", -0.005, -0.005, 4.2, true, "", "https://www.visitsealife.com", ""},
	{"Tate Modern", "art_gallery", 0.0, -0.0, 4.6, false, "+44 20 7887 8888", "https://www.tate.org.uk", "Turbine Hall never disappoints."},
	{"All Star Lanes", "bowling_alley", 0.011, -0.0, 4.1, true, "", "", ""},
	{"Hippodrome Casino", "casino", 0.004, -0.002, 4.0, true, "+44 20 7769 8888", "https://www.hippodromecasino.com", ""},
	{"BFI IMAX", "movie_theater", -0.003, -0.014, 4.6, true, "+44 330 333 7878", "https://www.bfi.org.uk", "Huge screen."},
	{"Thorpe Park", "amusement_park", -0.103, -0.385, 4.3, false, "", "https://www.thorpepark.com", "Queues, but worth it."},
}

// DemoDirectory returns a two-page directory of places around center and
// the details that go with them, for running the server without Google.
func DemoDirectory(center domain.Coordinates) (*Directory, Details) {
	details := Details{ByID: make(map[string]domain.PlaceDetails, len(demoPlaces))}

	var first, second []domain.Place
	for i, d := range demoPlaces {
		rating := d.rating
		open := d.open
		p := domain.Place{
			PlaceID:  fmt.Sprintf("demo-%d", i+1),
			Name:     d.name,
			Types:    []string{d.kind, "point_of_interest", "establishment"},
			Location: domain.Coordinates{Lat: center.Lat + d.dLat, Lng: center.Lng + d.dLng},
			Rating:   &rating,
			OpenNow:  &open,
		}

		pd := domain.PlaceDetails{Phone: d.phone, Website: d.website}
		if d.review != "" {
			pd.Reviews = []domain.Review{{Author: "demo", Text: d.review}}
		}
		details.ByID[p.PlaceID] = pd

		if i < len(demoPlaces)/2 {
			first = append(first, p)
		} else {
			second = append(second, p)
		}
	}

	return NewDirectory(OKPage(first...), ports.NearbyPage{Places: second}), details
}

// DemoDirections estimates a route from straight-line distance at city driving speed.
type DemoDirections struct{}

const demoSpeedKmh = 30.0

func (DemoDirections) Directions(ctx context.Context, origin, destination domain.Coordinates) (domain.Route, error) {
	meters := haversine(origin, destination)
	seconds := meters / (demoSpeedKmh * 1000 / 3600)

	return domain.Route{
		DistanceText:    fmt.Sprintf("%.1f km", meters/1000),
		DurationText:    fmt.Sprintf("%d mins", int(math.Ceil(seconds/60))),
		DistanceMeters:  int(math.Round(meters)),
		DurationSeconds: int(math.Round(seconds)),
	}, nil
}

// haversine returns the great-circle distance in metres between two points.
func haversine(a, b domain.Coordinates) float64 {
	const earthRadius = 6371000
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
