package domain

import (
	"testing"
)

func TestBuildDisplay(t *testing.T) {
	rating := 4.2
	open := false
	p := Place{
		PlaceID:  "p1",
		Name:     "Science Museum",
		Types:    []string{"amusement_park", "museum"},
		Location: Coordinates{Lat: 51.4978, Lng: -0.1745},
		Rating:   &rating,
		OpenNow:  &open,
	}
	details := PlaceDetails{
		Phone:   "+44 33 0058 0058",
		Website: "https://www.sciencemuseum.org.uk",
		Reviews: []Review{{Text: "Fun"}, {Text: "  "}, {Text: "Busy\n"}},
	}
	route := &Route{DistanceText: "4.0 km", DurationText: "12 mins"}

	d := BuildDisplay(p, details, route)

	if d.Category != "amusement park" || d.OpenStatus != "closed now" {
		t.Fatalf("category=%q open=%q", d.Category, d.OpenStatus)
	}
	if d.Review != "\"Fun\"\n\n\"Busy\"" || len(d.Reviews) != 2 {
		t.Fatalf("review = %q", d.Review)
	}
	if d.Rating == nil || *d.Rating != 4.2 || d.RatingWidth != 4.2*RatingStarWidth {
		t.Fatalf("rating=%v width=%v", d.Rating, d.RatingWidth)
	}
	if d.Distance != "4.0 km" || d.Duration != "12 mins" || d.Marker != nil {
		t.Fatalf("route fields = %q %q marker=%v", d.Distance, d.Duration, d.Marker)
	}

	// the display keeps its own copy of the route
	route.DistanceText = "changed"
	if d.Route.DistanceText != "4.0 km" {
		t.Fatal("display shares route with caller")
	}
}

func TestBuildDisplayFallbacks(t *testing.T) {
	zero := 0.0
	p := Place{PlaceID: "p2", Name: "Somewhere", Location: Coordinates{Lat: 1, Lng: 2}, Rating: &zero}

	d := BuildDisplay(p, PlaceDetails{}, nil)

	if d.Review != NoReviewsText {
		t.Fatalf("review = %q", d.Review)
	}
	if d.Rating != nil || d.RatingWidth != 0 {
		t.Fatalf("zero rating should be hidden: %v", d.Rating)
	}
	if d.Category != "" || d.OpenStatus != "" {
		t.Fatalf("category=%q open=%q", d.Category, d.OpenStatus)
	}
	if d.Route != nil || d.Marker == nil || *d.Marker != p.Location {
		t.Fatalf("route=%v marker=%v", d.Route, d.Marker)
	}
}

func TestLocationHeading(t *testing.T) {
	if got := DefaultLocation().Heading(); got != "Bored in London, UK?" {
		t.Fatalf("heading = %q", got)
	}
	if got := (Location{}).Heading(); got != "" {
		t.Fatalf("empty heading = %q", got)
	}
}
