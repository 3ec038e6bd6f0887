package domain

import (
	"strings"
)

// Width in pixels of one star in the rating bar.
const RatingStarWidth = 26.5

const NoReviewsText = "No Google reviews yet."

// Display is the fully resolved record handed to the rendering sink for one place.
type Display struct {
	PlaceID     string
	Name        string
	Category    string
	OpenStatus  string
	Reviews     []string
	Review      string
	Phone       string
	Website     string
	Rating      *float64
	RatingWidth float64
	Location    Coordinates

	// Route is set when directions were obtained; Marker otherwise.
	Route    *Route
	Distance string
	Duration string
	Marker   *Coordinates

	Cursor int
	Total  int
}

// Category returns the first type tag in human form, "amusement_park" -> "amusement park".
func Category(types []string) string {
	if len(types) == 0 {
		return ""
	}
	return strings.ReplaceAll(types[0], "_", " ")
}

func OpenStatus(openNow *bool) string {
	if openNow == nil {
		return ""
	}
	if *openNow {
		return "open now"
	}
	return "closed now"
}

// QuoteReviews wraps every non-empty review in double quotes; reviews without text are skipped.
func QuoteReviews(reviews []Review) []string {
	out := make([]string, 0, len(reviews))
	for _, r := range reviews {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		out = append(out, `"`+text+`"`)
	}
	return out
}

// BuildDisplay assembles the display record. A nil route means directions
// failed and the place is shown with a plain marker instead.
func BuildDisplay(p Place, details PlaceDetails, route *Route) *Display {
	d := &Display{
		PlaceID:    p.PlaceID,
		Name:       p.Name,
		Category:   Category(p.Types),
		OpenStatus: OpenStatus(p.OpenNow),
		Reviews:    QuoteReviews(details.Reviews),
		Phone:      details.Phone,
		Website:    details.Website,
		Location:   p.Location,
	}

	d.Review = strings.Join(d.Reviews, "\n\n")
	if d.Review == "" {
		d.Review = NoReviewsText
	}

	if p.Rating != nil && *p.Rating > 0 {
		rating := *p.Rating
		d.Rating = &rating
		d.RatingWidth = rating * RatingStarWidth
	}

	if route != nil {
		r := *route
		d.Route = &r
		d.Distance = r.DistanceText
		d.Duration = r.DurationText
	} else {
		marker := p.Location
		d.Marker = &marker
	}

	return d
}

// Frame is one payload for the rendering sink: either a place or the final message.
type Frame struct {
	SessionID   string
	State       SessionState
	NextEnabled bool
	Heading     string
	Notice      string
	MapCenter   Coordinates
	Display     *Display
	Exhaustion  *Exhaustion
}
