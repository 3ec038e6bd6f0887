package domain

// Represents a single point of interest returned by the directory service.
// Places are read-only input: nothing in the walk mutates them after decoding.
type Place struct {
	PlaceID  string
	Name     string
	Types    []string
	Location Coordinates
	Vicinity string
	Rating   *float64
	OpenNow  *bool
}

// Supplementary information fetched on demand for the place being shown.
type PlaceDetails struct {
	Phone   string
	Website string
	Reviews []Review
}

type Review struct {
	Author string
	Text   string
}

// Represents driving directions from the session location to a place.
type Route struct {
	DistanceText    string
	DurationText    string
	DistanceMeters  int
	DurationSeconds int
	Polyline        string
}
