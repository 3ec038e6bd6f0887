package domain

import "fmt"

// Fallback location used whenever the caller cannot be located.
var DefaultCoordinates = Coordinates{Lat: 51.5072, Lng: -0.1275}

const DefaultPlaceName = "London, UK"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as "lat,lng" for Google web-service query parameters.
func (c Coordinates) String() string { return fmt.Sprintf("%f,%f", c.Lat, c.Lng) }

func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// LocationSource records which Locator path produced a Location.
type LocationSource string

const (
	SourceSensor  LocationSource = "sensor"
	SourceDefault LocationSource = "default"
)

// Best-effort position of the user and a human readable name for it.
type Location struct {
	Coordinates Coordinates
	Name        string
	Source      LocationSource
	// Notice is shown to the user when a fallback was taken.
	Notice string
}

func DefaultLocation() Location {
	return Location{
		Coordinates: DefaultCoordinates,
		Name:        DefaultPlaceName,
		Source:      SourceDefault,
	}
}

// Heading is the page title line for this location.
func (l Location) Heading() string {
	if l.Name == "" {
		return ""
	}
	return "Bored in " + l.Name + "?"
}
