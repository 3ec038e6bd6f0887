package services

import (
	"attractions-walker/internal/domain"
	"attractions-walker/internal/ports"
	"context"
	"errors"
	"log"
)

// Locate produces the session location. It never fails: any sensor or
// geocoder problem falls back to the default coordinates and/or name, and
// the fallback is described in Location.Notice.
//
// A successful sensor reading whose reverse geocode has no usable name keeps
// the sensed coordinates with the default name. A reverse geocode that fails
// outright discards the reading.
func Locate(ctx context.Context, sensor ports.LocationSensor, geocoder ports.ReverseGeocoder) domain.Location {
	loc := domain.DefaultLocation()

	if sensor == nil {
		loc.Notice = fallbackNotice("Geolocation not supported")
		return loc
	}

	coords, err := sensor.Locate(ctx)
	if err != nil {
		log.Printf("locate: sensor fallback err=%v", err)
		if errors.Is(err, domain.ErrSensorUnavailable) {
			loc.Notice = fallbackNotice("Geolocation not supported")
		} else {
			loc.Notice = fallbackNotice("Geolocation failed")
		}
		return loc
	}

	name, err := geocoder.ReverseGeocode(ctx, coords)
	switch {
	case err == nil:
		loc.Coordinates = coords
		loc.Name = name
		loc.Source = domain.SourceSensor
	case errors.Is(err, domain.ErrGeocodeNotFound):
		log.Printf("locate: no place name for lat=%f lng=%f", coords.Lat, coords.Lng)
		loc.Coordinates = coords
		loc.Source = domain.SourceSensor
		loc.Notice = fallbackNotice("Location not found")
	default:
		log.Printf("locate: reverse geocode fallback err=%v", err)
		loc.Notice = fallbackNotice("Failed to identify your location")
	}

	return loc
}

func fallbackNotice(reason string) string {
	return reason + " ... Imagine you're in " + domain.DefaultPlaceName + "."
}
