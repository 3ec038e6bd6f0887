package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSensorUnavailable = errors.New("location sensor unavailable")
	ErrSensorDenied      = errors.New("location sensor denied")
	ErrSensorFailed      = errors.New("location sensor failed")

	ErrGeocodeNotFound = errors.New("reverse geocode: no usable name")
	ErrGeocodeFailed   = errors.New("reverse geocode failed")

	ErrDirectory = errors.New("directory search failed")
	ErrDetails   = errors.New("place details failed")
	ErrRoute     = errors.New("route failed")

	ErrSessionNotFound = errors.New("session not found")
	ErrNextDisabled    = errors.New("next is disabled until the first page arrives")
	ErrExhausted       = errors.New("session exhausted")
)

// StatusError carries a non-OK status string reported by an upstream service.
// It unwraps to the failure kind of the call that produced it.
type StatusError struct {
	Kind   error
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status %s", e.Kind, e.Status)
}

func (e *StatusError) Unwrap() error { return e.Kind }
