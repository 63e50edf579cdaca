package simulator

import (
	"errors"
	"math"
)

var (
	ErrNotANumber     = errors.New("value is not a number")
	ErrLatitudeRange  = errors.New("latitude out of range")
	ErrLongitudeRange = errors.New("longitude out of range")
	ErrNegativeDepth  = errors.New("negative depth")
)

// InputError is a rejected form input. Message is meant for the end user.
type InputError struct {
	Field   string
	Message string
	Err     error
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Validate checks form input in the order the form reports problems: numbers
// first, then latitude, longitude and depth ranges.
func Validate(lat, lng, depth float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsNaN(depth) {
		return &InputError{
			Field:   "all",
			Message: "Please enter valid values for latitude, longitude, and depth.",
			Err:     ErrNotANumber,
		}
	}
	if lat < -90 || lat > 90 {
		return &InputError{
			Field:   "latitude",
			Message: "Latitude must be between -90 and 90 degrees.",
			Err:     ErrLatitudeRange,
		}
	}
	if lng < -180 || lng > 180 {
		return &InputError{
			Field:   "longitude",
			Message: "Longitude must be between -180 and 180 degrees.",
			Err:     ErrLongitudeRange,
		}
	}
	if depth < 0 {
		return &InputError{
			Field:   "depth",
			Message: "Depth must be a positive value.",
			Err:     ErrNegativeDepth,
		}
	}
	return nil
}
