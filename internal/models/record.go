package models

// Record is one observed or synthetic earthquake. Fields are not required to be
// well-formed; uploads may carry text where numbers are expected.
type Record struct {
	Time      Value `json:"time"`
	Magnitude Value `json:"magnitude"`
	Latitude  Value `json:"latitude"`
	Longitude Value `json:"longitude"`
	Depth     Value `json:"depth"` // km
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Coordinates reports the epicentre when both latitude and longitude are numeric.
func (r *Record) Coordinates() (Coordinates, bool) {
	lat, ok := r.Latitude.Float()
	if !ok {
		return Coordinates{}, false
	}
	lon, ok := r.Longitude.Float()
	if !ok {
		return Coordinates{}, false
	}
	return Coordinates{Latitude: lat, Longitude: lon}, true
}
