// Package simulator produces the synthetic magnitude estimate shown by the
// prediction form. Nothing here is a seismic model: the value is a randomized
// formula gated on a handful of hardcoded zones.
package simulator

import (
	"math"
	"math/rand/v2"
)

const (
	MinMagnitude = 4.0
	MaxMagnitude = 9.0

	// depth contribution saturates at this depth (km)
	depthSaturationKm = 100.0
	maxDepthFactor    = 2.0

	jitterSpread = 0.8
)

// Source yields uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type entropySource struct{}

func (entropySource) Float64() float64 {
	return rand.Float64()
}

// Entropy draws from the runtime's randomly seeded generator and is safe for
// concurrent use.
var Entropy Source = entropySource{}

type Result struct {
	Magnitude     float64 `json:"magnitude"`
	InSeismicZone bool    `json:"in_seismic_zone"`
	DepthFactor   float64 `json:"depth_factor"`
	Band
}

func DepthFactor(depth float64) float64 {
	return math.Min(1, depth/depthSaturationKm) * maxDepthFactor
}

func Clamp(magnitude float64) float64 {
	return math.Max(MinMagnitude, math.Min(MaxMagnitude, magnitude))
}

// Simulate assumes validated input (see Validate). It consumes exactly two
// draws from rng: the base draw, then the jitter draw.
func Simulate(rng Source, lat, lng, depth float64) Result {
	return SimulateIn(SeismicZones, rng, lat, lng, depth)
}

func SimulateIn(zones []Region, rng Source, lat, lng, depth float64) Result {
	depthFactor := DepthFactor(depth)
	inZone := InSeismicZone(zones, lat, lng)

	var magnitude float64
	if inZone {
		magnitude = 4.0 + rng.Float64()*2.5 + depthFactor
	} else {
		magnitude = 3.0 + rng.Float64()*1.5 + depthFactor*0.5
	}
	magnitude += (rng.Float64() - 0.5) * jitterSpread
	magnitude = Clamp(magnitude)

	return Result{
		Magnitude:     magnitude,
		InSeismicZone: inZone,
		DepthFactor:   depthFactor,
		Band:          Classify(magnitude),
	}
}
