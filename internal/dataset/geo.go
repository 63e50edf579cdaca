package dataset

import (
	"math"

	"github.com/mr1hm/quake-predictor/internal/models"
)

const (
	// colour scale bounds for the scatter plot, matching the simulator clamp
	ColorScaleMin = 4.0
	ColorScaleMax = 9.0

	minMarkerSize = 5.0
)

type GeoPoint struct {
	Latitude  float64      `json:"lat"`
	Longitude float64      `json:"lon"`
	Magnitude models.Value `json:"magnitude"`
	Depth     models.Value `json:"depth"`
	Text      string       `json:"text"`
	Size      float64      `json:"size"`
}

type GeoSeries struct {
	Points []GeoPoint `json:"points"`
	CMin   float64    `json:"cmin"`
	CMax   float64    `json:"cmax"`
}

// BuildGeoSeries turns records into scatter-map points. Records without a
// numeric epicentre cannot be placed and are skipped.
func BuildGeoSeries(records []models.Record) GeoSeries {
	points := make([]GeoPoint, 0, len(records))
	for i := range records {
		r := &records[i]
		c, ok := r.Coordinates()
		if !ok {
			continue
		}

		size := minMarkerSize
		if m, ok := r.Magnitude.Float(); ok {
			size = math.Max(minMarkerSize, m*2)
		}

		points = append(points, GeoPoint{
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
			Magnitude: r.Magnitude,
			Depth:     r.Depth,
			Text:      "Magnitude: " + r.Magnitude.Fixed(1) + "<br>Depth: " + r.Depth.Fixed(1) + " km",
			Size:      size,
		})
	}

	return GeoSeries{
		Points: points,
		CMin:   ColorScaleMin,
		CMax:   ColorScaleMax,
	}
}
