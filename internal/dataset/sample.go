package dataset

import (
	"math"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/quake-predictor/internal/models"
	"github.com/mr1hm/quake-predictor/internal/simulator"
)

const (
	DefaultSampleSize = 100

	sampleWindow = 30 * 24 * time.Hour

	// ISO-8601 with milliseconds, always UTC
	TimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

type sampleEvent struct {
	at     time.Time
	record models.Record
}

// GenerateSample builds count synthetic records spread over the last 30 days,
// newest first. Locations are drawn from three bands that roughly follow the
// seismic zones; magnitudes and depths are skewed low by squaring draws.
func GenerateSample(rng simulator.Source, clock clockwork.Clock, count int) []models.Record {
	if count <= 0 {
		return []models.Record{}
	}

	now := clock.Now()
	events := make([]sampleEvent, 0, count)

	for i := 0; i < count; i++ {
		at := now.Add(-time.Duration(rng.Float64() * float64(sampleWindow))).Truncate(time.Millisecond)

		var lat, lng float64
		region := rng.Float64()
		switch {
		case region < 0.4:
			lat = rng.Float64()*130 - 60
			lng = rng.Float64()*115 - 180
		case region < 0.7:
			lat = rng.Float64()*25 + 20
			lng = rng.Float64()*160 - 10
		default:
			lat = rng.Float64()*130 - 60
			lng = rng.Float64()*20 - 45
		}

		magnitude := 4.0 + rng.Float64()*rng.Float64()*5.0
		depth := math.Pow(rng.Float64(), 2) * 200

		events = append(events, sampleEvent{
			at: at,
			record: models.Record{
				Time:      models.String(at.UTC().Format(TimeLayout)),
				Magnitude: models.Number(magnitude),
				Latitude:  models.Number(lat),
				Longitude: models.Number(lng),
				Depth:     models.Number(depth),
			},
		})
	}

	slices.SortStableFunc(events, func(a, b sampleEvent) int {
		return b.at.Compare(a.at)
	})

	records := make([]models.Record, len(events))
	for i, e := range events {
		records[i] = e.record
	}
	return records
}
