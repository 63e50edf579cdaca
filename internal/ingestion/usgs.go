package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/models"
)

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string         `json:"id"`
	Properties usgsProperties `json:"properties"`
	Geometry   usgsGeometry   `json:"geometry"`
}
type usgsProperties struct {
	Mag   *float64 `json:"mag"` // null for some events
	Place string   `json:"place"`
	Time  int64    `json:"time"` // unix ms
}
type usgsGeometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

func fetchUSGS(ctx context.Context, client *http.Client, url string) ([]models.Record, error) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data usgsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("error decoding resp.Body: %w", err)
	}

	return usgsRecords(data), nil
}

func usgsRecords(data usgsResponse) []models.Record {
	records := make([]models.Record, 0, len(data.Features))
	for _, f := range data.Features {
		coords := f.Geometry.Coordinates
		if len(coords) < 2 {
			continue
		}

		r := models.Record{
			Time:      models.String(time.UnixMilli(f.Properties.Time).UTC().Format(dataset.TimeLayout)),
			Longitude: models.Number(coords[0]),
			Latitude:  models.Number(coords[1]),
		}
		if f.Properties.Mag != nil {
			r.Magnitude = models.Number(*f.Properties.Mag)
		}
		if len(coords) > 2 {
			r.Depth = models.Number(coords[2])
		}
		records = append(records, r)
	}
	return records
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error while doing request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d - status: %s", resp.StatusCode, resp.Status)
	}
	return resp, nil
}
