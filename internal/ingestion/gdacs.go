package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/models"
)

var (
	gdacsDepthRe     = regexp.MustCompile(`(?i)Depth:\s*([\d.]+)\s*km`)
	gdacsMagnitudeRe = regexp.MustCompile(`(?i)Magnitude\s*([\d.]+)`)
)

func fetchGDACS(ctx context.Context, client *http.Client, url string) ([]models.Record, error) {
	resp, err := get(ctx, client, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing feed: %w", err)
	}

	return gdacsRecords(feed), nil
}

// gdacsRecords keeps earthquake items only. Items without a usable position
// are dropped.
func gdacsRecords(feed *gofeed.Feed) []models.Record {
	records := make([]models.Record, 0, len(feed.Items))
	for _, item := range feed.Items {
		if !strings.EqualFold(extValue(item.Extensions, "gdacs", "eventtype"), "EQ") {
			continue
		}

		lat, lon, ok := gdacsPoint(item.Extensions)
		if !ok {
			continue
		}

		r := models.Record{
			Latitude:  models.Number(lat),
			Longitude: models.Number(lon),
		}
		if item.PublishedParsed != nil {
			r.Time = models.String(item.PublishedParsed.UTC().Format(dataset.TimeLayout))
		}

		severity := extension(item.Extensions, "gdacs", "severity")
		text := item.Description
		if severity != nil {
			text = severity.Value + " " + text
			if v, ok := parseNumber(severity.Attrs["value"]); ok {
				r.Magnitude = models.Number(v)
			}
		}
		if r.Magnitude.IsAbsent() {
			if m := gdacsMagnitudeRe.FindStringSubmatch(text); m != nil {
				if v, ok := parseNumber(m[1]); ok {
					r.Magnitude = models.Number(v)
				}
			}
		}
		if m := gdacsDepthRe.FindStringSubmatch(text); m != nil {
			if v, ok := parseNumber(m[1]); ok {
				r.Depth = models.Number(v)
			}
		}

		records = append(records, r)
	}
	return records
}

// gdacsPoint reads georss:point ("lat lon"), falling back to geo:lat/geo:long.
func gdacsPoint(exts ext.Extensions) (float64, float64, bool) {
	if point := strings.Fields(extValue(exts, "georss", "point")); len(point) == 2 {
		lat, okLat := parseNumber(point[0])
		lon, okLon := parseNumber(point[1])
		if okLat && okLon {
			return lat, lon, true
		}
	}

	lat, okLat := parseNumber(extValue(exts, "geo", "lat"))
	lon, okLon := parseNumber(extValue(exts, "geo", "long"))
	return lat, lon, okLat && okLon
}

func extension(exts ext.Extensions, namespace, name string) *ext.Extension {
	values := exts[namespace][name]
	if len(values) == 0 {
		return nil
	}
	return &values[0]
}

func extValue(exts ext.Extensions, namespace, name string) string {
	if e := extension(exts, namespace, name); e != nil {
		return strings.TrimSpace(e.Value)
	}
	return ""
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
