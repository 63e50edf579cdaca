package dataset

import (
	"time"

	"github.com/mr1hm/quake-predictor/internal/models"
)

const (
	DefaultTableLimit = 50

	// DisplayTimeLayout mirrors the en-US locale date rendering.
	DisplayTimeLayout = "1/2/2006, 3:04:05 PM"
)

// timeLayouts are tried in order when a time cell is text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

type Row struct {
	Time      string `json:"time"`
	Magnitude string `json:"magnitude"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
	Depth     string `json:"depth"`
}

// TableRows formats at most limit records for display, preserving order.
// Values that are not usable numbers or timestamps are shown as-is.
func TableRows(records []models.Record, limit int, loc *time.Location) []Row {
	if loc == nil {
		loc = time.UTC
	}
	if limit < 0 {
		limit = 0
	}
	if len(records) < limit {
		limit = len(records)
	}

	rows := make([]Row, 0, limit)
	for i := range records[:limit] {
		r := &records[i]
		rows = append(rows, Row{
			Time:      formatTime(r.Time, loc),
			Magnitude: r.Magnitude.Fixed(1),
			Latitude:  r.Latitude.Fixed(3),
			Longitude: r.Longitude.Fixed(3),
			Depth:     r.Depth.Fixed(1),
		})
	}
	return rows
}

func formatTime(v models.Value, loc *time.Location) string {
	if v.Kind != models.KindString {
		return v.String()
	}
	if t, ok := ParseTime(v.Str); ok {
		return t.In(loc).Format(DisplayTimeLayout)
	}
	return v.Str
}

// ParseTime accepts the timestamp shapes seen in uploads and feeds.
// Zone-less layouts are read as UTC.
func ParseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
