package ingestion

import (
	"strings"

	"github.com/mr1hm/quake-predictor/internal/models"
)

type field int

const (
	fieldUnknown field = iota
	fieldTime
	fieldMagnitude
	fieldLatitude
	fieldLongitude
	fieldDepth
)

// Header names are matched case-insensitively. The short forms are what
// USGS CSV exports use.
var columnAliases = map[string]field{
	"time":      fieldTime,
	"magnitude": fieldMagnitude,
	"mag":       fieldMagnitude,
	"latitude":  fieldLatitude,
	"lat":       fieldLatitude,
	"longitude": fieldLongitude,
	"lon":       fieldLongitude,
	"lng":       fieldLongitude,
	"depth":     fieldDepth,
}

// Header lists the columns written by WriteCSV.
var Header = []string{"Time", "Magnitude", "Latitude", "Longitude", "Depth"}

type columnMap []field

func mapColumns(header []string) columnMap {
	cols := make(columnMap, len(header))
	seen := make(map[field]bool)
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		f := columnAliases[strings.ToLower(strings.TrimSpace(name))]
		// first matching column wins
		if f != fieldUnknown && seen[f] {
			f = fieldUnknown
		}
		seen[f] = true
		cols[i] = f
	}
	return cols
}

// record converts one row. Missing cells stay absent; extra cells are ignored.
func (c columnMap) record(row []string) models.Record {
	var r models.Record
	for i, cell := range row {
		if i >= len(c) {
			break
		}
		switch c[i] {
		case fieldTime:
			r.Time = models.Parse(cell)
		case fieldMagnitude:
			r.Magnitude = models.Parse(cell)
		case fieldLatitude:
			r.Latitude = models.Parse(cell)
		case fieldLongitude:
			r.Longitude = models.Parse(cell)
		case fieldDepth:
			r.Depth = models.Parse(cell)
		}
	}
	return r
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
