package ingestion

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/mr1hm/quake-predictor/internal/models"
)

// ErrEmptyFile means the file had a header but no data rows, or nothing at all.
var ErrEmptyFile = errors.New("file contains no records")

// ParseCSV reads a header row followed by data rows. Rows may be shorter or
// longer than the header; blank lines are skipped.
func ParseCSV(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("error reading csv header: %w", err)
	}
	cols := mapColumns(header)

	var records []models.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading csv: %w", err)
		}
		if blank(row) {
			continue
		}
		records = append(records, cols.record(row))
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

// WriteCSV writes records under Header, numbers in shortest form.
func WriteCSV(w io.Writer, records []models.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Time.String(),
			r.Magnitude.String(),
			r.Latitude.String(),
			r.Longitude.String(),
			r.Depth.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
