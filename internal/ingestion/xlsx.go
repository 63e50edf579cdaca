package ingestion

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mr1hm/quake-predictor/internal/models"
)

// ParseXLSX reads the first sheet of a workbook with the same column rules
// as ParseCSV.
func ParseXLSX(r io.Reader) ([]models.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	cols := mapColumns(rows[0])
	var records []models.Record
	for _, row := range rows[1:] {
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
