package ingestion

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/mr1hm/quake-predictor/internal/models"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}
	// xlsx files are zip archives
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}
)

// Decode parses an uploaded file. gzip and xz wrappers are detected by their
// magic bytes; the payload is treated as a workbook when it is a zip archive
// or named .xlsx, and as CSV otherwise.
func Decode(name string, r io.Reader) ([]models.Record, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("error reading upload: %w", err)
	}

	lower := strings.ToLower(name)
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		return Decode(strings.TrimSuffix(lower, ".gz"), gz)

	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return Decode(strings.TrimSuffix(lower, ".xz"), xr)

	case bytes.HasPrefix(head, zipMagic) || filepath.Ext(lower) == ".xlsx":
		return ParseXLSX(br)

	default:
		return ParseCSV(br)
	}
}
