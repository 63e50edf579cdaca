package dataset

import (
	"fmt"
	"math"
	"slices"

	"github.com/mr1hm/quake-predictor/internal/models"
	"github.com/mr1hm/quake-predictor/internal/simulator"
)

const BinSize = 0.5

// Bin is a half-open magnitude interval [Value, Value+BinSize).
type Bin struct {
	Value float64         `json:"bin"`
	Label string          `json:"label"`
	Count int             `json:"count"`
	Color simulator.Color `json:"color"`
}

func BinFor(magnitude float64) float64 {
	return math.Floor(magnitude/BinSize) * BinSize
}

func BinLabel(bin float64) string {
	return fmt.Sprintf("%.1f-%.1f", bin, bin+BinSize)
}

// Histogram counts numeric magnitudes per bin, ascending by bin. Records
// without a usable magnitude are ignored.
func Histogram(records []models.Record) []Bin {
	counts := make(map[float64]int)
	for i := range records {
		m, ok := records[i].Magnitude.Float()
		if !ok {
			continue
		}
		counts[BinFor(m)]++
	}

	keys := make([]float64, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	bins := make([]Bin, 0, len(keys))
	for _, k := range keys {
		bins = append(bins, Bin{
			Value: k,
			Label: BinLabel(k),
			Count: counts[k],
			Color: simulator.Classify(k).Color,
		})
	}
	return bins
}
