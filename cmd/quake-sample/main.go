// Command quake-sample writes a synthetic earthquake dataset as CSV, the same
// data the server loads for "sample data".
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/quake-predictor/internal/dataset"
	"github.com/mr1hm/quake-predictor/internal/ingestion"
	"github.com/mr1hm/quake-predictor/internal/logging"
	"github.com/mr1hm/quake-predictor/internal/simulator"
)

func main() {
	count := flag.Int("count", dataset.DefaultSampleSize, "number of records to generate")
	seed := flag.Uint64("seed", 0, "PCG seed for a reproducible dataset (0 draws a random one)")
	out := flag.String("out", "-", "output file, - for stdout")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logging.SetupWriter(os.Stderr, *level)

	var rng simulator.Source = simulator.Entropy
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, *seed))
	}

	records := dataset.GenerateSample(rng, clockwork.NewRealClock(), *count)

	var w io.Writer = os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			logging.Fatalf("failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	if err := ingestion.WriteCSV(w, records); err != nil {
		logging.Fatalf("failed to write csv: %v", err)
	}
	slog.Info("sample written", "count", len(records), "out", *out, "seed", *seed)

	for _, b := range dataset.Histogram(records) {
		fmt.Fprintf(os.Stderr, "%-8s %4d %s\n", b.Label, b.Count, strings.Repeat("#", b.Count))
	}
}
