// Command sun-batch reads points from CSV (lat, lon and either time or
// doy/hour), computes the sun geometry of each and writes the results as CSV.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.ngs.io/sun-angles/internal/adapter/store"
	"go.ngs.io/sun-angles/internal/adapter/store/csv"
	"go.ngs.io/sun-angles/internal/log"
	"go.ngs.io/sun-angles/internal/usecase"
)

func main() {
	inPath := flag.String("in", "", "Input CSV file (required)")
	outPath := flag.String("out", "", "Output CSV file (default: stdout)")
	clock := flag.String("clock", "mean", "Solar clock for time rows: mean or apparent")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: sun-batch -in points.csv [-out results.csv] [-clock mean|apparent]")
		os.Exit(2)
	}

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err := run(*inPath, *outPath, *clock)
	if err != nil {
		log.Errorf("%v", err)
	}
	log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run computes every point of inPath and writes the results to outPath, or
// stdout when outPath is empty.
func run(inPath, outPath, clock string) error {
	points, err := csv.LoadPoints(inPath)
	if err != nil {
		return fmt.Errorf("failed to read points: %w", err)
	}
	log.Debugf("Loaded %d points from %s", len(points), inPath)

	sunUC, err := usecase.NewSunUseCase(clock, nil)
	if err != nil {
		return err
	}

	results, err := sunUC.Batch(points)
	if err != nil {
		return fmt.Errorf("failed to compute: %w", err)
	}

	if outPath == "" {
		if err := csv.WriteResults(os.Stdout, results); err != nil {
			return err
		}
	} else if err := writeResultsFile(outPath, results); err != nil {
		return err
	}

	log.Infow("batch complete", "points", len(results), "clock", sunUC.ClockName())
	return nil
}

// writeResultsFile writes results to path. The file is reported as written
// only when Close succeeds.
func writeResultsFile(path string, results []store.PointResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := csv.WriteResults(f, results); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}
