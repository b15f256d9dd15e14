// Command genfixture writes reference hyetograph CSVs for every distribution
// pattern. It runs the same domain and CSV code as the CLI so regenerated
// fixtures match real output.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -out internal/adapter/csv/testdata \
//	  -a 0.75 -b 5.411 -c 1557.825 -t 10 -tt 2
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/storm-hyetograph/internal/adapter/csv"
	"github.com/couchcryptid/storm-hyetograph/internal/domain"
)

type fixtureArgs struct {
	outDir  string
	jsonOut string
	a, b, c float64
	t, tt   float64
}

func main() {
	var fa fixtureArgs
	flag.StringVar(&fa.outDir, "out", "testdata", "directory for hyetograph_<pattern>.csv files")
	flag.StringVar(&fa.jsonOut, "json-out", "", "optional path for a combined JSON fixture")
	flag.Float64Var(&fa.a, "a", 0.75, "IDF exponent A")
	flag.Float64Var(&fa.b, "b", 5.411, "IDF additive constant B")
	flag.Float64Var(&fa.c, "c", 1557.825, "IDF numerator constant C")
	flag.Float64Var(&fa.t, "t", 10, "time step in minutes")
	flag.Float64Var(&fa.tt, "tt", 2, "storm duration in hours")
	flag.Parse()

	if err := run(context.Background(), fa, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, fa fixtureArgs, stats io.Writer) error {
	params, err := domain.NewRainfallParams(fa.a, fa.b, fa.c, fa.t, fa.tt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(fa.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	writer := csv.NewWriter(slog.Default())
	fixtures := make(map[string][]domain.HyetographEntry, len(domain.Patterns()))

	for _, pattern := range domain.Patterns() {
		h := domain.Build(params, pattern)
		path := filepath.Join(fa.outDir, fmt.Sprintf("hyetograph_%s.csv", pattern))
		if err := writer.Load(ctx, h, path); err != nil {
			return fmt.Errorf("writing %s fixture: %w", pattern, err)
		}
		fixtures[pattern.String()] = h.Entries
		log.Printf("%s: %d rows -> %s", pattern, len(h.Entries), path)
	}

	if fa.jsonOut != "" {
		if err := writeJSON(fa.jsonOut, fixtures); err != nil {
			return fmt.Errorf("writing JSON fixture: %w", err)
		}
		log.Printf("wrote JSON fixture: %s", fa.jsonOut)
	}

	printStats(stats, params)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(w io.Writer, params domain.RainfallParams) {
	increments := domain.Calculate(params)

	fmt.Fprintln(w, "\n=== Stats for updating test assertions ===")
	fmt.Fprintf(w, "Steps: %d\n", len(increments))
	fmt.Fprint(w, "Increments:")
	for _, v := range increments {
		fmt.Fprintf(w, " %.3f", v)
	}
	fmt.Fprintln(w)

	for _, pattern := range domain.Patterns() {
		s := domain.Summarize(domain.Arrange(increments, pattern, params.T))
		fmt.Fprintf(w, "%-6s peak=%.3f at t=%g total=%.6f\n", pattern, s.PeakIntensity, s.PeakTimeMinutes, s.Total)
	}
}
