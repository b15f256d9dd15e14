// Command validate checks an exported hyetograph CSV against the parameters
// that produced it. It recomputes the block increments and verifies the file
// structure, the time axis, that the intensities are a permutation of the
// increments, and that the blocks sit where the distribution pattern puts them.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv hyetograph.csv \
//	  -a 0.75 -b 5.411 -c 1557.825 -t 10 -tt 2 \
//	  -pattern center
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/couchcryptid/storm-hyetograph/internal/adapter/csv"
	"github.com/couchcryptid/storm-hyetograph/internal/domain"
)

const tolerance = 1e-9

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", "", "path to the hyetograph CSV to validate")
	a := flag.Float64("a", 0, "IDF exponent A")
	b := flag.Float64("b", 0, "IDF additive constant B")
	c := flag.Float64("c", 0, "IDF numerator constant C")
	t := flag.Float64("t", 0, "time step in minutes")
	tt := flag.Float64("tt", 0, "storm duration in hours")
	pattern := flag.String("pattern", "center", "distribution pattern: front, center or rear")
	flag.Parse()

	if *csvPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *csvPath, *a, *b, *c, *t, *tt, *pattern))
}

func run(out io.Writer, csvPath string, a, b, c, t, tt float64, patternName string) int {
	params, err := domain.NewRainfallParams(a, b, c, t, tt)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}
	pattern, err := domain.ParsePattern(patternName)
	if err != nil {
		fmt.Fprintf(out, "FATAL: %v\n", err)
		return 1
	}
	entries, err := csv.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load CSV: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, "=== Hyetograph Integrity Validation ===")
	fmt.Fprintln(out)

	increments := domain.Calculate(params)
	phases := []*phase{
		validateStructure(entries, params),
		validateTimeAxis(entries, params),
		validatePermutation(entries, increments),
		validatePlacement(entries, domain.Arrange(increments, pattern, params.T), pattern),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d in CSV, %d expected (pattern %s)\n", len(entries), params.StepCount(), pattern)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Structure ──

func validateStructure(entries []domain.HyetographEntry, params domain.RainfallParams) *phase {
	p := &phase{name: "Phase 1: Structure (row count)"}
	if want := params.StepCount(); len(entries) != want {
		p.errorf("row count: expected %d, got %d", want, len(entries))
	}
	for i, e := range entries {
		if math.IsNaN(e.Intensity) || math.IsInf(e.Intensity, 0) {
			p.errorf("row %d: intensity is not finite", i+1)
		}
	}
	return p
}

// ── Phase 2: Time Axis ──
// Times must be T, 2T, ..., NT*T.

func validateTimeAxis(entries []domain.HyetographEntry, params domain.RainfallParams) *phase {
	p := &phase{name: "Phase 2: Time Axis (T, 2T, ...)"}
	for i, e := range entries {
		want := params.T * float64(i+1)
		if !scalar.EqualWithinAbsOrRel(e.TimeMinutes, want, tolerance, tolerance) {
			p.errorf("row %d: time_minutes expected %g, got %g", i+1, want, e.TimeMinutes)
		}
	}
	return p
}

// ── Phase 3: Permutation ──
// The intensities must be exactly the recomputed increments in some order.

func validatePermutation(entries []domain.HyetographEntry, increments []float64) *phase {
	p := &phase{name: "Phase 3: Permutation (increment multiset)"}
	got := domain.Intensities(entries)
	if len(got) != len(increments) {
		p.errorf("cannot compare %d intensities with %d increments", len(got), len(increments))
		return p
	}

	gotSorted := slices.Clone(got)
	wantSorted := slices.Clone(increments)
	slices.Sort(gotSorted)
	slices.Sort(wantSorted)
	for i := range wantSorted {
		if !scalar.EqualWithinAbsOrRel(gotSorted[i], wantSorted[i], tolerance, tolerance) {
			p.errorf("sorted value %d: expected %.12g, got %.12g", i, wantSorted[i], gotSorted[i])
		}
	}

	if sumGot, sumWant := floats.Sum(got), floats.Sum(increments); !scalar.EqualWithinAbsOrRel(sumGot, sumWant, tolerance, tolerance) {
		p.errorf("total depth: expected %.12g, got %.12g", sumWant, sumGot)
	}
	return p
}

// ── Phase 4: Pattern Placement ──

func validatePlacement(entries, want []domain.HyetographEntry, pattern domain.DistributionPattern) *phase {
	p := &phase{name: fmt.Sprintf("Phase 4: Pattern Placement (%s)", pattern)}
	if len(entries) != len(want) {
		p.errorf("cannot compare %d rows with %d expected", len(entries), len(want))
		return p
	}
	for i := range want {
		if !scalar.EqualWithinAbsOrRel(entries[i].Intensity, want[i].Intensity, tolerance, tolerance) {
			p.errorf("row %d (t=%g): expected %.12g, got %.12g", i+1, want[i].TimeMinutes, want[i].Intensity, entries[i].Intensity)
		}
	}

	if len(entries) > 0 {
		gotPeak := floats.MaxIdx(domain.Intensities(entries))
		wantPeak := floats.MaxIdx(domain.Intensities(want))
		if gotPeak != wantPeak {
			p.errorf("peak at row %d, expected row %d", gotPeak+1, wantPeak+1)
		}
	}
	return p
}
