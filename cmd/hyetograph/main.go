// Command hyetograph derives a design-storm hyetograph from IDF parameters
// using the alternating block method and writes it as a PNG chart, a CSV
// file, or both.
//
// Usage:
//
//	hyetograph [options] A B C T TT
//
// A, B and C are the IDF coefficients of K = C/(T^A+B), T is the time step
// in minutes and TT the storm duration in hours.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/couchcryptid/storm-hyetograph/internal/adapter/chart"
	"github.com/couchcryptid/storm-hyetograph/internal/adapter/csv"
	"github.com/couchcryptid/storm-hyetograph/internal/config"
	"github.com/couchcryptid/storm-hyetograph/internal/domain"
	"github.com/couchcryptid/storm-hyetograph/internal/observability"
	"github.com/couchcryptid/storm-hyetograph/internal/pipeline"
)

var version = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

type options struct {
	pattern     domain.DistributionPattern
	format      domain.OutputFormat
	output      string
	metricsFile string
	version     bool
	values      [5]float64
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stdout, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}
	if opts.version {
		fmt.Fprintf(stdout, "hyetograph %s\n", version)
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	metricsFile := cfg.MetricsFile
	if opts.metricsFile != "" {
		metricsFile = opts.metricsFile
	}

	p := pipeline.New(
		pipeline.NewTransformer(logger),
		chart.NewRenderer(cfg.ChartOptions(), logger),
		csv.NewWriter(logger),
		logger,
		metrics,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, runErr := p.Run(ctx, pipeline.Request{
		Params: domain.RainfallParams{
			A:  opts.values[0],
			B:  opts.values[1],
			C:  opts.values[2],
			T:  opts.values[3],
			TT: opts.values[4],
		},
		Pattern:    opts.pattern,
		Format:     opts.format,
		OutputPath: opts.output,
	})
	for _, o := range res.Outputs {
		fmt.Fprintf(stdout, "%s output: %s\n", strings.ToUpper(o.Kind), o.Path)
	}

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			logger.Debug("write metrics textfile failed", "path", metricsFile, "error", err)
			if runErr == nil {
				runErr = fmt.Errorf("failed to write metrics file %s: %w", metricsFile, err)
			}
		}
	}

	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		return exitError
	}
	return exitOK
}

// parseArgs accepts options before, between, or after the five positional
// values. Arguments that parse as numbers are always positional so that
// negative values reach parameter validation instead of the flag parser.
// Help goes to stdout; usage errors go to stderr.
func parseArgs(args []string, stdout, stderr io.Writer) (options, error) {
	var (
		opts    options
		pattern = "center"
		format  = "png"
	)

	fs := flag.NewFlagSet("hyetograph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&pattern, "pattern", pattern, "peak placement: front, center or rear")
	fs.StringVar(&opts.output, "output", "hyetograph.png", "output file path")
	fs.StringVar(&opts.output, "o", "hyetograph.png", "shorthand for -output")
	fs.StringVar(&format, "format", format, "output format: png, csv or both")
	fs.StringVar(&format, "f", format, "shorthand for -format")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	// Printed by hand after Parse so help and errors can go to different writers.
	fs.Usage = func() {}
	printUsage := func(w io.Writer) {
		fmt.Fprintln(w, "Usage: hyetograph [options] A B C T TT")
		fmt.Fprintln(w, "\nGenerate a design-storm hyetograph with the alternating block method.")
		fmt.Fprintln(w, "\nPositional arguments:")
		fmt.Fprintln(w, "  A   IDF exponent")
		fmt.Fprintln(w, "  B   IDF additive constant")
		fmt.Fprintln(w, "  C   IDF numerator constant")
		fmt.Fprintln(w, "  T   time step in minutes")
		fmt.Fprintln(w, "  TT  storm duration in hours")
		fmt.Fprintln(w, "\nOptions:")
		fs.SetOutput(w)
		fs.PrintDefaults()
		fs.SetOutput(stderr)
	}

	var positionals []string
	rest := args
	for len(rest) > 0 {
		if !strings.HasPrefix(rest[0], "-") || isNumber(rest[0]) {
			positionals = append(positionals, rest[0])
			rest = rest[1:]
			continue
		}
		before := len(rest)
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				printUsage(stdout)
			} else {
				printUsage(stderr)
			}
			return opts, err
		}
		rest = fs.Args()
		if len(rest) == before {
			positionals = append(positionals, rest[0])
			rest = rest[1:]
		}
	}

	if opts.version {
		return opts, nil
	}

	usageErr := func(format string, args ...any) error {
		fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
		printUsage(stderr)
		return errUsage
	}

	if len(positionals) != len(opts.values) {
		return opts, usageErr("expected 5 positional arguments (A B C T TT), got %d", len(positionals))
	}
	names := [...]string{"A", "B", "C", "T", "TT"}
	for i, s := range positionals {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return opts, usageErr("%s: invalid number %q", names[i], s)
		}
		opts.values[i] = v
	}

	var err error
	if opts.pattern, err = domain.ParsePattern(pattern); err != nil {
		return opts, usageErr("%v", err)
	}
	if opts.format, err = domain.ParseFormat(format); err != nil {
		return opts, usageErr("%v", err)
	}
	return opts, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
