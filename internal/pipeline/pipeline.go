package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/storm-hyetograph/internal/domain"
	"github.com/couchcryptid/storm-hyetograph/internal/observability"
)

// Output kinds reported in Result.Outputs and the outputs_written metric.
const (
	KindPNG = "png"
	KindCSV = "csv"
)

// Transformer turns validated parameters into an arranged hyetograph.
type Transformer interface {
	Transform(ctx context.Context, params domain.RainfallParams, pattern domain.DistributionPattern) (domain.Hyetograph, error)
}

// Loader writes a hyetograph to a file.
type Loader interface {
	Load(ctx context.Context, h domain.Hyetograph, path string) error
}

// Request describes one generation run.
type Request struct {
	Params     domain.RainfallParams
	Pattern    domain.DistributionPattern
	Format     domain.OutputFormat
	OutputPath string
}

// Output is one file written by a run.
type Output struct {
	Kind string
	Path string
}

// Result is what a run produced. On a write failure it still lists the
// outputs written before the failure.
type Result struct {
	RunID       string
	Hyetograph  domain.Hyetograph
	Summary     domain.Summary
	Outputs     []Output
	GeneratedAt time.Time
	Duration    time.Duration
}

// Pipeline orchestrates validate, compute, and write for a single run.
type Pipeline struct {
	transformer Transformer
	chart       Loader
	csv         Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline with the given stages and observability.
func New(t Transformer, chart, csv Loader, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		transformer: t,
		chart:       chart,
		csv:         csv,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run validates the request, computes the hyetograph, and writes the
// requested outputs. The output directory is checked before any computation.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	start := clock.Now()
	res := Result{RunID: uuid.NewString(), GeneratedAt: start}
	log := p.logger.With("run_id", res.RunID)

	params, err := domain.NewRainfallParams(req.Params.A, req.Params.B, req.Params.C, req.Params.T, req.Params.TT)
	if err != nil {
		return res, p.fail(log, observability.StageValidate, err)
	}
	if err := CheckOutputDir(req.OutputPath); err != nil {
		return res, p.fail(log, observability.StageValidate, err)
	}

	h, err := p.transformer.Transform(ctx, params, req.Pattern)
	if err != nil {
		return res, p.fail(log, observability.StageCompute, err)
	}
	res.Hyetograph = h
	res.Summary = domain.Summarize(h.Entries)

	p.metrics.TimeSteps.Set(float64(res.Summary.Steps))
	p.metrics.PeakIntensity.Set(res.Summary.PeakIntensity)
	p.metrics.CumulativeDepth.Set(res.Summary.Total)
	log.Info("hyetograph computed",
		"pattern", req.Pattern.String(),
		"steps", res.Summary.Steps,
		"peak", res.Summary.PeakIntensity,
		"peak_time_minutes", res.Summary.PeakTimeMinutes,
		"total", res.Summary.Total,
	)

	if req.Format.WantsPNG() {
		if err := p.write(ctx, log, p.chart, h, KindPNG, req.OutputPath, &res); err != nil {
			return res, err
		}
	}
	if req.Format.WantsCSV() {
		if err := p.write(ctx, log, p.csv, h, KindCSV, CSVPath(req.OutputPath), &res); err != nil {
			return res, err
		}
	}

	res.Duration = clock.Since(start)
	p.metrics.Runs.WithLabelValues(req.Pattern.String(), req.Format.String()).Inc()
	p.metrics.RunDuration.Observe(res.Duration.Seconds())
	return res, nil
}

func (p *Pipeline) write(ctx context.Context, log *slog.Logger, l Loader, h domain.Hyetograph, kind, path string, res *Result) error {
	if err := l.Load(ctx, h, path); err != nil {
		return p.fail(log, observability.StageWrite, err)
	}
	p.metrics.OutputsWritten.WithLabelValues(kind).Inc()
	log.Info("output written", "kind", kind, "path", path)
	res.Outputs = append(res.Outputs, Output{Kind: kind, Path: path})
	return nil
}

// fail counts the failure and returns err unchanged. The caller reports it,
// so it is only logged at debug level here.
func (p *Pipeline) fail(log *slog.Logger, stage string, err error) error {
	p.metrics.RunFailures.WithLabelValues(stage).Inc()
	log.Debug("run failed", "stage", stage, "error", err)
	return err
}

// CheckOutputDir verifies that the directory containing path exists.
func CheckOutputDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: output directory does not exist: %s", domain.ErrOutputTarget, dir)
		}
		return fmt.Errorf("%w: cannot access output directory %s: %w", domain.ErrOutputTarget, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: output directory is not a directory: %s", domain.ErrOutputTarget, dir)
	}
	return nil
}

// CSVPath returns path with its extension replaced by ".csv".
// Leading dots of hidden files are not treated as an extension.
func CSVPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + ".csv"
}
