package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hyetograph"

// Failure stages reported through RunFailures.
const (
	StageValidate = "validate"
	StageCompute  = "compute"
	StageWrite    = "write"
)

// Metrics holds the Prometheus counters, gauges, and histograms for hyetograph runs.
// Each instance owns its registry so a one-shot process can dump it to a
// textfile without picking up Go runtime collectors.
type Metrics struct {
	Registry *prometheus.Registry

	Runs           *prometheus.CounterVec // labels: pattern, format
	RunFailures    *prometheus.CounterVec // labels: stage={validate,compute,write}
	OutputsWritten *prometheus.CounterVec // labels: kind={png,csv}
	RunDuration    prometheus.Histogram

	// Shape of the most recent hyetograph.
	TimeSteps       prometheus.Gauge
	PeakIntensity   prometheus.Gauge
	CumulativeDepth prometheus.Gauge
}

// NewMetrics creates all run metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Hyetograph generations by distribution pattern and output format.",
		}, []string{"pattern", "format"}),
		RunFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "Failed runs by the stage that failed.",
		}, []string{"stage"}),
		OutputsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outputs_written_total",
			Help:      "Output files written by kind.",
		}, []string{"kind"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete compute-and-write run.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		TimeSteps: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "time_steps",
			Help:      "Number of blocks in the last generated hyetograph.",
		}),
		PeakIntensity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peak_intensity_mm_per_h",
			Help:      "Largest block intensity of the last generated hyetograph.",
		}),
		CumulativeDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cumulative_depth",
			Help:      "Sum of block values of the last generated hyetograph.",
		}),
	}

	m.Registry.MustRegister(
		m.Runs,
		m.RunFailures,
		m.OutputsWritten,
		m.RunDuration,
		m.TimeSteps,
		m.PeakIntensity,
		m.CumulativeDepth,
	)

	return m
}

// WriteTextfile writes the registry in the Prometheus text format, suitable
// for the node_exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
