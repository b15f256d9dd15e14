package observability

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-hyetograph/internal/config"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.Runs.WithLabelValues("center", "png").Inc()

	assert.InDelta(t, 1.0, testutil.ToFloat64(a.Runs.WithLabelValues("center", "png")), 1e-12)
	assert.InDelta(t, 0.0, testutil.ToFloat64(b.Runs.WithLabelValues("center", "png")), 1e-12)
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.Runs.WithLabelValues("front", "csv").Inc()
	m.OutputsWritten.WithLabelValues("csv").Inc()
	m.TimeSteps.Set(12)
	m.PeakIntensity.Set(141.179)

	path := filepath.Join(t.TempDir(), "hyetograph.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `hyetograph_runs_total{format="csv",pattern="front"} 1`)
	assert.Contains(t, body, `hyetograph_outputs_written_total{kind="csv"} 1`)
	assert.Contains(t, body, "hyetograph_time_steps 12")
	assert.Contains(t, body, "hyetograph_peak_intensity_mm_per_h 141.179")
	assert.NotContains(t, body, "go_goroutines")
}

func TestWriteTextfile_MissingDir(t *testing.T) {
	m := NewMetrics()
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "out.prom"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := config.Defaults()
	cfg.LogFormat = "json"

	logger := NewLogger(&cfg)
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug), "debug disabled at warn level")
}
