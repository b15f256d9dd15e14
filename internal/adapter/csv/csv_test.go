package csv

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/storm-hyetograph/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []domain.HyetographEntry {
	return []domain.HyetographEntry{
		{TimeMinutes: 10, Intensity: 13.465},
		{TimeMinutes: 20, Intensity: 68.369},
		{TimeMinutes: 30, Intensity: 141.179},
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10.0"},
		{120, "120.0"},
		{0, "0.0"},
		{13.465, "13.465"},
		{141.17877991666367, "141.17877991666367"},
		{0.0000001, "0.0000001"},
		{-2.5, "-2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleEntries()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"time_minutes,intensity_mm_per_h",
		"10.0,13.465",
		"20.0,68.369",
		"30.0,141.179",
	}, lines)
}

func TestWriter_Load(t *testing.T) {
	t.Run("writes header and data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test_output.csv")
		w := NewWriter(slog.Default())

		err := w.Load(context.Background(), domain.Hyetograph{Entries: sampleEntries()}, path)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "time_minutes,intensity_mm_per_h\n10.0,13.465\n20.0,68.369\n30.0,141.179\n", string(content))
	})

	t.Run("nonexistent parent directory", func(t *testing.T) {
		w := NewWriter(slog.Default())

		err := w.Load(context.Background(), domain.Hyetograph{Entries: sampleEntries()}, "/nonexistent/dir/output.csv")
		require.Error(t, err)
		require.ErrorIs(t, err, domain.ErrWrite)
		assert.Contains(t, err.Error(), "failed to create CSV file")
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cancelled.csv")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewWriter(slog.Default()).Load(ctx, domain.Hyetograph{Entries: sampleEntries()}, path)
		require.ErrorIs(t, err, context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestRead_RoundTrip(t *testing.T) {
	h := domain.Build(domain.RainfallParams{A: 0.75, B: 5.411, C: 1557.825, T: 10, TT: 2}, domain.Center)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, h.Entries))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, h.Entries, got)
}

func TestReadFile_ReferenceFixtures(t *testing.T) {
	params := domain.RainfallParams{A: 0.75, B: 5.411, C: 1557.825, T: 10, TT: 2}

	for _, pattern := range domain.Patterns() {
		t.Run(pattern.String(), func(t *testing.T) {
			got, err := ReadFile(filepath.Join("testdata", "hyetograph_"+pattern.String()+".csv"))
			require.NoError(t, err)

			want := domain.Build(params, pattern).Entries
			if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("fixture mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "missing header"},
		{"wrong header", "time,value\n10.0,1.0\n", "unexpected header"},
		{"bad time", "time_minutes,intensity_mm_per_h\nten,1.0\n", "line 2: time_minutes"},
		{"bad intensity", "time_minutes,intensity_mm_per_h\n10.0,x\n", "line 2: intensity_mm_per_h"},
		{"short row", "time_minutes,intensity_mm_per_h\n10.0\n", "read csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
