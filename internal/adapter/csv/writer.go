package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/storm-hyetograph/internal/domain"
)

// Header is the first row of every exported file.
var Header = []string{"time_minutes", "intensity_mm_per_h"}

// Writer exports hyetographs as CSV files.
// It implements pipeline.Loader.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a CSV exporter.
func NewWriter(logger *slog.Logger) *Writer {
	return &Writer{logger: logger}
}

// Load writes the hyetograph to path, replacing any existing file.
func (w *Writer) Load(ctx context.Context, h domain.Hyetograph, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create CSV file %s: %w", domain.ErrWrite, path, err)
	}

	if err := Write(f, h.Entries); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: failed to write CSV records to %s: %w", domain.ErrWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: failed to flush CSV file %s: %w", domain.ErrWrite, path, err)
	}

	w.logger.Debug("csv written", "path", path, "rows", len(h.Entries))
	return nil
}

// Write encodes the header and one row per entry.
func Write(out io.Writer, entries []domain.HyetographEntry) error {
	cw := stdcsv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{FormatValue(e.TimeMinutes), FormatValue(e.Intensity)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatValue prints v with the fewest digits that still round-trip.
// Whole numbers keep a ".0" suffix so every column reads as a real number.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsNaN(v) || math.IsInf(v, 0) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
