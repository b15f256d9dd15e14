package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/storm-hyetograph/internal/domain"
)

// ReadFile parses a hyetograph CSV produced by Writer.
func ReadFile(path string) ([]domain.HyetographEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses the header and rows of a hyetograph CSV.
func Read(in io.Reader) ([]domain.HyetographEntry, error) {
	cr := stdcsv.NewReader(in)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("read csv: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(Header, ",") {
		return nil, fmt.Errorf("read csv: unexpected header %q", strings.Join(header, ","))
	}

	var entries []domain.HyetographEntry
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		minutes, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: time_minutes: %w", line, err)
		}
		intensity, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: intensity_mm_per_h: %w", line, err)
		}
		entries = append(entries, domain.HyetographEntry{TimeMinutes: minutes, Intensity: intensity})
	}
	return entries, nil
}
