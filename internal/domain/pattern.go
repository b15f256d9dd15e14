package domain

import (
	"fmt"
	"strings"
)

// DistributionPattern selects where the peak increment lands in time.
// Center is the zero value so an unset pattern means the default.
type DistributionPattern int

const (
	Center DistributionPattern = iota
	Front
	Rear
)

// Patterns lists every pattern in CLI order.
func Patterns() []DistributionPattern {
	return []DistributionPattern{Front, Center, Rear}
}

func (p DistributionPattern) String() string {
	switch p {
	case Front:
		return "front"
	case Rear:
		return "rear"
	default:
		return "center"
	}
}

// ParsePattern accepts "front", "center" or "rear" (case-insensitive).
func ParsePattern(s string) (DistributionPattern, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front":
		return Front, nil
	case "center":
		return Center, nil
	case "rear":
		return Rear, nil
	default:
		return Center, fmt.Errorf("%w: pattern %q (want front, center or rear)", ErrInvalidParameter, s)
	}
}

// OutputFormat selects which artifacts a run produces.
type OutputFormat int

const (
	FormatPNG OutputFormat = iota
	FormatCSV
	FormatBoth
)

func (f OutputFormat) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatBoth:
		return "both"
	default:
		return "png"
	}
}

// WantsPNG reports whether the format includes the chart.
func (f OutputFormat) WantsPNG() bool { return f == FormatPNG || f == FormatBoth }

// WantsCSV reports whether the format includes the data file.
func (f OutputFormat) WantsCSV() bool { return f == FormatCSV || f == FormatBoth }

// ParseFormat accepts "png", "csv" or "both" (case-insensitive).
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "csv":
		return FormatCSV, nil
	case "both":
		return FormatBoth, nil
	default:
		return FormatPNG, fmt.Errorf("%w: format %q (want png, csv or both)", ErrInvalidParameter, s)
	}
}
