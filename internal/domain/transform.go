package domain

import "gonum.org/v1/gonum/floats"

// Arrange places descending increments into time order for the given
// pattern. Entry i ends at step*(i+1) minutes. Values are moved, never
// altered, so the output is a permutation of the input.
func Arrange(increments []float64, pattern DistributionPattern, step float64) []HyetographEntry {
	n := len(increments)
	entries := make([]HyetographEntry, n)
	for j, v := range increments {
		pos := targetIndex(j, n, pattern)
		entries[pos].Intensity = v
	}
	for i := range entries {
		entries[i].TimeMinutes = step * float64(i+1)
	}
	return entries
}

// targetIndex maps the j-th largest increment to its position in time.
//
// Center alternates around n/2: even j go right of the peak, odd j go left.
//
//	j:   0  1  2  3  4  5 ...
//	pos: c  c-1 c+1 c-2 c+2 c-3 ...
func targetIndex(j, n int, pattern DistributionPattern) int {
	switch pattern {
	case Front:
		return j
	case Rear:
		return n - 1 - j
	default:
		center := n / 2
		if j%2 == 0 {
			return center + j/2
		}
		return center - 1 - j/2
	}
}

// Build runs Calculate and Arrange for one parameter set.
func Build(p RainfallParams, pattern DistributionPattern) Hyetograph {
	return Hyetograph{
		Params:  p,
		Pattern: pattern,
		Entries: Arrange(Calculate(p), pattern, p.T),
	}
}

// Intensities returns the intensity column of the entries.
func Intensities(entries []HyetographEntry) []float64 {
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Intensity
	}
	return out
}

// Summarize computes the peak and total of an arranged hyetograph.
// The first maximum wins when several steps share the peak value.
func Summarize(entries []HyetographEntry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	values := Intensities(entries)
	peak := floats.MaxIdx(values)
	return Summary{
		Steps:           len(entries),
		PeakIntensity:   values[peak],
		PeakTimeMinutes: entries[peak].TimeMinutes,
		Total:           floats.Sum(values),
	}
}
