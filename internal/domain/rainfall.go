package domain

// Calculate derives the incremental rainfall depth of every time step from
// the IDF curve. The result has StepCount() values with index 0 holding the
// first (and, for 0 < A <= 1, largest) increment.
func Calculate(p RainfallParams) []float64 {
	nt := p.StepCount()
	increments := make([]float64, 0, nt)

	prev := 0.0
	for i := 1; i <= nt; i++ {
		step := float64(i)
		cum := p.Intensity(p.T*step) * step
		increments = append(increments, cum-prev)
		prev = cum
	}
	return increments
}
