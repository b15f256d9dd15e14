package domain

// HyetographEntry is one bar of the hyetograph: the end of a time step and
// the rainfall intensity assigned to it.
type HyetographEntry struct {
	TimeMinutes float64 `json:"time_minutes"`
	Intensity   float64 `json:"intensity_mm_per_h"`
}

// Hyetograph is a fully arranged design storm ready for export.
type Hyetograph struct {
	Params  RainfallParams
	Pattern DistributionPattern
	Entries []HyetographEntry
}

// Summary holds derived statistics used for logging and metrics.
type Summary struct {
	Steps           int
	PeakIntensity   float64
	PeakTimeMinutes float64
	Total           float64
}
