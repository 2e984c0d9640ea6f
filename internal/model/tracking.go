package model

import "time"

// RunStats describes one load → filter → build pass.
type RunStats struct {
	Source          string        `json:"source"`
	SourceRecords   int           `json:"source_records"`
	FilteredRecords int           `json:"filtered_records"`
	LoadDuration    time.Duration `json:"load_duration"`
	BuildDuration   time.Duration `json:"build_duration"`
}

// ThroughputRPS returns records loaded per second, or 0 when nothing was timed.
func (s RunStats) ThroughputRPS() float64 {
	if s.LoadDuration <= 0 {
		return 0
	}
	return float64(s.SourceRecords) / s.LoadDuration.Seconds()
}
