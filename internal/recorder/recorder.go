package recorder

import (
	"time"

	"RSRank/internal/model"
)

// RunSnapshot holds everything worth keeping from one ranking run.
type RunSnapshot struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Benchmark  string
	Universe   int
	Entries    []model.RankedEntry
	Failures   []model.Failure
}

// Recorder persists run history for later comparison across runs.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	Close() error
}
