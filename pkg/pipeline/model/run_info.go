package model

import (
	"time"

	"github.com/google/uuid"
)

// RunInfo identifies one pipeline run and records what it did.
type RunInfo struct {
	ID       uuid.UUID
	Project  string
	Started  time.Time
	Finished time.Time
	// Ran lists the stages executed during this run, Skipped the stages
	// whose checkpoint flag was already set.
	Ran     []Stage
	Skipped []Stage
}

// NewRunInfo returns a run record for the given project with a fresh id.
func NewRunInfo(project string) *RunInfo {
	return &RunInfo{
		ID:      uuid.New(),
		Project: project,
		Started: time.Now(),
	}
}

// Elapsed returns the wall-clock duration of the run.
func (r *RunInfo) Elapsed() time.Duration {
	if r.Finished.IsZero() {
		return time.Since(r.Started)
	}

	return r.Finished.Sub(r.Started)
}
