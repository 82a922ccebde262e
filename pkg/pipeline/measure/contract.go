// Package measure collects wall-clock timings of a pipeline run: one
// metric per stage, with a breakdown over the units of work inside it.
package measure

import "time"

type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

type Metric interface {
	SetDuration(elapsed time.Duration)
	Duration() time.Duration
	AddUnit(name string, elapsed time.Duration)
	AllUnits() map[string]*UnitInfo
}
