// Package drawer renders the stage chain of a run as a DOT graph, with
// timings and a heat colouring when a measure is attached.
package drawer

import (
	"time"

	"github.com/yrtrans/transhub/pkg/pipeline/measure"
)

// Drawer is an interface that defines the methods for drawing a pipeline.
type Drawer interface {
	// AddStage adds a stage to the pipeline drawer.
	AddStage(name string) error
	// AddLink adds a link between a stage and its successor.
	AddLink(parentName, childName string) error
	// Draw creates a file with the pipeline graph.
	Draw() error
	// SetTotalTime labels the stage with the time elapsed since startTime.
	SetTotalTime(name string, startTime time.Time) error
	// AddMeasure labels the graph with the timings of a run.
	AddMeasure(measure measure.Measure) error
}
