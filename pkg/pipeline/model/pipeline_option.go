package model

import "time"

// PipelineOption defines the interface for pipeline options.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	pipelineStageOption
	pipelineUnitOption

	// Finish runs after the pipeline run is finished, whatever its outcome.
	Finish(run *RunInfo) error
}

// pipelineStageOption defines the interface for stage options at the
// pipeline level.
type pipelineStageOption interface {
	// PrepareStage runs before a stage is executed.
	PrepareStage(stage *StageInfo) error
	// OnStageSkip runs when a stage is skipped because its checkpoint flag
	// is already set.
	OnStageSkip(stage *StageInfo) error
	// OnStageDone runs after a stage completes successfully.
	OnStageDone(stage *StageInfo, elapsed time.Duration) error
}

// pipelineUnitOption defines the interface for the units of work inside a
// stage: one sample alignment, one counting call, one comparison.
type pipelineUnitOption interface {
	// OnUnitDone runs after each unit of work inside a stage.
	OnUnitDone(stage *StageInfo, unit string, elapsed time.Duration) error
	// OnMessage receives free-text progress from the running stage.
	OnMessage(stage *StageInfo, msg string) error
}
