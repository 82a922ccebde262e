package measure

import (
	"time"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	return nil
}

func (pm *pipelineMeasure) PrepareStage(stage *model.StageInfo) error {
	pm.AddMetric(string(stage.Stage))

	return nil
}

func (pm *pipelineMeasure) OnStageSkip(*model.StageInfo) error {
	return nil
}

func (pm *pipelineMeasure) OnStageDone(stage *model.StageInfo, elapsed time.Duration) error {
	pm.AddMetric(string(stage.Stage)).SetDuration(elapsed)

	return nil
}

func (pm *pipelineMeasure) OnUnitDone(stage *model.StageInfo, unit string, elapsed time.Duration) error {
	pm.AddMetric(string(stage.Stage)).AddUnit(unit, elapsed)

	return nil
}

func (pm *pipelineMeasure) OnMessage(*model.StageInfo, string) error {
	return nil
}

func (pm *pipelineMeasure) Finish(*model.RunInfo) error {
	return nil
}

// PipelineMeasure returns a pipeline option recording stage and unit
// durations into the given measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
