package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/pipeline/measure"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

const (
	startVertex = "start"
	endVertex   = "end"
)

type pipelineDrawer struct {
	Drawer

	m         measure.Measure
	startTime time.Time
	last      string
}

func (pd *pipelineDrawer) New() error {
	if err := pd.AddStage(startVertex); err != nil {
		return errors.Wrap(err, "unable to add start vertex to drawer")
	}

	if err := pd.AddStage(endVertex); err != nil {
		return errors.Wrap(err, "unable to add end vertex to drawer")
	}

	pd.last = startVertex

	return nil
}

func (pd *pipelineDrawer) PrepareStage(stage *model.StageInfo) error {
	return pd.chain(string(stage.Stage))
}

// OnStageSkip keeps skipped stages in the drawing, they stay unlabelled.
func (pd *pipelineDrawer) OnStageSkip(stage *model.StageInfo) error {
	return pd.chain(string(stage.Stage))
}

func (pd *pipelineDrawer) chain(name string) error {
	if err := pd.AddStage(name); err != nil {
		return errors.Wrap(err, "unable to add stage to drawer")
	}

	if err := pd.AddLink(pd.last, name); err != nil {
		return errors.Wrap(err, "unable to link stage in drawer")
	}

	pd.last = name

	return nil
}

func (pd *pipelineDrawer) OnStageDone(*model.StageInfo, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) OnUnitDone(*model.StageInfo, string, time.Duration) error {
	return nil
}

func (pd *pipelineDrawer) OnMessage(*model.StageInfo, string) error {
	return nil
}

func (pd *pipelineDrawer) Finish(*model.RunInfo) error {
	if err := pd.AddLink(pd.last, endVertex); err != nil {
		return errors.Wrap(err, "unable to link end vertex in drawer")
	}

	if pd.m != nil {
		if err := pd.SetTotalTime(endVertex, pd.startTime); err != nil {
			return errors.Wrap(err, "unable to set total time")
		}

		if err := pd.AddMeasure(pd.m); err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	if err := pd.Draw(); err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer returns a pipeline option drawing the stage chain of the
// run, annotated with the timings of the given measure when set.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure, startTime: time.Now()}
}
