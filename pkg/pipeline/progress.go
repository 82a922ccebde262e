package pipeline

import (
	"log/slog"
	"time"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

// progress logs the run lifecycle. It is the default bridge between the
// engine and the surrounding command line.
type progress struct {
	l *slog.Logger
}

var _ model.PipelineOption = (*progress)(nil)

// Progress returns a pipeline option logging every lifecycle event to the
// given logger, or to slog.Default when nil.
func Progress(l *slog.Logger) model.PipelineOption {
	if l == nil {
		l = slog.Default()
	}

	return &progress{l: l}
}

func (p *progress) New() error {
	return nil
}

func (p *progress) PrepareStage(info *model.StageInfo) error {
	p.l.Info("stage starting", "stage", info.Stage)

	return nil
}

func (p *progress) OnStageSkip(info *model.StageInfo) error {
	p.l.Info("stage already completed, skipping", "stage", info.Stage)

	return nil
}

func (p *progress) OnStageDone(info *model.StageInfo, elapsed time.Duration) error {
	p.l.Info("stage completed", "stage", info.Stage, "elapsed", elapsed)

	return nil
}

func (p *progress) OnUnitDone(info *model.StageInfo, unit string, elapsed time.Duration) error {
	p.l.Info("unit completed", "stage", info.Stage, "unit", unit, "elapsed", elapsed)

	return nil
}

func (p *progress) OnMessage(info *model.StageInfo, msg string) error {
	if info == nil {
		p.l.Info(msg)

		return nil
	}

	p.l.Info(msg, "stage", info.Stage)

	return nil
}

func (p *progress) Finish(run *model.RunInfo) error {
	p.l.Info("run finished",
		"run_id", run.ID,
		"project", run.Project,
		"elapsed", run.Elapsed(),
		"ran", len(run.Ran),
		"skipped", len(run.Skipped))

	return nil
}
