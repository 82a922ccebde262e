package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/yrtrans/transhub/pkg/pipeline/invoker"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

// CheckpointStore persists stage completion between runs.
type CheckpointStore interface {
	Load() (model.Checkpoint, error)
	Save(model.Checkpoint) error
}

// Pipeline sequences the analysis stages of one project. Completed stages
// are recorded in the checkpoint store right after they finish, so a later
// run skips them.
type Pipeline struct {
	project     *model.Project
	invoker     invoker.Invoker
	checkpoints CheckpointStore
	tools       Tools
	opts        []model.PipelineOption
	executors   []stageExecutor
}

// New creates a pipeline for the given project. Unset tool fields fall
// back to DefaultTools.
func New(project *model.Project, inv invoker.Invoker, checkpoints CheckpointStore, tools Tools, opts ...model.PipelineOption) (*Pipeline, error) {
	if project == nil {
		return nil, ErrProjectMustBeSet
	}

	if inv == nil {
		return nil, ErrInvokerMustBeSet
	}

	if checkpoints == nil {
		return nil, ErrCheckpointsMustBeSet
	}

	if err := project.Validate(); err != nil {
		return nil, errors.Wrap(err, "unable to validate project")
	}

	p := &Pipeline{
		project:     project,
		invoker:     inv,
		checkpoints: checkpoints,
		tools:       tools.withDefaults(),
		opts:        opts,
	}

	p.executors = []stageExecutor{
		&alignStage{p: p},
		&countStage{p: p},
		&diffStage{p: p},
	}

	for _, opt := range opts {
		if err := opt.New(); err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return p, nil
}

// Run executes every incomplete stage in order on a dedicated worker and
// blocks until the worker finishes. The returned run record lists the
// stages that ran and those that were skipped, also when an error is
// returned.
func (p *Pipeline) Run(ctx context.Context) (*model.RunInfo, error) {
	run := model.NewRunInfo(p.project.Name)

	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		return p.runStages(grpCtx, run)
	})

	err := grp.Wait()
	run.Finished = time.Now()

	if ferr := p.finishRun(run); ferr != nil && err == nil {
		err = ferr
	}

	return run, err
}

func (p *Pipeline) runStages(ctx context.Context, run *model.RunInfo) error {
	ckpt, err := p.checkpoints.Load()
	if err != nil {
		return errors.Wrap(err, "unable to load checkpoint")
	}

	if ckpt == nil {
		ckpt = model.Checkpoint{}
	}

	for i, exec := range p.executors {
		stage := exec.Stage()
		info := &model.StageInfo{Stage: stage, Index: i}

		// Cancellation is honored between stages, never mid-stage.
		if err := ctx.Err(); err != nil {
			return err
		}

		if ckpt.Done(stage) {
			run.Skipped = append(run.Skipped, stage)

			if err := p.notifyStageSkip(info); err != nil {
				return err
			}

			continue
		}

		if err := p.notifyPrepareStage(info); err != nil {
			return err
		}

		start := time.Now()

		if err := exec.Run(ctx, info); err != nil {
			return errors.Wrapf(err, "unable to complete stage %s", stage)
		}

		if err := p.notifyStageDone(info, time.Since(start)); err != nil {
			return err
		}

		run.Ran = append(run.Ran, stage)
		ckpt.Mark(stage)

		if err := p.checkpoints.Save(ckpt.Clone()); err != nil {
			// The run carries on with the in-memory checkpoint, a crash
			// before the end merely redoes this stage.
			if nerr := p.notifyMessage(info, fmt.Sprintf("unable to persist checkpoint: %v", err)); nerr != nil {
				return nerr
			}
		}
	}

	return nil
}

func (p *Pipeline) finishRun(run *model.RunInfo) error {
	for _, opt := range p.opts {
		if err := opt.Finish(run); err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

func (p *Pipeline) notifyPrepareStage(info *model.StageInfo) error {
	for _, opt := range p.opts {
		if err := opt.PrepareStage(info); err != nil {
			return errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return nil
}

func (p *Pipeline) notifyStageSkip(info *model.StageInfo) error {
	for _, opt := range p.opts {
		if err := opt.OnStageSkip(info); err != nil {
			return errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return nil
}

func (p *Pipeline) notifyStageDone(info *model.StageInfo, elapsed time.Duration) error {
	for _, opt := range p.opts {
		if err := opt.OnStageDone(info, elapsed); err != nil {
			return errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return nil
}

func (p *Pipeline) notifyUnitDone(info *model.StageInfo, unit string, elapsed time.Duration) error {
	for _, opt := range p.opts {
		if err := opt.OnUnitDone(info, unit, elapsed); err != nil {
			return errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return nil
}

func (p *Pipeline) notifyMessage(info *model.StageInfo, msg string) error {
	for _, opt := range p.opts {
		if err := opt.OnMessage(info, msg); err != nil {
			return errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return nil
}
