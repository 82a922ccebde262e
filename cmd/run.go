package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yrtrans/transhub/internal/config"
	"github.com/yrtrans/transhub/internal/store"
	"github.com/yrtrans/transhub/pkg/pipeline"
	"github.com/yrtrans/transhub/pkg/pipeline/drawer"
	"github.com/yrtrans/transhub/pkg/pipeline/invoker"
	"github.com/yrtrans/transhub/pkg/pipeline/measure"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

var runGraphFile string

var runCmd = &cobra.Command{
	Use:   "run <project>",
	Short: "Run the pipeline, resuming after the last completed stage",
	Long: `Run every incomplete stage of the project in order. A stage whose
checkpoint flag is already set is skipped. Interrupting the run pauses the
project, the next run picks up after the last completed stage.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runGraphFile, "graph", "", "write the stage graph with timings to this file")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logger := newLogger(cfg)

	projects := projectStore()

	project, err := projects.Load(args[0])
	if err != nil {
		return errors.Wrap(err, "unable to load project")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []model.PipelineOption{pipeline.Progress(logger)}

	if runGraphFile != "" {
		msr := measure.NewDefaultMeasure()
		opts = append(opts,
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(runGraphFile), msr),
		)
	}

	p, err := pipeline.New(project, &invoker.Exec{}, store.NewFileCheckpoints(project.Dir()), cfg.Tools(), opts...)
	if err != nil {
		return errors.Wrap(err, "unable to create pipeline")
	}

	if err := projects.SetStatus(project.Name, model.StatusProcessing); err != nil {
		return errors.Wrap(err, "unable to update project status")
	}

	run, runErr := p.Run(ctx)

	status := model.StatusCompleted

	switch {
	case errors.Is(runErr, context.Canceled):
		status = model.StatusPaused
	case runErr != nil:
		status = model.StatusError
	}

	if err := projects.SetStatus(project.Name, status); err != nil {
		logger.Warn("unable to update project status", "error", err)
	}

	if runErr != nil {
		return errors.Wrap(runErr, "unable to complete run")
	}

	logger.Info("run completed",
		"project", project.Name,
		"elapsed", run.Elapsed(),
		"ran", len(run.Ran),
		"skipped", len(run.Skipped))

	return nil
}
