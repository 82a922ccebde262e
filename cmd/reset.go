package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yrtrans/transhub/internal/store"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

var resetStage string

var resetCmd = &cobra.Command{
	Use:   "reset <project>",
	Short: "Clear stage checkpoints so they run again",
	Long: `Clear the checkpoint flags of a project. With --stage, the given stage
and every stage after it are cleared, earlier stages keep their flag.
Without it the whole checkpoint is cleared.`,
	Args: cobra.ExactArgs(1),
	RunE: runReset,
}

func init() {
	resetCmd.Flags().StringVar(&resetStage, "stage", "", "first stage to clear (align, count or diffexpr)")

	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	projects := projectStore()

	project, err := projects.Load(args[0])
	if err != nil {
		return errors.Wrap(err, "unable to load project")
	}

	ckpts := store.NewFileCheckpoints(project.Dir())

	ckpt := model.Checkpoint{}

	if resetStage != "" {
		stage := model.Stage(resetStage)
		if !stage.Valid() {
			return errors.Errorf("unknown stage %q", resetStage)
		}

		ckpt, err = ckpts.Load()
		if err != nil {
			return errors.Wrap(err, "unable to load checkpoint")
		}

		// Later stages depend on the outputs of the cleared one, so they
		// are cleared with it.
		clearing := false

		for _, s := range model.Stages() {
			if s == stage {
				clearing = true
			}

			if clearing {
				ckpt.Clear(s)
			}
		}
	}

	if err := ckpts.Save(ckpt); err != nil {
		return errors.Wrap(err, "unable to save checkpoint")
	}

	if err := projects.SetStatus(project.Name, model.StatusUnprocessed); err != nil {
		return errors.Wrap(err, "unable to update project status")
	}

	cmd.Printf("reset %s\n", project.Name)

	return nil
}
