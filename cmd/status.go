package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yrtrans/transhub/internal/store"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

var statusCmd = &cobra.Command{
	Use:   "status [project]",
	Short: "Show projects, or the stage checkpoints of one project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	projects := projectStore()

	if len(args) == 0 {
		return listProjects(cmd, projects)
	}

	project, err := projects.Load(args[0])
	if err != nil {
		return errors.Wrap(err, "unable to load project")
	}

	ckpt, err := store.NewFileCheckpoints(project.Dir()).Load()
	if err != nil {
		return errors.Wrap(err, "unable to load checkpoint")
	}

	cmd.Printf("project:\t%s\n", project.Name)
	cmd.Printf("status:\t\t%s\n", project.Status)
	cmd.Printf("created:\t%s\n", project.Created.Format("2006-01-02 15:04:05"))
	cmd.Printf("samples:\t%d\n", len(project.Samples))
	cmd.Printf("results:\t%s\n", project.ResultsDir())
	cmd.Println("stages:")

	for _, stage := range model.Stages() {
		state := "pending"
		if ckpt.Done(stage) {
			state = "completed"
		}

		cmd.Printf("  %s\t%s\n", stage, state)
	}

	return nil
}

func listProjects(cmd *cobra.Command, projects *store.Projects) error {
	list, err := projects.List()
	if err != nil {
		return errors.Wrap(err, "unable to list projects")
	}

	if len(list) == 0 {
		cmd.Printf("no projects in %s\n", workspace)

		return nil
	}

	for _, project := range list {
		cmd.Printf("%s\t%s\t%d samples\n", project.Name, project.Status, len(project.Samples))
	}

	return nil
}
