package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yrtrans/transhub/pkg/pipeline/drawer"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Write the stage graph to a DOT file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func runGraph(cmd *cobra.Command, args []string) error {
	d := drawer.NewDOTDrawer(args[0])

	chain := []string{"start"}
	for _, stage := range model.Stages() {
		chain = append(chain, string(stage))
	}

	chain = append(chain, "end")

	for i, name := range chain {
		if err := d.AddStage(name); err != nil {
			return errors.Wrap(err, "unable to add stage")
		}

		if i > 0 {
			if err := d.AddLink(chain[i-1], name); err != nil {
				return errors.Wrap(err, "unable to link stages")
			}
		}
	}

	if err := d.Draw(); err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	cmd.Printf("wrote %s\n", args[0])

	return nil
}
