package cmd

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

var (
	initSamples    []string
	initIndex      string
	initAnnotation string
	initDesign     []string
)

var initCmd = &cobra.Command{
	Use:   "init <project>",
	Short: "Create a project in the workspace",
	Long: `Create a project directory with its descriptor. Samples are given as
name=read1 for single-end reads or name=read1,read2 for paired-end reads.
The index may be the shared prefix of the aligner index or any one of its
files.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringArrayVarP(&initSamples, "sample", "s", nil, "sample as name=read1[,read2], repeatable")
	initCmd.Flags().StringVar(&initIndex, "index", "", "aligner index prefix or one of its files")
	initCmd.Flags().StringVar(&initAnnotation, "annotation", "", "annotation file of the reference")
	initCmd.Flags().StringArrayVarP(&initDesign, "condition", "c", nil, "condition as sample=label, repeatable")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	samples, err := parseSamples(initSamples)
	if err != nil {
		return err
	}

	design, err := parseDesign(initDesign)
	if err != nil {
		return err
	}

	project := &model.Project{
		Name:           args[0],
		Workspace:      workspace,
		Samples:        samples,
		IndexReference: model.IndexPrefix(initIndex),
		AnnotationFile: initAnnotation,
		Design:         design,
		Created:        time.Now().UTC(),
		Status:         model.StatusUnprocessed,
	}

	if err := project.Validate(); err != nil {
		return errors.Wrap(err, "unable to validate project")
	}

	projects := projectStore()

	if _, err := projects.Load(project.Name); err == nil {
		return errors.Errorf("project %s already exists", project.Name)
	}

	if err := projects.Save(project); err != nil {
		return errors.Wrap(err, "unable to save project")
	}

	cmd.Printf("created project %s in %s\n", project.Name, project.Dir())

	return nil
}

func parseSamples(specs []string) ([]model.Sample, error) {
	samples := make([]model.Sample, 0, len(specs))

	for _, spec := range specs {
		name, reads, ok := strings.Cut(spec, "=")
		if !ok || name == "" || reads == "" {
			return nil, errors.Errorf("invalid sample %q, expected name=read1[,read2]", spec)
		}

		read1, read2, _ := strings.Cut(reads, ",")

		samples = append(samples, model.Sample{Name: name, Read1: read1, Read2: read2})
	}

	return samples, nil
}

func parseDesign(specs []string) ([]model.Condition, error) {
	design := make([]model.Condition, 0, len(specs))

	for _, spec := range specs {
		sample, condition, ok := strings.Cut(spec, "=")
		if !ok || sample == "" || condition == "" {
			return nil, errors.Errorf("invalid condition %q, expected sample=label", spec)
		}

		design = append(design, model.Condition{Sample: sample, Condition: condition})
	}

	return design, nil
}
