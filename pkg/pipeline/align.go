package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

const bamDirName = "bam_files"

// alignStage aligns every sample of the project one at a time and turns
// each intermediate alignment into its final sorted artifact.
type alignStage struct {
	p *Pipeline
}

func (s *alignStage) Stage() model.Stage {
	return model.StageAlign
}

func (s *alignStage) Run(ctx context.Context, info *model.StageInfo) error {
	project := s.p.project
	bamDir := filepath.Join(project.ResultsDir(), bamDirName)

	if err := os.MkdirAll(bamDir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create alignment output directory")
	}

	if err := s.checkIndex(); err != nil {
		return err
	}

	for _, sample := range project.Samples {
		// Cancellation is honored between samples, never mid-alignment.
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()

		if err := s.alignSample(ctx, info, sample, bamDir); err != nil {
			return err
		}

		if err := s.p.notifyUnitDone(info, sample.Name, time.Since(start)); err != nil {
			return err
		}
	}

	return nil
}

// checkIndex fails fast when nothing matches the index reference. The
// reference is a prefix shared by the index files, so a glob stands in for
// a plain stat.
func (s *alignStage) checkIndex() error {
	ref := s.p.project.IndexReference

	if _, err := os.Stat(ref); err == nil {
		return nil
	}

	matches, err := filepath.Glob(ref + ".*")
	if err != nil || len(matches) == 0 {
		return &MissingInputError{Stage: model.StageAlign, Path: ref}
	}

	return nil
}

func (s *alignStage) alignSample(ctx context.Context, info *model.StageInfo, sample model.Sample, bamDir string) error {
	reads := []string{sample.Read1}
	if sample.Paired() {
		reads = append(reads, sample.Read2)
	}

	for _, read := range reads {
		if _, err := os.Stat(read); err != nil {
			return &MissingInputError{Stage: model.StageAlign, Path: read}
		}
	}

	samPath := filepath.Join(bamDir, sample.Name+".sam")
	bamPath := filepath.Join(bamDir, sample.Name+".bam")

	args := []string{"-x", s.p.project.IndexReference, "-p", strconv.Itoa(s.p.tools.Threads)}

	if sample.Paired() {
		args = append(args, "-1", sample.Read1, "-2", sample.Read2)
	} else {
		args = append(args, "-U", sample.Read1)
	}

	args = append(args, "-S", samPath)

	if err := s.p.invoke(ctx, info, sample.Name, s.p.tools.Aligner, args); err != nil {
		return err
	}

	if err := s.p.invoke(ctx, info, sample.Name, s.p.tools.SortTool, []string{"sort", "-o", bamPath, samPath}); err != nil {
		return err
	}

	// Removing the intermediate alignment is best effort.
	if err := os.Remove(samPath); err != nil {
		if nerr := s.p.notifyMessage(info, fmt.Sprintf("unable to remove intermediate alignment %s: %v", samPath, err)); nerr != nil {
			return nerr
		}
	}

	return nil
}
