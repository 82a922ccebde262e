package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
	"github.com/yrtrans/transhub/pkg/quant"
)

const countsFileName = "counts.txt"

// countStage invokes the counting tool once over every alignment artifact
// and derives the normalized expression tables from the fresh count table.
type countStage struct {
	p *Pipeline
}

func (s *countStage) Stage() model.Stage {
	return model.StageCount
}

func (s *countStage) Run(ctx context.Context, info *model.StageInfo) error {
	project := s.p.project
	resultsDir := project.ResultsDir()
	countsPath := filepath.Join(resultsDir, countsFileName)
	bamDir := filepath.Join(resultsDir, bamDirName)

	if _, err := os.Stat(project.AnnotationFile); err != nil {
		return &MissingInputError{Stage: model.StageCount, Path: project.AnnotationFile}
	}

	bams := make([]string, 0, len(project.Samples))
	paired := false

	for _, sample := range project.Samples {
		bam := filepath.Join(bamDir, sample.Name+".bam")

		if _, err := os.Stat(bam); err != nil {
			return &MissingInputError{Stage: model.StageCount, Path: bam}
		}

		bams = append(bams, bam)

		if sample.Paired() {
			paired = true
		}
	}

	args := []string{"-a", project.AnnotationFile, "-o", countsPath, "-T", strconv.Itoa(s.p.tools.Threads)}

	if paired {
		args = append(args, "-p")
	}

	args = append(args, bams...)

	start := time.Now()

	if err := s.p.invoke(ctx, info, "", s.p.tools.Counter, args); err != nil {
		return err
	}

	if err := s.p.notifyUnitDone(info, "counting", time.Since(start)); err != nil {
		return err
	}

	start = time.Now()

	dropped, err := s.writeExpressionTables(countsPath)
	if err != nil {
		// Expression values are derived data, losing them keeps the raw
		// counts usable.
		return s.p.notifyMessage(info, fmt.Sprintf("unable to derive expression values, keeping raw counts only: %v", err))
	}

	if dropped > 0 {
		msg := fmt.Sprintf("%d genes without an annotation length were dropped from the expression tables", dropped)
		if err := s.p.notifyMessage(info, msg); err != nil {
			return err
		}
	}

	return s.p.notifyUnitDone(info, "expression", time.Since(start))
}

// writeExpressionTables parses the count table and persists the TPM and
// FPKM matrices plus their zero-filtered variants next to it.
func (s *countStage) writeExpressionTables(countsPath string) (int, error) {
	counts, err := quant.ReadCounts(countsPath)
	if err != nil {
		return 0, errors.Wrap(err, "unable to read count table")
	}

	if err := renameCountSamples(counts, s.p.project); err != nil {
		return 0, err
	}

	lengths, err := quant.ReadGeneLengths(s.p.project.AnnotationFile, s.p.tools.FeatureType)
	if err != nil {
		return 0, errors.Wrap(err, "unable to build gene lengths")
	}

	res, err := quant.Quantify(counts, lengths)
	if err != nil {
		return 0, errors.Wrap(err, "unable to quantify expression")
	}

	base := strings.TrimSuffix(countsPath, filepath.Ext(countsPath))

	if err := res.TPM.WriteTable(base + "_tpm.txt"); err != nil {
		return 0, errors.Wrap(err, "unable to write TPM table")
	}

	if err := res.TPM.FilterZeroRows().WriteTable(base + "_tpm_filtered.txt"); err != nil {
		return 0, errors.Wrap(err, "unable to write filtered TPM table")
	}

	if err := res.FPKM.WriteTable(base + "_fpkm.txt"); err != nil {
		return 0, errors.Wrap(err, "unable to write FPKM table")
	}

	if err := res.FPKM.FilterZeroRows().WriteTable(base + "_fpkm_filtered.txt"); err != nil {
		return 0, errors.Wrap(err, "unable to write filtered FPKM table")
	}

	return res.Dropped, nil
}

// renameCountSamples replaces the column names of the count table, which
// the counting tool sets to the alignment file paths, with the project
// sample names. The counter was fed the artifacts in project order, so the
// mapping is positional.
func renameCountSamples(counts *quant.CountMatrix, project *model.Project) error {
	if len(counts.Samples) != len(project.Samples) {
		return errors.Errorf("count table has %d sample columns, project has %d samples", len(counts.Samples), len(project.Samples))
	}

	for i, sample := range project.Samples {
		counts.Samples[i] = sample.Name
	}

	return nil
}
