package pipeline

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/compare"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
	"github.com/yrtrans/transhub/pkg/quant"
)

const (
	diffDirName      = "diffexpr"
	diffWorkDirName  = "work"
	combinedFileName = "diffexpr_results.txt"
	filteredFileName = "diffexpr_results_filtered.txt"
)

// diffStage runs one differential contrast per condition pair and gathers
// the per-comparison tables into the combined results. With fewer than two
// conditions in the design it falls back to a single non-contrastive
// summary.
type diffStage struct {
	p *Pipeline
}

func (s *diffStage) Stage() model.Stage {
	return model.StageDiffExpr
}

func (s *diffStage) Run(ctx context.Context, info *model.StageInfo) error {
	project := s.p.project
	resultsDir := project.ResultsDir()
	countsPath := filepath.Join(resultsDir, countsFileName)

	if _, err := os.Stat(countsPath); err != nil {
		return &MissingInputError{Stage: model.StageDiffExpr, Path: countsPath}
	}

	counts, err := quant.ReadCounts(countsPath)
	if err != nil {
		return errors.Wrap(err, "unable to read count table")
	}

	// A table produced by the counting stage has one column per project
	// sample and gets the sample names back. Any other table keeps its own
	// column names and is matched against the design below.
	if len(counts.Samples) == len(project.Samples) {
		if err := renameCountSamples(counts, project); err != nil {
			return err
		}
	}

	// Only design samples present in the count table take part.
	design := make([]model.Condition, 0, len(project.Design))

	for _, cond := range project.Design {
		if _, ok := counts.SampleIndex(cond.Sample); ok {
			design = append(design, cond)
		}
	}

	if len(design) == 0 {
		return ErrNoCommonSamples
	}

	diffDir := filepath.Join(resultsDir, diffDirName)
	workDir := filepath.Join(diffDir, diffWorkDirName)

	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return errors.Wrap(err, "unable to create differential output directory")
	}

	toolCounts, toolDesign, err := s.writeInputs(counts, design, workDir)
	if err != nil {
		return err
	}

	conditions := designConditions(design)

	var combined *resultTable

	if len(conditions) < 2 {
		combined, err = s.runSummary(ctx, info, toolCounts, toolDesign, diffDir)
	} else {
		combined, err = s.runComparisons(ctx, info, conditions, toolCounts, toolDesign, diffDir)
	}

	if err != nil {
		return err
	}

	if err := combined.write(filepath.Join(resultsDir, combinedFileName)); err != nil {
		return errors.Wrap(err, "unable to write combined results")
	}

	filtered, ok := combined.dropZeroBaseMean()
	if !ok {
		return s.p.notifyMessage(info, "differential results carry no baseMean column, skipping the filtered table")
	}

	if err := filtered.write(filepath.Join(resultsDir, filteredFileName)); err != nil {
		return errors.Wrap(err, "unable to write filtered results")
	}

	return nil
}

// writeInputs persists the count matrix and the design restricted to the
// participating samples. The differential tool reads both files once per
// invocation.
func (s *diffStage) writeInputs(counts *quant.CountMatrix, design []model.Condition, workDir string) (string, string, error) {
	countsPath := filepath.Join(workDir, "counts.txt")
	designPath := filepath.Join(workDir, "design.txt")

	if err := writeCountsSubset(countsPath, counts, design); err != nil {
		return "", "", errors.Wrap(err, "unable to write tool count table")
	}

	if err := writeDesign(designPath, design); err != nil {
		return "", "", errors.Wrap(err, "unable to write tool design table")
	}

	return countsPath, designPath, nil
}

func (s *diffStage) runComparisons(ctx context.Context, info *model.StageInfo, conditions []string, toolCounts, toolDesign, diffDir string) (*resultTable, error) {
	var combined *resultTable

	for _, pair := range compare.Pairs(conditions) {
		// Cancellation is honored between comparisons, never mid-contrast.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()

		table, err := s.runContrast(ctx, info, pair, toolCounts, toolDesign, diffDir)
		if err != nil {
			return nil, err
		}

		tagged := table.withComparison(pair.Tag())

		if s.p.tools.FoldChange > 1 {
			tagged = tagged.filterFoldChange(s.p.tools.FoldChange)
		}

		if combined == nil {
			combined = tagged
		} else if err := combined.append(tagged); err != nil {
			return nil, err
		}

		if err := s.p.notifyUnitDone(info, pair.Tag(), time.Since(start)); err != nil {
			return nil, err
		}
	}

	return combined, nil
}

// runContrast hands one comparison to the differential tool and reads the
// resulting table back. The tool output stays on disk untouched as the
// per-comparison result.
func (s *diffStage) runContrast(ctx context.Context, info *model.StageInfo, pair compare.Comparison, toolCounts, toolDesign, diffDir string) (*resultTable, error) {
	outPath := filepath.Join(diffDir, pair.Tag()+"_results.txt")

	args := []string{
		"--counts", toolCounts,
		"--design", toolDesign,
		"--condition-a", pair.A,
		"--condition-b", pair.B,
		"--output", outPath,
	}

	if err := s.p.invoke(ctx, info, pair.Tag(), s.p.tools.DiffTool, args); err != nil {
		return nil, err
	}

	table, err := readResultTable(outPath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read results for %s", pair.Tag())
	}

	return table, nil
}

func (s *diffStage) runSummary(ctx context.Context, info *model.StageInfo, toolCounts, toolDesign, diffDir string) (*resultTable, error) {
	if err := s.p.notifyMessage(info, "fewer than two conditions in the design, running a non-contrastive summary"); err != nil {
		return nil, err
	}

	outPath := filepath.Join(diffDir, "summary_results.txt")

	args := []string{
		"--counts", toolCounts,
		"--design", toolDesign,
		"--summary",
		"--output", outPath,
	}

	start := time.Now()

	if err := s.p.invoke(ctx, info, "summary", s.p.tools.DiffTool, args); err != nil {
		return nil, err
	}

	table, err := readResultTable(outPath)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read summary results")
	}

	if err := s.p.notifyUnitDone(info, "summary", time.Since(start)); err != nil {
		return nil, err
	}

	return table, nil
}

// designConditions lists the distinct condition labels in order of first
// appearance.
func designConditions(design []model.Condition) []string {
	seen := make(map[string]struct{}, len(design))

	var conditions []string

	for _, cond := range design {
		if _, ok := seen[cond.Condition]; ok {
			continue
		}

		seen[cond.Condition] = struct{}{}
		conditions = append(conditions, cond.Condition)
	}

	return conditions
}

// writeCountsSubset writes the count matrix restricted to the design
// samples, in design order.
func writeCountsSubset(path string, counts *quant.CountMatrix, design []model.Condition) error {
	cols := make([]int, 0, len(design))
	names := make([]string, 0, len(design))

	for _, cond := range design {
		idx, ok := counts.SampleIndex(cond.Sample)
		if !ok {
			return errors.Errorf("sample %s is not in the count table", cond.Sample)
		}

		cols = append(cols, idx)
		names = append(names, cond.Sample)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create count table")
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString("Geneid\t" + strings.Join(names, "\t") + "\n"); err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	for i, gene := range counts.Genes {
		fields := make([]string, 0, len(cols)+1)
		fields = append(fields, gene)

		for _, col := range cols {
			fields = append(fields, strconv.Itoa(counts.Counts[i][col]))
		}

		if _, err := w.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return errors.Wrap(err, "unable to write row")
		}
	}

	return errors.Wrap(w.Flush(), "unable to flush count table")
}

// writeDesign writes the sample to condition mapping the differential tool
// expects.
func writeDesign(path string, design []model.Condition) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "unable to create design table")
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if _, err := w.WriteString("sample\tcondition\n"); err != nil {
		return errors.Wrap(err, "unable to write header")
	}

	for _, cond := range design {
		if _, err := w.WriteString(cond.Sample + "\t" + cond.Condition + "\n"); err != nil {
			return errors.Wrap(err, "unable to write row")
		}
	}

	return errors.Wrap(w.Flush(), "unable to flush design table")
}
