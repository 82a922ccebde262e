package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yrtrans/transhub/pkg/pipeline/invoker"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

// fakeInvoker records every command and emulates tool side effects through
// per-tool handlers keyed by the executable name.
type fakeInvoker struct {
	mu    sync.Mutex
	calls []invoker.Command
	tools map[string]func(cmd invoker.Command) (*invoker.Result, error)
}

var _ invoker.Invoker = (*fakeInvoker)(nil)

func (f *fakeInvoker) Run(ctx context.Context, cmd invoker.Command) (*invoker.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()

	if handler, ok := f.tools[cmd.Path]; ok {
		return handler(cmd)
	}

	return &invoker.Result{}, nil
}

func (f *fakeInvoker) invocations(tool string) []invoker.Command {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []invoker.Command

	for _, cmd := range f.calls {
		if cmd.Path == tool {
			out = append(out, cmd)
		}
	}

	return out
}

// argValue returns the argument following the given flag.
func argValue(args []string, flag string) string {
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ""
}

func hasArg(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}

	return false
}

// stockInvoker emulates the whole toolchain: the aligner and the sorter
// create their output files, the counter writes a plausible count table
// over the alignments it was handed and the differential tool writes a
// results table.
func stockInvoker(t *testing.T) *fakeInvoker {
	t.Helper()

	return &fakeInvoker{tools: map[string]func(cmd invoker.Command) (*invoker.Result, error){
		"hisat2": func(cmd invoker.Command) (*invoker.Result, error) {
			writeTestFile(t, argValue(cmd.Args, "-S"), "@HD\n")

			return &invoker.Result{Stderr: "10 reads; of these: all aligned"}, nil
		},
		"samtools": func(cmd invoker.Command) (*invoker.Result, error) {
			writeTestFile(t, argValue(cmd.Args, "-o"), "BAM\n")

			return &invoker.Result{}, nil
		},
		"featureCounts": func(cmd invoker.Command) (*invoker.Result, error) {
			bams := trailingArgs(cmd.Args)
			writeTestFile(t, argValue(cmd.Args, "-o"), countTable(bams))

			return &invoker.Result{}, nil
		},
		"pydeseq2": func(cmd invoker.Command) (*invoker.Result, error) {
			writeTestFile(t, argValue(cmd.Args, "--output"), diffTable())

			return &invoker.Result{}, nil
		},
	}}
}

// trailingArgs returns the positional arguments after the last flag and its
// value.
func trailingArgs(args []string) []string {
	last := 0

	for i, arg := range args {
		if strings.HasPrefix(arg, "-") {
			last = i + 1

			if arg != "-p" {
				last = i + 2
			}
		}
	}

	if last > len(args) {
		return nil
	}

	return args[last:]
}

// countTable renders a count table the way the counting tool does: a
// comment line, then gene rows with one column per alignment file and the
// trailing location metadata.
func countTable(bams []string) string {
	var sb strings.Builder

	sb.WriteString("# Program:featureCounts v2.0.1\n")
	sb.WriteString("Geneid\t" + strings.Join(bams, "\t") + "\tChr\tStart\tEnd\tStrand\n")

	counts := [][]string{
		{"g1", "100", "200"},
		{"g2", "50", "100"},
		{"g3", "0", "0"},
	}
	meta := [][]string{
		{"chr1", "1", "1000", "+"},
		{"chr1", "2000", "4000", "-"},
		{"chr2", "1", "500", "+"},
	}

	for i, row := range counts {
		fields := append([]string{row[0]}, row[1:1+len(bams)]...)
		fields = append(fields, meta[i]...)
		sb.WriteString(strings.Join(fields, "\t") + "\n")
	}

	return sb.String()
}

func diffTable() string {
	return strings.Join([]string{
		"geneid\tbaseMean\tlog2FoldChange\tlfcSE\tstat\tpvalue\tpadj",
		"g1\t150.0\t2.5\t0.3\t8.3\t0.0001\t0.001",
		"g2\t75.0\t-0.5\t0.2\t-2.5\t0.01\t0.05",
		"g3\t0\t0.1\t0.4\t0.25\t0.8\t0.9",
		"",
	}, "\n")
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	require.NotEmpty(t, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// annotation returns a minimal annotation covering the given gene ids with
// one exon of the given length each.
func annotation(genes map[string]int) string {
	var sb strings.Builder

	sb.WriteString("# genome annotation\n")

	for gene, length := range genes {
		sb.WriteString("chr1\ttest\texon\t1\t" + strconv.Itoa(length) + "\t.\t+\t.\tgene_id \"" + gene + "\";\n")
	}

	return sb.String()
}

// testProject lays out a two sample project with everything the alignment
// stage checks for on disk: read files, index files and an annotation.
func testProject(t *testing.T) *model.Project {
	t.Helper()

	ws := t.TempDir()

	readsDir := filepath.Join(ws, "reads")
	refDir := filepath.Join(ws, "ref")

	writeTestFile(t, filepath.Join(readsDir, "wt_1.fq"), "@r\nACGT\n+\nFFFF\n")
	writeTestFile(t, filepath.Join(readsDir, "wt_2.fq"), "@r\nACGT\n+\nFFFF\n")
	writeTestFile(t, filepath.Join(readsDir, "mut_1.fq"), "@r\nACGT\n+\nFFFF\n")
	writeTestFile(t, filepath.Join(refDir, "genome.1.ht2"), "idx")
	writeTestFile(t, filepath.Join(refDir, "genome.2.ht2"), "idx")
	writeTestFile(t, filepath.Join(ws, "genes.gtf"), annotation(map[string]int{"g1": 1000, "g2": 2000, "g3": 500}))

	return &model.Project{
		Name:      "exp1",
		Workspace: ws,
		Samples: []model.Sample{
			{Name: "wt", Read1: filepath.Join(readsDir, "wt_1.fq"), Read2: filepath.Join(readsDir, "wt_2.fq")},
			{Name: "mut", Read1: filepath.Join(readsDir, "mut_1.fq")},
		},
		IndexReference: filepath.Join(refDir, "genome"),
		AnnotationFile: filepath.Join(ws, "genes.gtf"),
		Design: []model.Condition{
			{Sample: "wt", Condition: "control"},
			{Sample: "mut", Condition: "treated"},
		},
		Created: time.Now(),
		Status:  model.StatusUnprocessed,
	}
}

// seedAlignments creates the alignment artifacts a previous run would have
// left behind.
func seedAlignments(t *testing.T, project *model.Project) {
	t.Helper()

	for _, sample := range project.Samples {
		writeTestFile(t, filepath.Join(project.ResultsDir(), "bam_files", sample.Name+".bam"), "BAM\n")
	}
}

// nopOption is a PipelineOption base that does nothing.
type nopOption struct{}

func (nopOption) New() error { return nil }

func (nopOption) PrepareStage(*model.StageInfo) error { return nil }

func (nopOption) OnStageSkip(*model.StageInfo) error { return nil }

func (nopOption) OnStageDone(*model.StageInfo, time.Duration) error { return nil }

func (nopOption) OnUnitDone(*model.StageInfo, string, time.Duration) error { return nil }

func (nopOption) OnMessage(*model.StageInfo, string) error { return nil }

func (nopOption) Finish(*model.RunInfo) error { return nil }

// recordingOption captures every lifecycle event for assertions.
type recordingOption struct {
	mu       sync.Mutex
	prepared []model.Stage
	skipped  []model.Stage
	done     []model.Stage
	units    []string
	messages []string
	runs     []*model.RunInfo
}

func (o *recordingOption) New() error { return nil }

func (o *recordingOption) PrepareStage(info *model.StageInfo) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.prepared = append(o.prepared, info.Stage)

	return nil
}

func (o *recordingOption) OnStageSkip(info *model.StageInfo) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.skipped = append(o.skipped, info.Stage)

	return nil
}

func (o *recordingOption) OnStageDone(info *model.StageInfo, _ time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done = append(o.done, info.Stage)

	return nil
}

func (o *recordingOption) OnUnitDone(_ *model.StageInfo, unit string, _ time.Duration) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.units = append(o.units, unit)

	return nil
}

func (o *recordingOption) OnMessage(_ *model.StageInfo, msg string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)

	return nil
}

func (o *recordingOption) Finish(run *model.RunInfo) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.runs = append(o.runs, run)

	return nil
}

func (o *recordingOption) hasMessage(substr string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, msg := range o.messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}

	return false
}

// cancelAfterStage cancels the context once the given stage completes.
type cancelAfterStage struct {
	nopOption

	stage  model.Stage
	cancel context.CancelFunc
}

func (o *cancelAfterStage) OnStageDone(info *model.StageInfo, _ time.Duration) error {
	if info.Stage == o.stage {
		o.cancel()
	}

	return nil
}

// failingOption fails a single hook with the given error.
type failingOption struct {
	nopOption

	prepareErr error
	finishErr  error
}

func (o *failingOption) PrepareStage(*model.StageInfo) error {
	return o.prepareErr
}

func (o *failingOption) Finish(*model.RunInfo) error {
	return o.finishErr
}

// failingSaveStore keeps checkpoints in memory but refuses to persist them.
type failingSaveStore struct {
	saveErr error
	ckpt    model.Checkpoint
}

func (s *failingSaveStore) Load() (model.Checkpoint, error) {
	return s.ckpt.Clone(), nil
}

func (s *failingSaveStore) Save(model.Checkpoint) error {
	return s.saveErr
}
