package pipeline

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

var (
	ErrProjectMustBeSet     = errors.New("project must be set")
	ErrInvokerMustBeSet     = errors.New("invoker must be set")
	ErrCheckpointsMustBeSet = errors.New("checkpoint store must be set")
	ErrNoCommonSamples      = errors.New("no common samples found between count table and experimental design")
)

// ToolError reports an external tool that exited with a non-zero status.
// Stderr carries the tool diagnostics verbatim so the operator can act on
// them.
type ToolError struct {
	Stage    model.Stage
	Unit     string
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "stage %s", e.Stage)

	if e.Unit != "" {
		fmt.Fprintf(&sb, " (%s)", e.Unit)
	}

	fmt.Fprintf(&sb, ": %s exited with status %d", e.Tool, e.ExitCode)

	if out := strings.TrimSpace(e.Stderr); out != "" {
		fmt.Fprintf(&sb, ": %s", out)
	}

	return sb.String()
}

// MissingInputError reports a required input that was absent before any
// tool was spawned.
type MissingInputError struct {
	Stage model.Stage
	Path  string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("stage %s: required input %s is missing", e.Stage, e.Path)
}
