package invoker

import (
	"bytes"
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

var ErrTimeout = errors.New("tool invocation timed out")

// Exec is the os/exec backed Invoker.
type Exec struct{}

var _ Invoker = (*Exec)(nil)

// Run executes the command and captures its output. A non-zero exit status
// is not an error here: it is reported through Result.ExitCode and judged by
// the caller. Cancellation of ctx is honoured before the process starts
// only; once spawned, the tool runs to completion or to its own timeout.
func (e *Exec) Run(ctx context.Context, cmd Command) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runCtx := context.Background()

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc

		runCtx, cancel = context.WithTimeout(runCtx, cmd.Timeout)
		defer cancel()
	}

	execCmd := exec.CommandContext(runCtx, cmd.Path, cmd.Args...)
	execCmd.Dir = cmd.Dir

	if len(cmd.Env) > 0 {
		execCmd.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer

	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()

	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, errors.Wrap(ErrTimeout, cmd.Path)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()

			return res, nil
		}

		return nil, errors.Wrapf(err, "unable to run %s", cmd.Path)
	}

	return res, nil
}
