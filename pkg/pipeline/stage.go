package pipeline

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/yrtrans/transhub/pkg/pipeline/invoker"
	"github.com/yrtrans/transhub/pkg/pipeline/model"
)

// stageExecutor runs one pipeline phase over the project.
type stageExecutor interface {
	Stage() model.Stage
	Run(ctx context.Context, info *model.StageInfo) error
}

// invoke runs one external tool and turns a non-zero exit into a
// ToolError. Tool chatter on stdout and stderr is forwarded to the options.
func (p *Pipeline) invoke(ctx context.Context, info *model.StageInfo, unit, tool string, args []string) error {
	res, err := p.invoker.Run(ctx, invoker.Command{
		Path:    tool,
		Args:    args,
		Env:     p.tools.ExtraEnv,
		Timeout: p.tools.Timeout,
	})
	if err != nil {
		return errors.Wrapf(err, "unable to invoke %s", tool)
	}

	if res.ExitCode != 0 {
		return &ToolError{
			Stage:    info.Stage,
			Unit:     unit,
			Tool:     tool,
			ExitCode: res.ExitCode,
			Stderr:   res.Stderr,
		}
	}

	for _, out := range []string{res.Stdout, res.Stderr} {
		out = strings.TrimSpace(out)
		if out == "" {
			continue
		}

		if err := p.notifyMessage(info, tool+": "+out); err != nil {
			return err
		}
	}

	return nil
}
