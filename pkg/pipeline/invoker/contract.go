// Package invoker runs the external tools the pipeline stages depend on.
// Every invocation goes through the single Invoker interface so stages can
// be exercised against a fake without real binaries.
package invoker

import (
	"context"
	"time"
)

// Command describes one external tool invocation. Tool location and
// environment are explicit: the invoker never reads or mutates process-wide
// state beyond what is listed here.
type Command struct {
	// Path is the tool executable, absolute or resolved through PATH.
	Path string
	Args []string
	// Dir is the working directory of the tool, empty keeps the current one.
	Dir string
	// Env lists extra KEY=VALUE entries appended to the environment.
	Env []string
	// Timeout bounds the invocation, zero means unbounded. An expired
	// timeout surfaces as ErrTimeout.
	Timeout time.Duration
}

// Result holds the captured output of one finished invocation. The exit
// code is the sole success criterion for callers.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Invoker runs external tools and captures their output.
type Invoker interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}
