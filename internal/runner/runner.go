// Package runner executes rendered gadget commands in an embedded shell.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/opencode-ai/gogo/internal/logging"
	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ErrEmptyCommand is returned for blank command strings.
var ErrEmptyCommand = errors.New("command is empty")

// ExitError reports a command that finished with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// Options configures a Runner.
type Options struct {
	// Dir is the working directory; empty means the current directory.
	Dir string

	// Env holds KEY=VALUE pairs added on top of the process environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner runs shell command strings.
type Runner struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Runner. Nil streams default to the process streams.
func New(opts Options) *Runner {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	return &Runner{opts: opts, logger: logging.Component("runner")}
}

// Parse checks that cmd is valid shell syntax.
func Parse(cmd string) (*syntax.File, error) {
	if strings.TrimSpace(cmd) == "" {
		return nil, ErrEmptyCommand
	}
	prog, err := syntax.NewParser(syntax.Variant(syntax.LangBash)).Parse(strings.NewReader(cmd), "")
	if err != nil {
		return nil, fmt.Errorf("parse command: %w", err)
	}
	return prog, nil
}

// Run executes cmd and waits for it. A non-zero exit status is returned as
// *ExitError; a cancelled context stops the command and returns ctx.Err().
func (r *Runner) Run(ctx context.Context, cmd string) error {
	prog, err := Parse(cmd)
	if err != nil {
		return err
	}

	dir := r.opts.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
	}

	sh, err := interp.New(
		interp.StdIO(r.opts.Stdin, r.opts.Stdout, r.opts.Stderr),
		interp.Env(r.environ()),
		interp.Dir(dir),
	)
	if err != nil {
		return fmt.Errorf("create shell: %w", err)
	}

	r.logger.Debug().Str("command", cmd).Str("dir", dir).Msg("running command")
	start := time.Now()
	err = sh.Run(ctx, prog)
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		r.logger.Debug().Dur("elapsed", elapsed).Msg("command cancelled")
		return ctxErr
	}

	var status interp.ExitStatus
	if errors.As(err, &status) {
		if status == 0 {
			return nil
		}
		r.logger.Debug().Int("code", int(status)).Dur("elapsed", elapsed).Msg("command failed")
		return &ExitError{Code: int(status)}
	}
	if err != nil {
		return fmt.Errorf("run command: %w", err)
	}

	r.logger.Debug().Dur("elapsed", elapsed).Msg("command finished")
	return nil
}

// ExitCode maps a Run error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// environ lists later pairs last so they override the process environment.
func (r *Runner) environ() expand.Environ {
	return expand.ListEnviron(append(os.Environ(), r.opts.Env...)...)
}
