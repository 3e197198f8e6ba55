package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result captures the outcome of one external command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes an external command in a working directory. A returned
// error means the invocation mechanism itself failed (missing binary,
// cancelled context); a nonzero exit is reported through Result only.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// Options configure the exec-backed runner.
type Options struct {
	// Stdout and Stderr receive a live copy of command output when Verbose.
	Stdout  io.Writer
	Stderr  io.Writer
	Verbose bool
	Env     []string
}

// Exec runs commands through os/exec.
type Exec struct {
	opts Options
}

// New creates an exec-backed runner with the supplied options.
func New(opts Options) *Exec {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	return &Exec{opts: opts}
}

// Run executes name with args in dir, blocking until the process exits.
func (e *Exec) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = e.opts.Env
	cmd.Stdin = nil

	var stdoutBuf, stderrBuf strings.Builder
	if e.opts.Verbose {
		cmd.Stdout = io.MultiWriter(e.opts.Stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(e.opts.Stderr, &stderrBuf)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	res := Result{
		ExitCode: exitCode(err),
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return res, err
	}
	return res, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(interface{ ExitStatus() int }); ok {
			return status.ExitStatus()
		}
		return exitErr.ExitCode()
	}
	return 1
}
