// Package proc runs external collaborator processes (cliphist, wl-copy, ...)
// as plain argument vectors. Nothing here goes through a shell, so arguments
// reach the child exactly as given.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrStart is wrapped by every error returned when a process could not be
// started at all (binary missing, not executable, ...).
var ErrStart = errors.New("process could not be started")

// Result is the captured outcome of a process that ran to completion.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool { return r.ExitCode == 0 }

// Err returns an *ExitError for a non-zero exit, or nil.
func (r Result) Err(name string) error {
	if r.Success() {
		return nil
	}
	return &ExitError{
		Name:   name,
		Code:   r.ExitCode,
		Stderr: strings.TrimSpace(string(r.Stderr)),
	}
}

// ExitError describes a collaborator that started but exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
	}
	return fmt.Sprintf("%s exited with status %d: %s", e.Name, e.Code, e.Stderr)
}

// Runner starts a process, feeds it stdin (which may be nil) and waits for it.
//
// A non-nil error means the process never ran. A process that ran and
// failed is reported through Result.ExitCode.
type Runner interface {
	Run(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error)
}

// Exec is the os/exec backed Runner.
type Exec struct{}

// Run implements Runner.
func (Exec) Run(ctx context.Context, stdin io.Reader, name string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case ctx.Err() != nil:
		return res, fmt.Errorf("%s: %w", name, ctx.Err())
	case errors.As(err, &exitErr):
		// -1 when killed by a signal; still a failed run, not a failed start.
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		return res, fmt.Errorf("%s: %w: %w", name, ErrStart, err)
	}
}

var _ Runner = Exec{}
