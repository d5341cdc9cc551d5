// Package proctest provides a recording proc.Runner for tests.
package proctest

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.klb.dev/cliphist-plugin/internal/proc"
)

// Call is one recorded invocation.
type Call struct {
	Name  string
	Args  []string
	Stdin []byte
}

// Argv returns the call as a single argument vector.
func (c Call) Argv() []string { return append([]string{c.Name}, c.Args...) }

// Response is what the fake returns for a command name.
type Response struct {
	Result proc.Result
	// Missing simulates a binary that cannot be started.
	Missing bool
}

// Runner records every call and answers from Responses keyed by command
// name. Unknown commands succeed with empty output.
type Runner struct {
	mu        sync.Mutex
	Responses map[string]Response
	calls     []Call
}

// New returns a Runner with the given responses.
func New(responses map[string]Response) *Runner {
	if responses == nil {
		responses = map[string]Response{}
	}
	return &Runner{Responses: responses}
}

// Run implements proc.Runner.
func (r *Runner) Run(_ context.Context, stdin io.Reader, name string, args ...string) (proc.Result, error) {
	c := Call{Name: name, Args: append([]string(nil), args...)}
	if stdin != nil {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return proc.Result{}, err
		}
		c.Stdin = b
	}

	r.mu.Lock()
	r.calls = append(r.calls, c)
	resp := r.Responses[name]
	r.mu.Unlock()

	if resp.Missing {
		return proc.Result{}, fmt.Errorf("%s: %w: executable file not found in $PATH", name, proc.ErrStart)
	}
	return resp.Result, nil
}

// Calls returns a copy of the recorded calls.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Spawned returns the number of processes the fake was asked to start.
func (r *Runner) Spawned() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

var _ proc.Runner = (*Runner)(nil)
