package clip

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"go.klb.dev/cliphist-plugin/internal/proc"
)

// Command feeds content on stdin to a clipboard helper such as wl-copy.
type Command struct {
	argv   []string
	runner proc.Runner
}

// NewCommand returns a Command backend for argv, which must not be empty.
func NewCommand(runner proc.Runner, argv ...string) *Command {
	if runner == nil {
		runner = proc.Exec{}
	}
	return &Command{argv: append([]string(nil), argv...), runner: runner}
}

func (c *Command) Name() string { return strings.Join(c.argv, " ") }

// Write implements Applier.
func (c *Command) Write(ctx context.Context, content []byte) error {
	res, err := c.runner.Run(ctx, bytes.NewReader(content), c.argv[0], c.argv[1:]...)
	if err != nil {
		if errors.Is(err, proc.ErrStart) {
			return fmt.Errorf("%w: %w", ErrApplierUnavailable, err)
		}
		return err
	}
	return res.Err(c.argv[0])
}

var _ Applier = (*Command)(nil)
