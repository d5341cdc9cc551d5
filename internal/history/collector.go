package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.klb.dev/cliphist-plugin/internal/proc"
)

// DefaultBinary is the collector looked up on $PATH when none is configured.
const DefaultBinary = "cliphist"

// ErrCollectorUnavailable is wrapped when the collector binary cannot be
// started.
var ErrCollectorUnavailable = errors.New("clipboard history collector unavailable")

// Collector is the clipboard-history store.
type Collector interface {
	// List returns the raw history listing.
	List(ctx context.Context) ([]byte, error)
	// Decode returns the full stored content for id.
	Decode(ctx context.Context, id string) ([]byte, error)
}

// Cliphist drives the cliphist CLI.
type Cliphist struct {
	Binary string
	Runner proc.Runner
}

// NewCliphist returns a Collector for binary ("" means DefaultBinary).
func NewCliphist(binary string, runner proc.Runner) *Cliphist {
	if binary == "" {
		binary = DefaultBinary
	}
	if runner == nil {
		runner = proc.Exec{}
	}
	return &Cliphist{Binary: binary, Runner: runner}
}

// List runs "cliphist list". A non-zero exit is logged and whatever was
// printed to stdout is still returned; only a failed start is an error.
func (c *Cliphist) List(ctx context.Context) ([]byte, error) {
	res, err := c.Runner.Run(ctx, nil, c.Binary, "list")
	if err != nil {
		return nil, c.startErr(err)
	}
	if err := res.Err(c.Binary); err != nil {
		slog.Warn("history listing exited non-zero", "collector", c.Binary, "err", err)
	}
	return res.Stdout, nil
}

// Decode runs "cliphist decode <id>" with id as a single argument.
func (c *Cliphist) Decode(ctx context.Context, id string) ([]byte, error) {
	res, err := c.Runner.Run(ctx, nil, c.Binary, "decode", id)
	if err != nil {
		return nil, c.startErr(err)
	}
	if err := res.Err(c.Binary + " decode"); err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

func (c *Cliphist) startErr(err error) error {
	if errors.Is(err, proc.ErrStart) {
		return fmt.Errorf("%w: %w", ErrCollectorUnavailable, err)
	}
	return err
}

// Lister produces launcher entries from a Collector.
type Lister struct {
	Collector Collector
	// Limit caps the number of entries returned; 0 means no cap.
	Limit int
}

// Entries lists and parses the current history, newest first.
func (l *Lister) Entries(ctx context.Context) ([]Entry, error) {
	out, err := l.Collector.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	entries := Parse(out)
	if l.Limit > 0 && len(entries) > l.Limit {
		entries = entries[:l.Limit]
	}
	slog.Debug("history listed", "entries", len(entries), "bytes", len(out))
	return entries, nil
}

var _ Collector = (*Cliphist)(nil)
