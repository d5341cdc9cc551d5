//go:build linux || darwin || windows

package clip

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/clipboard"
)

// writeFunc matches clipboard.Write, which returns nil when the write fails.
type writeFunc func(clipboard.Format, []byte) <-chan struct{}

var (
	nativeOnce    sync.Once
	nativeApplier Applier
	nativeErr     error
)

type nativeBackend struct {
	write writeFunc
}

// newNative initialises golang.design/x/clipboard on first use rather than
// in init() so that processes which never select the native backend do not
// touch the display server.
func newNative() (Applier, error) {
	nativeOnce.Do(func() {
		nativeApplier, nativeErr = openNative(clipboard.Init, clipboard.Write)
	})
	return nativeApplier, nativeErr
}

func openNative(initFn func() error, write writeFunc) (Applier, error) {
	if err := initFn(); err != nil {
		return nil, fmt.Errorf("%w: native clipboard: %w", ErrApplierUnavailable, err)
	}
	return nativeBackend{write: write}, nil
}

func (nativeBackend) Name() string { return "native clipboard" }

// Write implements Applier. On X11 the content is served by this process, so
// it stays on the clipboard only while the process lives.
func (b nativeBackend) Write(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	changed := b.write(clipboard.FmtText, content)
	if changed == nil {
		return fmt.Errorf("%w: native clipboard write failed", ErrApplierUnavailable)
	}
	go func() {
		<-changed
		slog.Debug("clipboard ownership lost")
	}()
	return nil
}
