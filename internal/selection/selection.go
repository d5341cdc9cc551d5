// Package selection applies a chosen history entry to the system clipboard.
//
// A selection is two discrete collaborator calls: the collector decodes the
// entry's id back to its stored content, then the applier puts that content
// on the clipboard. The id is passed as a single argument and never
// interpolated into a shell command line.
package selection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"go.klb.dev/cliphist-plugin/internal/clip"
	"go.klb.dev/cliphist-plugin/internal/history"
)

// ErrEmptySelection is returned for a missing or empty value. No process is
// started in that case.
var ErrEmptySelection = errors.New("empty selection")

const previewLen = 120

// Handler drives decode and apply for one selection at a time. It holds no
// mutable state, so concurrent calls are independent.
type Handler struct {
	Collector history.Collector
	Applier   clip.Applier
}

// New returns a Handler.
func New(collector history.Collector, applier clip.Applier) *Handler {
	return &Handler{Collector: collector, Applier: applier}
}

// Handle places the content stored under value on the clipboard. Failures
// are not retried.
func (h *Handler) Handle(ctx context.Context, value string) error {
	if value == "" {
		return ErrEmptySelection
	}

	content, err := h.Collector.Decode(ctx, value)
	if err != nil {
		return fmt.Errorf("decode %q: %w", value, err)
	}
	logContent(value, content)

	if err := h.Applier.Write(ctx, content); err != nil {
		return fmt.Errorf("apply via %s: %w", h.Applier.Name(), err)
	}
	slog.Info("clipboard updated", "value", value, "applier", h.Applier.Name(), "size_bytes", len(content))
	return nil
}

// logContent logs a text preview up to previewLen characters at DEBUG, or
// the byte size for binary content.
func logContent(value string, content []byte) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	if !utf8.Valid(content) {
		slog.Debug("decoded entry", "value", value, "size_bytes", len(content))
		return
	}
	slog.Debug("decoded entry", "value", value, "preview", preview(string(content)))
}

func preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLen {
		return s
	}
	return string([]rune(s)[:previewLen]) + "…"
}
