// Package clip puts content on the system clipboard. Build constraints select
// the native implementation:
//
//	native.go        golang.design/x/clipboard (X11, macOS, Windows)
//	native_other.go  platforms without a native clipboard
//
// The command backend (wl-copy, xclip, pbcopy, or any argv) works everywhere
// a helper binary is installed.
package clip

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.klb.dev/cliphist-plugin/internal/proc"
)

// ErrApplierUnavailable is wrapped when no clipboard backend could be started.
var ErrApplierUnavailable = errors.New("clipboard applier unavailable")

// Applier is the interface that all clipboard backends satisfy.
type Applier interface {
	// Name returns a human-readable name for the backend.
	Name() string

	// Write replaces the clipboard contents with content.
	Write(ctx context.Context, content []byte) error
}

// Mode selects a backend.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeWLCopy  Mode = "wl-copy"
	ModeXClip   Mode = "xclip"
	ModePBCopy  Mode = "pbcopy"
	ModeNative  Mode = "native"
	ModeCommand Mode = "command"
)

// Modes lists every accepted Mode.
var Modes = []Mode{ModeAuto, ModeWLCopy, ModeXClip, ModePBCopy, ModeNative, ModeCommand}

// ParseMode validates s. The empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAuto, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown applier %q (want one of %v)", s, Modes)
}

var presets = map[Mode][]string{
	ModeWLCopy: {"wl-copy"},
	ModeXClip:  {"xclip", "-selection", "clipboard"},
	ModePBCopy: {"pbcopy"},
}

// Options configures New.
type Options struct {
	Mode Mode
	// Command is the argv used by ModeCommand.
	Command []string
	Runner  proc.Runner
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
	// GOOS defaults to runtime.GOOS.
	GOOS string
}

// New returns the backend selected by opts.
func New(opts Options) (Applier, error) {
	if opts.Runner == nil {
		opts.Runner = proc.Exec{}
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}

	mode := opts.Mode
	if mode == "" || mode == ModeAuto {
		mode = detect(opts.Getenv, opts.GOOS)
	}

	switch mode {
	case ModeNative:
		return newNative()
	case ModeCommand:
		if len(opts.Command) == 0 {
			return nil, fmt.Errorf("%w: applier %q needs a command", ErrApplierUnavailable, ModeCommand)
		}
		return NewCommand(opts.Runner, opts.Command...), nil
	default:
		argv, ok := presets[mode]
		if !ok {
			return nil, fmt.Errorf("%w: unknown applier %q", ErrApplierUnavailable, mode)
		}
		return NewCommand(opts.Runner, argv...), nil
	}
}

// detect picks a backend for ModeAuto. Wayland needs wl-copy because X11
// selections are invisible to native Wayland clients.
func detect(getenv func(string) string, goos string) Mode {
	switch {
	case getenv("WAYLAND_DISPLAY") != "":
		return ModeWLCopy
	case goos == "darwin", goos == "windows":
		return ModeNative
	case getenv("DISPLAY") != "":
		return ModeNative
	default:
		return ModeXClip
	}
}
