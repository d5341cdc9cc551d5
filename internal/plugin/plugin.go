// Package plugin ties the history lister and the selection handler together
// behind the two calls a launcher host makes.
package plugin

import (
	"context"
	"fmt"
	"log/slog"

	"go.klb.dev/cliphist-plugin/internal/clip"
	"go.klb.dev/cliphist-plugin/internal/config"
	"go.klb.dev/cliphist-plugin/internal/history"
	"go.klb.dev/cliphist-plugin/internal/proc"
	"go.klb.dev/cliphist-plugin/internal/selection"
)

// Info is the descriptor a host reads at load time.
type Info struct {
	Name          string
	Version       string
	Description   string
	Author        string
	DefaultPrefix string
}

// Metadata returns the plugin descriptor. It mirrors PLUGIN_INFO in
// cmd/libcliphist/plugin_info.c; the two must be kept identical.
func Metadata() Info {
	return Info{
		Name:          "Clipboard Manager",
		Version:       "1.0.1",
		Description:   "A plugin for managing your clipboard",
		Author:        "Ri",
		DefaultPrefix: "c",
	}
}

// Plugin serves entry listings and selections.
type Plugin struct {
	lister  *history.Lister
	handler *selection.Handler
	cfg     config.Config

	// applierErr is set when no clipboard backend could be built. Listing
	// still works; every selection fails with it.
	applierErr error
}

// New builds a Plugin from cfg. runner may be nil for the real os/exec runner.
// A clipboard backend that cannot be built does not fail New; see ApplierErr.
func New(cfg config.Config, runner proc.Runner) (*Plugin, error) {
	if runner == nil {
		runner = proc.Exec{}
	}
	collector := history.NewCliphist(cfg.Collector, runner)
	p := &Plugin{
		lister: &history.Lister{Collector: collector, Limit: cfg.Limit},
		cfg:    cfg,
	}
	applier, err := clip.New(clip.Options{
		Mode:    cfg.Applier,
		Command: cfg.ApplierCommand,
		Runner:  runner,
	})
	if err != nil {
		p.applierErr = fmt.Errorf("applier: %w", err)
		slog.Warn("clipboard applier unavailable, selections will fail", "applier", cfg.Applier, "err", err)
		return p, nil
	}
	p.handler = selection.New(collector, applier)
	return p, nil
}

// Config returns the configuration the plugin was built from.
func (p *Plugin) Config() config.Config { return p.cfg }

// Applier returns the name of the clipboard backend in use, or "" when none
// could be built.
func (p *Plugin) Applier() string {
	if p.handler == nil {
		return ""
	}
	return p.handler.Applier.Name()
}

// ApplierErr returns why no clipboard backend is available, or nil.
func (p *Plugin) ApplierErr() error { return p.applierErr }

// Entries lists the current clipboard history, newest first.
func (p *Plugin) Entries(ctx context.Context) ([]history.Entry, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.lister.Entries(ctx)
}

// Select puts the content stored under value on the clipboard. Without a
// clipboard backend it fails before decoding.
func (p *Plugin) Select(ctx context.Context, value string) error {
	if value == "" {
		return selection.ErrEmptySelection
	}
	if p.applierErr != nil {
		return p.applierErr
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.handler.Handle(ctx, value)
}

func (p *Plugin) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.cfg.Timeout)
}
