package plugin

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/cliphist-plugin/internal/clip"
	"go.klb.dev/cliphist-plugin/internal/config"
	"go.klb.dev/cliphist-plugin/internal/history"
	"go.klb.dev/cliphist-plugin/internal/proc"
	"go.klb.dev/cliphist-plugin/internal/proc/proctest"
	"go.klb.dev/cliphist-plugin/internal/selection"
)

func testConfig() config.Config {
	return config.Config{Collector: "cliphist", Applier: clip.ModeWLCopy}
}

func TestMetadata_AllFieldsSet(t *testing.T) {
	info := Metadata()

	assert.Equal(t, Info{
		Name:          "Clipboard Manager",
		Version:       "1.0.1",
		Description:   "A plugin for managing your clipboard",
		Author:        "Ri",
		DefaultPrefix: "c",
	}, info)
	assert.Equal(t, info, Metadata(), "metadata is constant")
}

func TestPlugin_Entries(t *testing.T) {
	runner := proctest.New(map[string]proctest.Response{
		"cliphist": {Result: proc.Result{Stdout: []byte("42\tHello World\n7\tfoo\tbar\n\n")}},
	})
	p, err := New(testConfig(), runner)
	require.NoError(t, err)

	entries, err := p.Entries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []history.Entry{
		{Name: "Hello World", Description: "Hello World", Value: "42"},
		{Name: "foo\tbar", Description: "foo\tbar", Value: "7"},
	}, entries)
}

func TestPlugin_Entries_FreshEachCall(t *testing.T) {
	runner := proctest.New(map[string]proctest.Response{
		"cliphist": {Result: proc.Result{Stdout: []byte("1\ta\n")}},
	})
	p, err := New(testConfig(), runner)
	require.NoError(t, err)

	_, err = p.Entries(context.Background())
	require.NoError(t, err)
	_, err = p.Entries(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, runner.Spawned(), "no caching between calls")
}

func TestPlugin_Entries_CollectorMissing(t *testing.T) {
	runner := proctest.New(map[string]proctest.Response{"cliphist": {Missing: true}})
	p, err := New(testConfig(), runner)
	require.NoError(t, err)

	_, err = p.Entries(context.Background())

	assert.True(t, errors.Is(err, history.ErrCollectorUnavailable), "got %v", err)
}

func TestPlugin_Select(t *testing.T) {
	runner := proctest.New(map[string]proctest.Response{
		"cliphist": {Result: proc.Result{Stdout: []byte("Hello World")}},
	})
	p, err := New(testConfig(), runner)
	require.NoError(t, err)

	require.NoError(t, p.Select(context.Background(), "42"))
	assert.ErrorIs(t, p.Select(context.Background(), ""), selection.ErrEmptySelection)
	assert.Equal(t, 2, runner.Spawned())
	assert.Equal(t, "wl-copy", p.Applier())
}

func TestPlugin_ApplierUnavailable_ListingStillWorks(t *testing.T) {
	cfg := testConfig()
	cfg.Applier = clip.ModeCommand
	runner := proctest.New(map[string]proctest.Response{
		"cliphist": {Result: proc.Result{Stdout: []byte("42\tHello World\n")}},
	})

	p, err := New(cfg, runner)
	require.NoError(t, err)
	assert.ErrorIs(t, p.ApplierErr(), clip.ErrApplierUnavailable)
	assert.Empty(t, p.Applier())

	entries, err := p.Entries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []history.Entry{{Name: "Hello World", Description: "Hello World", Value: "42"}}, entries)

	err = p.Select(context.Background(), "42")
	assert.ErrorIs(t, err, clip.ErrApplierUnavailable)
	assert.ErrorIs(t, p.Select(context.Background(), ""), selection.ErrEmptySelection)
	assert.Equal(t, 1, runner.Spawned(), "selection does not decode without an applier")
}

type deadlineRunner struct {
	ok bool
}

func (d *deadlineRunner) Run(ctx context.Context, _ io.Reader, _ string, _ ...string) (proc.Result, error) {
	_, d.ok = ctx.Deadline()
	return proc.Result{}, nil
}

func TestPlugin_Timeout(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		hasDeadline bool
	}{
		{"Zero_NoDeadline", 0, false},
		{"Set_Deadline", time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Timeout = tt.timeout
			runner := &deadlineRunner{}
			p, err := New(cfg, runner)
			require.NoError(t, err)

			_, err = p.Entries(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.hasDeadline, runner.ok)
		})
	}
}
