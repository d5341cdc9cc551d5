package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/cliphist-plugin/internal/clip"
	"go.klb.dev/cliphist-plugin/internal/config"
	"go.klb.dev/cliphist-plugin/internal/history"
	"go.klb.dev/cliphist-plugin/internal/plugin"
	"go.klb.dev/cliphist-plugin/internal/proc"
	"go.klb.dev/cliphist-plugin/internal/proc/proctest"
)

// useFake replaces the lazily built plugin with one driven by runner.
func useFake(t *testing.T, runner *proctest.Runner, retain int) {
	t.Helper()
	useConfig(t, config.Config{
		Collector: "cliphist",
		Applier:   clip.ModeWLCopy,
		Retain:    retain,
	}, runner)
}

func useConfig(t *testing.T, cfg config.Config, runner *proctest.Runner) {
	t.Helper()
	p, err := plugin.New(cfg, runner)
	require.NoError(t, err)
	initOnce.Do(func() {})
	install(p)
}

func listing(out string) *proctest.Runner {
	return proctest.New(map[string]proctest.Response{
		"cliphist": {Result: proc.Result{Stdout: []byte(out)}},
	})
}

func TestPluginInfo_MatchesMetadata(t *testing.T) {
	assert.Equal(t, plugin.Metadata(), infoFromC())
}

func TestGetEntries_ExportsParsedHistory(t *testing.T) {
	useFake(t, listing("42\tHello World\n7\tfoo\tbar\n\n"), 0)

	list := get_entries()

	require.NotNil(t, list.entries)
	assert.EqualValues(t, 2, list.length)
	assert.Equal(t, []history.Entry{
		{Name: "Hello World", Description: "Hello World", Value: "42"},
		{Name: "foo\tbar", Description: "foo\tbar", Value: "7"},
	}, entriesFromC(list))
}

func TestGetEntries_IconAndEmojiAreNull(t *testing.T) {
	useFake(t, listing("1\ta\n"), 0)

	list := get_entries()

	require.EqualValues(t, 1, list.length)
	assert.Nil(t, list.entries.icon)
	assert.Nil(t, list.entries.emoji)
	assert.Equal(t, list.entries.name, list.entries.description, "name and description share one buffer")
}

func TestGetEntries_EmptyHistory_NonNullZeroLength(t *testing.T) {
	useFake(t, listing(""), 0)

	list := get_entries()

	assert.NotNil(t, list.entries)
	assert.Zero(t, list.length)
}

func TestGetEntries_CollectorMissing_NullList(t *testing.T) {
	useFake(t, proctest.New(map[string]proctest.Response{"cliphist": {Missing: true}}), 0)

	list := get_entries()

	assert.Nil(t, list.entries)
	assert.Zero(t, list.length)
	assert.Nil(t, entriesFromC(list))
}

func TestGetEntries_ListsStayValidAcrossCalls(t *testing.T) {
	useFake(t, listing("1\tfirst\n"), 0)
	first := get_entries()

	useFake(t, listing("2\tsecond\n"), 0)
	second := get_entries()

	assert.Equal(t, "first", entriesFromC(first)[0].Name)
	assert.Equal(t, "second", entriesFromC(second)[0].Name)
}

func TestGetEntries_BoundedArena_RetainsNewest(t *testing.T) {
	useFake(t, listing("1\ta\n2\tb\n"), 2)

	for i := 0; i < 5; i++ {
		list := get_entries()
		require.EqualValues(t, 2, list.length)
	}

	assert.Equal(t, 2, entries.Generations())
	entries.Release()
	assert.Zero(t, entries.Generations())
}

func TestHandleSelection_Null(t *testing.T) {
	runner := listing("")
	useFake(t, runner, 0)

	assert.False(t, bool(handle_selection(nil)))
	assert.Zero(t, runner.Spawned())
}

func TestSelectValue_Empty_SpawnsNothing(t *testing.T) {
	runner := listing("")
	useFake(t, runner, 0)

	assert.False(t, selectValue(""))
	assert.Zero(t, runner.Spawned())
}

func TestSelectValue_ValidID_RunsDecodeThenCopy(t *testing.T) {
	runner := listing("Hello World")
	useFake(t, runner, 0)

	ok := selectValue("42")

	assert.True(t, ok)
	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"cliphist", "decode", "42"}, calls[0].Argv())
	assert.Equal(t, []string{"wl-copy"}, calls[1].Argv())
	assert.Equal(t, "Hello World", string(calls[1].Stdin))
}

func TestSelectValue_ApplierFails_ReturnsFalse(t *testing.T) {
	runner := proctest.New(map[string]proctest.Response{
		"cliphist": {Result: proc.Result{Stdout: []byte("x")}},
		"wl-copy":  {Result: proc.Result{ExitCode: 1}},
	})
	useFake(t, runner, 0)

	assert.False(t, selectValue("42"))
	assert.Equal(t, 2, runner.Spawned())
}

func TestGetEntries_ApplierUnavailable_StillLists(t *testing.T) {
	runner := listing("42\tHello World\n")
	useConfig(t, config.Config{Collector: "cliphist", Applier: clip.ModeCommand}, runner)

	list := get_entries()

	require.NotNil(t, list.entries)
	assert.Equal(t, []history.Entry{
		{Name: "Hello World", Description: "Hello World", Value: "42"},
	}, entriesFromC(list))
	assert.False(t, selectValue("42"))
	assert.Equal(t, 1, runner.Spawned(), "only the listing ran")
}

func TestGetEntries_EmbeddedNUL_Replaced(t *testing.T) {
	useFake(t, listing("1\ta\x00b\n"), 0)

	got := entriesFromC(get_entries())

	require.Len(t, got, 1)
	assert.Equal(t, "a\uFFFDb", got[0].Name)
	assert.Equal(t, "1", got[0].Value)
}
