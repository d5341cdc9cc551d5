// libcliphist: clipboard history launcher plugin, built as a C shared library.
//
//	go build -buildmode=c-shared -o libcliphist.so ./cmd/libcliphist
//
// The host binds to PLUGIN_INFO, get_entries and handle_selection. Every
// pointer handed to the host is either static (PLUGIN_INFO) or C memory owned
// by the entry arena, never Go memory.
package main

/*
#include <stdlib.h>
#include <string.h>
#include "plugin.h"
*/
import "C"

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"unsafe"

	"go.klb.dev/cliphist-plugin/internal/arena"
	"go.klb.dev/cliphist-plugin/internal/config"
	"go.klb.dev/cliphist-plugin/internal/history"
	"go.klb.dev/cliphist-plugin/internal/logging"
	"go.klb.dev/cliphist-plugin/internal/plugin"
)

var (
	initOnce sync.Once
	initErr  error
	instance *plugin.Plugin
	entries  *arena.Arena[unsafe.Pointer]
)

func freeC(p unsafe.Pointer) { C.free(p) }

// state lazily loads configuration and builds the plugin on the first
// exported call. A failed build is remembered; there is no re-init path.
func state() (*plugin.Plugin, error) {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			logging.Setup(logging.FormatAuto, slog.LevelInfo)
			initErr = err
			return
		}
		logging.Setup(logging.ParseFormat(cfg.LogFormat), logging.ParseLevel(cfg.LogLevel))

		p, err := plugin.New(cfg, nil)
		if err != nil {
			initErr = err
			return
		}
		install(p)
		checkInfo()
		slog.Debug("plugin ready", "collector", cfg.Collector, "applier", p.Applier(), "retain", cfg.Retain)
	})
	return instance, initErr
}

// install makes p the active plugin with an arena sized from its config.
func install(p *plugin.Plugin) {
	instance = p
	initErr = nil
	entries = arena.New(p.Config().Retain, freeC)
}

//export get_entries
func get_entries() (list C.EntryList) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("get_entries panicked", "panic", r)
			list = C.EntryList{}
		}
	}()

	p, err := state()
	if err != nil {
		slog.Error("plugin unavailable", "err", err)
		return C.EntryList{}
	}
	es, err := p.Entries(context.Background())
	if err != nil {
		slog.Error("listing clipboard history failed", "err", err)
		return C.EntryList{}
	}
	return exportEntries(es)
}

//export handle_selection
func handle_selection(sel *C.char) C.bool {
	if sel == nil {
		slog.Warn("selection is null")
		return false
	}
	return C.bool(selectValue(C.GoString(sel)))
}

// selectValue reports whether value was decoded and applied.
func selectValue(value string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("handle_selection panicked", "panic", r)
			ok = false
		}
	}()

	if value == "" {
		slog.Warn("selection is empty")
		return false
	}

	p, err := state()
	if err != nil {
		slog.Error("plugin unavailable", "err", err)
		return false
	}
	if err := p.Select(context.Background(), value); err != nil {
		slog.Error("failed to set clipboard content", "value", value, "err", err)
		return false
	}
	return true
}

// exportEntries copies es into one C array plus C strings and commits them to
// the arena as a single generation. An empty list still gets a non-NULL,
// zeroed slot so that NULL unambiguously means failure. Embedded NUL bytes
// become U+FFFD so a C reader sees the whole string.
func exportEntries(es []history.Entry) C.EntryList {
	slots := max(len(es), 1)
	size := C.size_t(slots) * C.size_t(unsafe.Sizeof(C.Entry{}))
	base := C.malloc(size)
	C.memset(base, 0, size)
	gen := make([]unsafe.Pointer, 0, 1+3*len(es))
	gen = append(gen, base)

	cstr := func(s string) *C.char {
		if s == "" {
			return nil
		}
		p := C.CString(strings.ReplaceAll(s, "\x00", "\uFFFD"))
		gen = append(gen, unsafe.Pointer(p))
		return p
	}

	arr := unsafe.Slice((*C.Entry)(base), slots)
	for i, e := range es {
		name := cstr(e.Name)
		desc := name
		if e.Description != e.Name {
			desc = cstr(e.Description)
		}
		arr[i] = C.Entry{
			name:        emptyIfNil(name, &gen),
			description: emptyIfNil(desc, &gen),
			value:       emptyIfNil(cstr(e.Value), &gen),
			icon:        cstr(e.Icon),
			emoji:       cstr(e.Emoji),
		}
	}

	entries.Commit(gen)
	return C.EntryList{entries: (*C.Entry)(base), length: C.size_t(len(es))}
}

// emptyIfNil swaps a nil pointer for an allocated "" so required fields are
// never NULL.
func emptyIfNil(p *C.char, gen *[]unsafe.Pointer) *C.char {
	if p != nil {
		return p
	}
	e := C.CString("")
	*gen = append(*gen, unsafe.Pointer(e))
	return e
}

// infoFromC reads PLUGIN_INFO the way a host does. checkInfo uses it at
// startup as a drift check.
func infoFromC() plugin.Info {
	return plugin.Info{
		Name:          C.GoString(C.PLUGIN_INFO.name),
		Version:       C.GoString(C.PLUGIN_INFO.version),
		Description:   C.GoString(C.PLUGIN_INFO.description),
		Author:        C.GoString(C.PLUGIN_INFO.author),
		DefaultPrefix: C.GoString(C.PLUGIN_INFO.default_prefix),
	}
}

func checkInfo() {
	if got, want := infoFromC(), plugin.Metadata(); got != want {
		slog.Warn("PLUGIN_INFO differs from plugin.Metadata", "c", got, "go", want)
	}
}

// entriesFromC and goString exist for main_test.go, which cannot use cgo.

// entriesFromC reads an EntryList back into Go values.
func entriesFromC(list C.EntryList) []history.Entry {
	if list.entries == nil {
		return nil
	}
	arr := unsafe.Slice(list.entries, int(list.length))
	out := make([]history.Entry, len(arr))
	for i, e := range arr {
		out[i] = history.Entry{
			Name:        goString(e.name),
			Description: goString(e.description),
			Value:       goString(e.value),
			Icon:        goString(e.icon),
			Emoji:       goString(e.emoji),
		}
	}
	return out
}

func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

func main() {}
