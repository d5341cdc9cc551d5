//go:build darwin || linux || freebsd

package main

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/spf13/cobra"

	"go.klb.dev/cliphist-plugin/internal/plugin"
)

// probeSymbols are the names a host binds to.
var probeSymbols = []string{"PLUGIN_INFO", "get_entries", "handle_selection"}

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <library>",
		Short: "Check that a built plugin library exposes the host symbols",
		Long: `Loads <library> with dlopen, resolves PLUGIN_INFO, get_entries and
handle_selection, and reads PLUGIN_INFO through the fixed struct layout the
host uses. Neither function is called.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := probe(args[0])
			if rep != nil {
				writeProbe(cmd, args[0], rep)
			}
			return err
		},
	}
}

type probeReport struct {
	found map[string]bool
	info  *plugin.Info
}

func probe(path string) (*probeReport, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", path, err)
	}

	rep := &probeReport{found: make(map[string]bool, len(probeSymbols))}
	var missing []string
	for _, name := range probeSymbols {
		_, err := purego.Dlsym(lib, name)
		rep.found[name] = err == nil
		if err != nil {
			missing = append(missing, name)
		}
	}
	if sym, err := purego.Dlsym(lib, "PLUGIN_INFO"); err == nil {
		info := readInfo(*(*unsafe.Pointer)(unsafe.Pointer(&sym)))
		rep.info = &info
	}
	if len(missing) > 0 {
		return rep, fmt.Errorf("missing symbols: %v", missing)
	}
	return rep, nil
}

// cPluginInfo matches PluginInfo in cmd/libcliphist/plugin.h.
type cPluginInfo struct {
	name          *byte
	version       *byte
	description   *byte
	author        *byte
	defaultPrefix *byte
}

func readInfo(p unsafe.Pointer) plugin.Info {
	ci := (*cPluginInfo)(p)
	return plugin.Info{
		Name:          goString(ci.name),
		Version:       goString(ci.version),
		Description:   goString(ci.description),
		Author:        goString(ci.author),
		DefaultPrefix: goString(ci.defaultPrefix),
	}
}

// goString copies a NUL-terminated C string. NULL reads as "<NULL>".
func goString(p *byte) string {
	if p == nil {
		return "<NULL>"
	}
	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

func writeProbe(cmd *cobra.Command, path string, rep *probeReport) {
	w := cmd.OutOrStdout()
	rows := make([]detail, 0, len(probeSymbols))
	for _, name := range probeSymbols {
		if rep.found[name] {
			rows = append(rows, detail{name, status(true, "ok")})
		} else {
			rows = append(rows, detail{name, status(false, "missing")})
		}
	}
	renderDetails(w, path, rows)
	if rep.info == nil {
		return
	}
	renderDetails(w, "PLUGIN_INFO", infoDetails(*rep.info))
	if *rep.info != plugin.Metadata() {
		fmt.Fprintln(w, status(false, "PLUGIN_INFO differs from this build's metadata"))
	}
}
