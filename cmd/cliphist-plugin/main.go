// cliphist-plugin: run the clipboard-history launcher plugin from a terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/cliphist-plugin/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cliphist-plugin",
		Short: "Clipboard history launcher plugin",
		Long: `cliphist-plugin exercises the same code paths a launcher host reaches
through libcliphist.so: listing cliphist history as entries and applying a
selected entry to the system clipboard.

Config file search order (first found wins):
  /etc/cliphist-plugin/cliphist-plugin.toml
  $HOME/.config/cliphist-plugin/cliphist-plugin.toml
  path supplied via --config

All flags can be set via CLIPHIST_PLUGIN_<FLAG> env vars or config-file keys.
The shared library reads the same file and env vars; it takes an explicit
path from $CLIPHIST_PLUGIN_CONFIG.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newListCmd(),
		newSelectCmd(),
		newInfoCmd(),
		newProbeCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cliphist-plugin %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
func resolveLogging(interactive bool, formatStr, levelStr string) {
	format := logging.ParseFormat(formatStr)
	level := logging.ParseLevel(levelStr)
	if levelStr == "" {
		if interactive {
			level = logging.ParseLevel("debug")
		} else {
			level = logging.ParseLevel("warn")
		}
	}
	logging.Setup(format, level)
}
