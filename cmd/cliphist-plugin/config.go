package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliphist-plugin/internal/config"
	"go.klb.dev/cliphist-plugin/internal/plugin"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPHIST_PLUGIN_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPHIST_PLUGIN_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	config.SetDefaults(v)
	configFlag, _ := cmd.Flags().GetString("config")
	if err := config.Read(v, configFlag); err != nil {
		return err
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	if f := cmd.Flags().Lookup("applier-command"); f != nil {
		if err := v.BindPFlag(config.KeyApplierCommand, f); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("verbose", false, "log at debug level unless --log-level is set")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error (default: warn, debug with --verbose)")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addPluginFlags adds the flags that shape how history is listed and applied.
func addPluginFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("collector", "cliphist", "clipboard history binary")
	f.String("applier", "auto", "clipboard backend: auto|wl-copy|xclip|pbcopy|native|command")
	f.StringSlice("applier-command", nil, "argv for --applier=command, content is written to its stdin")
	f.Int("limit", 0, "maximum entries to list (0 = all)")
	f.Duration("timeout", 0, "per-process timeout (0 = wait indefinitely)")
}

// setupLogging reads logging flags from viper and configures slog. Only
// explicitly set levels apply; the shared-library default of info is too
// chatty for a CLI whose stdout is the product.
func setupLogging(cmd *cobra.Command, v *viper.Viper) {
	level := ""
	if cmd.Flags().Changed(config.KeyLogLevel) || v.InConfig(config.KeyLogLevel) ||
		os.Getenv(config.EnvPrefix+"_LOG_LEVEL") != "" {
		level = v.GetString(config.KeyLogLevel)
	}
	resolveLogging(v.GetBool("verbose"), v.GetString(config.KeyLogFormat), level)
}

// buildPlugin resolves configuration and constructs the plugin.
func buildPlugin(cmd *cobra.Command, v *viper.Viper) (*plugin.Plugin, error) {
	setupLogging(cmd, v)
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	return plugin.New(cfg, nil)
}
