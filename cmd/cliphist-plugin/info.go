package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliphist-plugin/internal/plugin"
)

func newInfoCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "info",
		Short:   "Show the plugin metadata and resolved configuration",
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runInfo(cmd, v) },
	}

	cmd.Flags().Bool("json", false, "output metadata as JSON")
	addPluginFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func infoDetails(info plugin.Info) []detail {
	return []detail{
		{"Name", info.Name},
		{"Version", info.Version},
		{"Description", info.Description},
		{"Author", info.Author},
		{"Prefix", info.DefaultPrefix},
	}
}

// runInfo prints metadata even when the runtime configuration is broken, so
// the failure shows up next to what the host would see.
func runInfo(cmd *cobra.Command, v *viper.Viper) error {
	if v.GetBool("json") {
		return writeInfoJSON(cmd.OutOrStdout(), plugin.Metadata())
	}
	p, err := buildPlugin(cmd, v)
	writeInfo(cmd.OutOrStdout(), plugin.Metadata(), p, err)
	return err
}

func writeInfo(w io.Writer, info plugin.Info, p *plugin.Plugin, buildErr error) {
	renderDetails(w, "Plugin", infoDetails(info))
	if buildErr != nil {
		renderDetails(w, "Runtime", []detail{{"Error", status(false, buildErr.Error())}})
		return
	}

	cfg := p.Config()
	applier := status(true, p.Applier())
	if err := p.ApplierErr(); err != nil {
		applier = status(false, err.Error())
	}
	rows := []detail{
		{"Collector", cfg.Collector},
		{"Applier", applier},
	}
	if cfg.Limit > 0 {
		rows = append(rows, detail{"Limit", strconv.Itoa(cfg.Limit)})
	}
	if cfg.Retain > 0 {
		rows = append(rows, detail{"Retain", strconv.Itoa(cfg.Retain) + " lists"})
	}
	if cfg.Timeout > 0 {
		rows = append(rows, detail{"Timeout", cfg.Timeout.String()})
	}
	renderDetails(w, "Runtime", rows)
}

func writeInfoJSON(w io.Writer, info plugin.Info) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]string{
		"name":           info.Name,
		"version":        info.Version,
		"description":    info.Description,
		"author":         info.Author,
		"default_prefix": info.DefaultPrefix,
	})
}
