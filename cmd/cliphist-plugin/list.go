package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/cliphist-plugin/internal/history"
)

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print clipboard history entries, newest first",
		Long: `Lists clipboard history exactly as the plugin hands it to a host, one
entry per line as <value>TAB<name>. The value is what "select" expects.

  cliphist-plugin list | fzf -d '\t' --with-nth 2 | cut -f1 | xargs cliphist-plugin select`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runList(cmd, v) },
	}

	cmd.Flags().Bool("json", false, "output entries as JSON")
	addPluginFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runList(cmd *cobra.Command, v *viper.Viper) error {
	p, err := buildPlugin(cmd, v)
	if err != nil {
		return err
	}
	entries, err := p.Entries(context.Background())
	if err != nil {
		return err
	}
	if v.GetBool("json") {
		return writeEntriesJSON(cmd.OutOrStdout(), entries)
	}
	return writeEntries(cmd.OutOrStdout(), entries)
}

func writeEntries(w io.Writer, entries []history.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.Value, e.Name); err != nil {
			return err
		}
	}
	return nil
}

type jsonEntry struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Value       string  `json:"value"`
	Icon        *string `json:"icon"`
	Emoji       *string `json:"emoji"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func writeEntriesJSON(w io.Writer, entries []history.Entry) error {
	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		out[i] = jsonEntry{
			Name:        e.Name,
			Description: e.Description,
			Value:       e.Value,
			Icon:        nullable(e.Icon),
			Emoji:       nullable(e.Emoji),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
