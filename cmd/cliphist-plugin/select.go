package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSelectCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "select <value>",
		Short: "Copy a history entry to the system clipboard",
		Long: `Decodes the entry stored under <value> with the collector and hands the
content to the clipboard applier, as handle_selection does for a host.

With --applier=native on X11 the content is owned by this process and is
lost when it exits; prefer wl-copy or xclip from the command line.`,
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, args []string) error { return runSelect(cmd, v, args[0]) },
	}

	addPluginFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runSelect(cmd *cobra.Command, v *viper.Viper, value string) error {
	p, err := buildPlugin(cmd, v)
	if err != nil {
		return err
	}
	return p.Select(context.Background(), value)
}
