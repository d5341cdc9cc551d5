//go:build !darwin && !linux && !freebsd

package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <library>",
		Short: "Check that a built plugin library exposes the host symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, _ []string) error {
			return fmt.Errorf("probe: dlopen is not supported on %s", runtime.GOOS)
		},
	}
}
