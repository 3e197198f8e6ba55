package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "pyship",
		Short:         "Pyship bumps, tags, and publishes a package in one command",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Version = buildVersion
	cmd.SetVersionTemplate(fmt.Sprintf("pyship %s (commit: %s)\n", buildVersion, buildCommit))

	persistent := cmd.PersistentFlags()
	persistent.BoolP("verbose", "v", false, "stream command output in real time")

	cmd.AddCommand(newPublishCmd())
	cmd.AddCommand(newCurrentCmd())

	return cmd
}
