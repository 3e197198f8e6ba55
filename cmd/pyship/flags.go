package main

import (
	"fmt"

	"github.com/sethkc/pyship/internal/config"
	"github.com/spf13/cobra"
)

func gatherFlags(cmd *cobra.Command, args []string) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if len(args) > 0 {
		values.Bump = config.StringFlag{Value: args[0], Set: true}
	}

	if flags.Changed("message") {
		v, err := flags.GetString("message")
		if err != nil {
			return values, fmt.Errorf("parse --message: %w", err)
		}
		values.Message = config.StringFlag{Value: v, Set: true}
	}

	if flags.Changed("dry-run") {
		v, err := flags.GetBool("dry-run")
		if err != nil {
			return values, fmt.Errorf("parse --dry-run: %w", err)
		}
		values.DryRun = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("skip-git") {
		v, err := flags.GetBool("skip-git")
		if err != nil {
			return values, fmt.Errorf("parse --skip-git: %w", err)
		}
		values.SkipGit = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("skip-registry") {
		v, err := flags.GetBool("skip-registry")
		if err != nil {
			return values, fmt.Errorf("parse --skip-registry: %w", err)
		}
		values.SkipRegistry = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	return values, nil
}
