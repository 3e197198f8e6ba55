package main

import (
	"fmt"
	"os"

	"github.com/sethkc/pyship/internal/config"
	"github.com/sethkc/pyship/internal/output"
	"github.com/sethkc/pyship/internal/project"
	"github.com/sethkc/pyship/internal/publish"
	"github.com/sethkc/pyship/internal/runner"
	"github.com/sethkc/pyship/internal/semver"
	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [major|minor|patch]",
		Short: "Bump the version, push to git, and upload to the registry",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPublish,
	}

	flags := cmd.Flags()
	flags.StringP("message", "m", "", `commit message (default "Bump version to X.Y.Z")`)
	flags.Bool("dry-run", false, "preview the new version without changing anything")
	flags.Bool("skip-git", false, "skip git operations, only build and upload")
	flags.Bool("skip-registry", false, "skip build and upload, only push to git")

	return cmd
}

func runPublish(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	values, err := gatherFlags(cmd, args)
	if err != nil {
		return err
	}
	config.ApplyFlags(&cfg, values)

	kind, err := semver.ParseKind(cfg.Bump)
	if err != nil {
		return err
	}

	proj := project.Load(root)
	exec := runner.New(runner.Options{
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		Verbose: cfg.Verbose,
	})

	wf := publish.New(proj, exec, output.NewConsole(cmd.OutOrStdout()), publish.Options{
		Bump:          kind,
		Message:       cfg.Message,
		DryRun:        cfg.DryRun,
		SkipGit:       cfg.SkipGit,
		SkipRegistry:  cfg.SkipRegistry,
		DistDir:       cfg.DistDir,
		BuildCommand:  cfg.BuildCommand,
		UploadCommand: cfg.UploadCommand,
	})

	version, err := wf.Publish(cmd.Context())
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Would publish version %s\n", version)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Published version %s\n", version)
	}
	return nil
}
