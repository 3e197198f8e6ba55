// Package publish drives the release workflow: preflight checks, version
// bump, git commit/tag/push with best-effort rollback, build, and upload.
package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethkc/pyship/internal/project"
	"github.com/sethkc/pyship/internal/runner"
	"github.com/sethkc/pyship/internal/semver"
)

// Options configure a single publish run.
type Options struct {
	Bump         semver.Kind
	Message      string
	DryRun       bool
	SkipGit      bool
	SkipRegistry bool

	DistDir       string
	BuildCommand  []string
	UploadCommand []string
}

// Workflow sequences one publish run against a package directory. Every
// external command goes through the injected runner so the sequencing and
// rollback logic can be exercised with a scripted fake.
type Workflow struct {
	proj project.Project
	run  runner.Runner
	obs  Observer
	opts Options
}

// New assembles a workflow. A nil observer is replaced with a no-op; empty
// options fall back to the standard Python build and upload tools.
func New(proj project.Project, run runner.Runner, obs Observer, opts Options) *Workflow {
	if obs == nil {
		obs = NopObserver{}
	}
	if opts.Bump == "" {
		opts.Bump = semver.Patch
	}
	if opts.DistDir == "" {
		opts.DistDir = "dist"
	}
	if len(opts.BuildCommand) == 0 {
		opts.BuildCommand = []string{"python", "-m", "build"}
	}
	if len(opts.UploadCommand) == 0 {
		opts.UploadCommand = []string{"twine", "upload"}
	}
	return &Workflow{proj: proj, run: run, obs: obs, opts: opts}
}

// Publish executes the workflow and returns the new version string. Every
// failure surfaces as *Error.
func (w *Workflow) Publish(ctx context.Context) (string, error) {
	version, err := w.publish(ctx)
	if err != nil {
		return "", wrap(err)
	}
	return version, nil
}

func (w *Workflow) publish(ctx context.Context) (string, error) {
	if w.opts.SkipGit {
		w.obs.StepSkipped("git preflight", "git operations disabled")
	} else {
		if err := w.checkWorkTreeClean(ctx); err != nil {
			return "", err
		}
		if err := w.checkRemote(ctx); err != nil {
			return "", err
		}
	}

	current, err := w.proj.Version()
	if err != nil {
		return "", err
	}
	next, err := current.Bump(w.opts.Bump)
	if err != nil {
		return "", err
	}
	w.obs.Notef("version: %s -> %s", current, next)

	if w.opts.DryRun {
		w.obs.Notef("dry run, no changes made")
		return next.String(), nil
	}

	if err := w.writeVersionFiles(next); err != nil {
		return "", err
	}

	pushed := false
	if w.opts.SkipGit {
		w.obs.StepSkipped("commit, tag, push", "git operations disabled")
	} else {
		if err := w.commitAndTag(ctx, next); err != nil {
			return "", err
		}
		if err := w.push(ctx); err != nil {
			w.rollback(ctx, next)
			return "", failf(ErrPushRolledBack, "%v", err)
		}
		pushed = true
	}

	if w.opts.SkipRegistry {
		w.obs.StepSkipped("build and upload", "registry operations disabled")
	} else {
		if err := w.build(ctx); err != nil {
			return "", err
		}
		if err := w.upload(ctx, next, pushed); err != nil {
			return "", err
		}
	}

	w.summary(ctx, next, pushed)
	return next.String(), nil
}

func (w *Workflow) step(name string, fn func() error) error {
	w.obs.StepStart(name)
	if err := fn(); err != nil {
		w.obs.StepFailed(name, err)
		return err
	}
	w.obs.StepDone(name)
	return nil
}

func (w *Workflow) checkWorkTreeClean(ctx context.Context) error {
	return w.step("check working tree", func() error {
		res, err := w.git(ctx, "status", "--porcelain")
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("git status: %s", stderrText(res))
		}
		if strings.TrimSpace(res.Stdout) != "" {
			return failf(ErrDirtyWorkTree, "commit or stash changes first")
		}
		return nil
	})
}

func (w *Workflow) checkRemote(ctx context.Context) error {
	return w.step("check git remote", func() error {
		res, err := w.git(ctx, "remote", "get-url", "origin")
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return failf(ErrNoRemote, "set one up with: git remote add origin <url>")
		}
		w.obs.Notef("remote: %s", strings.TrimSpace(res.Stdout))
		return nil
	})
}

func (w *Workflow) writeVersionFiles(v semver.Version) error {
	return w.step("update version files", func() error {
		return w.proj.WriteVersion(v)
	})
}

func (w *Workflow) commitAndTag(ctx context.Context, v semver.Version) error {
	msg := w.opts.Message
	if msg == "" {
		msg = "Bump version to " + v.String()
	}
	return w.step("commit and tag", func() error {
		add := []string{"add", project.ManifestName}
		if w.proj.MarkerExists() {
			add = append(add, w.proj.MarkerRel())
		}
		res, err := w.git(ctx, add...)
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return failf(ErrCommitFailed, "git add: %s", stderrText(res))
		}

		res, err = w.git(ctx, "commit", "-m", msg)
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return failf(ErrCommitFailed, "%s", stderrText(res))
		}
		w.obs.Notef("committed: %s", msg)

		res, err = w.git(ctx, "tag", v.String())
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return failf(ErrTagFailed, "%s", stderrText(res))
		}
		w.obs.Notef("tagged: %s", v)
		return nil
	})
}

func (w *Workflow) push(ctx context.Context) error {
	return w.step("push to origin", func() error {
		res, err := w.git(ctx, "push", "-u", "origin", "HEAD")
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("push branch: %s", stderrText(res))
		}

		res, err = w.git(ctx, "push", "origin", "--tags")
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return fmt.Errorf("push tags: %s", stderrText(res))
		}
		return nil
	})
}

// rollback deletes the local tag and resets the branch one commit back.
// Best effort: failures are narrated, never escalated.
func (w *Workflow) rollback(ctx context.Context, v semver.Version) {
	w.obs.Notef("rolling back local commit and tag")
	if res, err := w.git(ctx, "tag", "-d", v.String()); err != nil || res.ExitCode != 0 {
		w.obs.Notef("rollback: could not delete tag %s", v)
	}
	if res, err := w.git(ctx, "reset", "--hard", "HEAD~1"); err != nil || res.ExitCode != 0 {
		w.obs.Notef("rollback: could not reset branch")
	}
}

func (w *Workflow) build(ctx context.Context) error {
	return w.step("build distribution", func() error {
		if err := os.RemoveAll(filepath.Join(w.proj.Root, w.opts.DistDir)); err != nil {
			return fmt.Errorf("clean %s: %w", w.opts.DistDir, err)
		}
		res, err := w.command(ctx, w.opts.BuildCommand)
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return failf(ErrBuildFailed, "%s", stderrText(res))
		}
		return nil
	})
}

func (w *Workflow) upload(ctx context.Context, v semver.Version, pushed bool) error {
	return w.step("upload to registry", func() error {
		// Once the commit and tag are public there is no automatic
		// rollback; embed the manual recovery commands instead.
		fail := func(format string, args ...any) error {
			msg := fmt.Sprintf(format, args...)
			if pushed {
				msg += fmt.Sprintf(
					". Git changes were already pushed. To retry: %s %s/*. To revert: git reset --hard HEAD~1 && git tag -d %s && git push origin --delete %s",
					strings.Join(w.opts.UploadCommand, " "), w.opts.DistDir, v, v)
			}
			return failf(ErrUploadFailed, "%s", msg)
		}

		artifacts, err := filepath.Glob(filepath.Join(w.proj.Root, w.opts.DistDir, "*"))
		if err != nil {
			return fail("%v", err)
		}
		if len(artifacts) == 0 {
			return fail("no artifacts found in %s", w.opts.DistDir)
		}

		argv := append(append([]string{}, w.opts.UploadCommand...), artifacts...)
		res, err := w.command(ctx, argv)
		if err != nil {
			return fail("%v", err)
		}
		if res.ExitCode != 0 {
			return fail("%s", stderrText(res))
		}
		return nil
	})
}

func (w *Workflow) summary(ctx context.Context, v semver.Version, pushed bool) {
	w.obs.Notef("published %s %s", w.proj.Name, v)
	if pushed {
		if res, err := w.git(ctx, "remote", "get-url", "origin"); err == nil && res.ExitCode == 0 {
			w.obs.Notef("remote: %s", strings.TrimSpace(res.Stdout))
		}
	}
	if !w.opts.SkipRegistry {
		w.obs.Notef("registry: https://pypi.org/project/%s/%s/", w.proj.Name, v)
	}
}

func (w *Workflow) git(ctx context.Context, args ...string) (runner.Result, error) {
	return w.run.Run(ctx, w.proj.Root, "git", args...)
}

func (w *Workflow) command(ctx context.Context, argv []string) (runner.Result, error) {
	return w.run.Run(ctx, w.proj.Root, argv[0], argv[1:]...)
}

func stderrText(res runner.Result) string {
	if s := strings.TrimSpace(res.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(res.Stdout)
}
