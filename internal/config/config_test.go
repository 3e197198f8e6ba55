package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	root := t.TempDir()
	contents := "bump: minor\nskip_registry: true\ndist_dir: out\nupload_command: [uv, publish]\n"
	if err := os.WriteFile(filepath.Join(root, FileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bump != "minor" {
		t.Fatalf("expected bump minor, got %q", cfg.Bump)
	}
	if !cfg.SkipRegistry {
		t.Fatalf("expected skip_registry true")
	}
	if cfg.DistDir != "out" {
		t.Fatalf("expected dist_dir out, got %q", cfg.DistDir)
	}
	if !reflect.DeepEqual(cfg.UploadCommand, []string{"uv", "publish"}) {
		t.Fatalf("unexpected upload command %v", cfg.UploadCommand)
	}
	if !reflect.DeepEqual(cfg.BuildCommand, Default().BuildCommand) {
		t.Fatalf("build command should keep default, got %v", cfg.BuildCommand)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("bump: [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(root); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestApplyFlagsOverridesFileValues(t *testing.T) {
	cfg := Default()
	cfg.Bump = "minor"
	cfg.SkipGit = true

	ApplyFlags(&cfg, FlagValues{
		Bump:    StringFlag{Value: "major", Set: true},
		Message: StringFlag{Value: "cut release", Set: true},
		DryRun:  BoolFlag{Value: true, Set: true},
		SkipGit: BoolFlag{Value: false, Set: true},
	})

	if cfg.Bump != "major" {
		t.Fatalf("expected bump major, got %q", cfg.Bump)
	}
	if cfg.Message != "cut release" {
		t.Fatalf("expected message override, got %q", cfg.Message)
	}
	if !cfg.DryRun {
		t.Fatalf("expected dry run")
	}
	if cfg.SkipGit {
		t.Fatalf("explicit flag must override file value")
	}
}

func TestApplyFlagsLeavesUnsetAlone(t *testing.T) {
	cfg := Default()
	cfg.Bump = "minor"
	ApplyFlags(&cfg, FlagValues{})
	if cfg.Bump != "minor" {
		t.Fatalf("unset flags must not change config, got %q", cfg.Bump)
	}
}
