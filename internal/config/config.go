package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-package configuration file.
const FileName = ".pyship.yml"

// Config captures publish options sourced from the config file or flags.
type Config struct {
	Bump    string `yaml:"bump"`
	Message string `yaml:"message"`

	DryRun       bool `yaml:"dry_run"`
	SkipGit      bool `yaml:"skip_git"`
	SkipRegistry bool `yaml:"skip_registry"`
	Verbose      bool `yaml:"verbose"`

	DistDir       string   `yaml:"dist_dir"`
	BuildCommand  []string `yaml:"build_command"`
	UploadCommand []string `yaml:"upload_command"`
}

// Default returns the baseline configuration used when no flags or config
// file specify values.
func Default() Config {
	return Config{
		Bump:          "patch",
		DistDir:       "dist",
		BuildCommand:  []string{"python", "-m", "build"},
		UploadCommand: []string{"twine", "upload"},
	}
}

// Load reads .pyship.yml from the package root when present. Missing files
// are ignored.
func Load(root string) (Config, error) {
	cfg := Default()
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}

	return merge(cfg, fileCfg), nil
}

func merge(base, override Config) Config {
	out := base

	if override.Bump != "" {
		out.Bump = override.Bump
	}
	if override.Message != "" {
		out.Message = override.Message
	}
	if override.DistDir != "" {
		out.DistDir = override.DistDir
	}
	if len(override.BuildCommand) > 0 {
		out.BuildCommand = append([]string{}, override.BuildCommand...)
	}
	if len(override.UploadCommand) > 0 {
		out.UploadCommand = append([]string{}, override.UploadCommand...)
	}
	if override.DryRun {
		out.DryRun = true
	}
	if override.SkipGit {
		out.SkipGit = true
	}
	if override.SkipRegistry {
		out.SkipRegistry = true
	}
	if override.Verbose {
		out.Verbose = true
	}

	return out
}

// ApplyFlags mutates cfg by applying values from CLI flags when they are
// present.
func ApplyFlags(cfg *Config, flags FlagValues) {
	if flags.Bump.Set {
		cfg.Bump = flags.Bump.Value
	}
	if flags.Message.Set {
		cfg.Message = flags.Message.Value
	}
	if flags.DryRun.Set {
		cfg.DryRun = flags.DryRun.Value
	}
	if flags.SkipGit.Set {
		cfg.SkipGit = flags.SkipGit.Value
	}
	if flags.SkipRegistry.Set {
		cfg.SkipRegistry = flags.SkipRegistry.Value
	}
	if flags.Verbose.Set {
		cfg.Verbose = flags.Verbose.Value
	}
}

// FlagValues captures CLI flag state with knowledge of whether each flag was
// set explicitly.
type FlagValues struct {
	Bump         StringFlag
	Message      StringFlag
	DryRun       BoolFlag
	SkipGit      BoolFlag
	SkipRegistry BoolFlag
	Verbose      BoolFlag
}

// StringFlag represents a string flag and whether it was set.
type StringFlag struct {
	Value string
	Set   bool
}

// BoolFlag represents a bool flag and whether it was set.
type BoolFlag struct {
	Value bool
	Set   bool
}
