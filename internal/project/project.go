package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sethkc/pyship/internal/semver"
)

// ManifestName is the fixed manifest file name at the package root.
const ManifestName = "pyproject.toml"

const markerName = "__init__.py"

var (
	// ErrManifestMissing reports an absent manifest file.
	ErrManifestMissing = errors.New("pyproject.toml not found")
	// ErrVersionNotFound reports a manifest without a version assignment.
	ErrVersionNotFound = errors.New("version not found in pyproject.toml")
)

var (
	manifestVersionRe = regexp.MustCompile(`(version\s*=\s*["'])([^"']+)(["'])`)
	markerVersionRe   = regexp.MustCompile(`(__version__\s*=\s*["'])([^"']+)(["'])`)
)

// Project locates the version-bearing files of the package being published.
// Paths are resolved once and treated as immutable for the life of a run.
type Project struct {
	Root         string
	Name         string
	ManifestPath string
	MarkerPath   string
}

// Load resolves the package layout rooted at dir. The package name is the
// directory's own name; the marker file lives one level down under it.
func Load(dir string) Project {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	name := filepath.Base(dir)
	return Project{
		Root:         dir,
		Name:         name,
		ManifestPath: filepath.Join(dir, ManifestName),
		MarkerPath:   filepath.Join(dir, name, markerName),
	}
}

func (p Project) String() string { return p.Name }

// MarkerRel returns the marker file path relative to the package root, as
// passed to git when staging.
func (p Project) MarkerRel() string { return filepath.Join(p.Name, markerName) }

// MarkerExists reports whether the package carries a marker file. Layouts
// without one are valid.
func (p Project) MarkerExists() bool {
	info, err := os.Stat(p.MarkerPath)
	return err == nil && !info.IsDir()
}

// Version extracts the current version from the manifest. The first
// version assignment wins; single and double quotes are both accepted.
func (p Project) Version() (semver.Version, error) {
	data, err := os.ReadFile(p.ManifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return semver.Version{}, fmt.Errorf("%w in %s", ErrManifestMissing, p.Root)
		}
		return semver.Version{}, fmt.Errorf("read %s: %w", p.ManifestPath, err)
	}
	match := manifestVersionRe.FindSubmatch(data)
	if match == nil {
		return semver.Version{}, ErrVersionNotFound
	}
	v, err := semver.Parse(string(match[2]))
	if err != nil {
		return semver.Version{}, fmt.Errorf("%s: %w", ManifestName, err)
	}
	return v, nil
}

// WriteVersion rewrites the version assignment in the manifest, and in the
// marker file when one exists, leaving every other byte untouched.
func (p Project) WriteVersion(v semver.Version) error {
	if err := rewrite(p.ManifestPath, manifestVersionRe, v.String()); err != nil {
		return err
	}
	if !p.MarkerExists() {
		return nil
	}
	return rewrite(p.MarkerPath, markerVersionRe, v.String())
}

func rewrite(path string, re *regexp.Regexp, version string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	updated := re.ReplaceAll(data, []byte("${1}"+version+"${3}"))
	if err := os.WriteFile(path, updated, mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
