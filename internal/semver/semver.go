package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	xsemver "golang.org/x/mod/semver"
)

// Kind selects which version component a bump increments.
type Kind string

const (
	// Major increments the first component and zeroes the rest.
	Major Kind = "major"
	// Minor increments the second component and zeroes the patch.
	Minor Kind = "minor"
	// Patch increments the third component.
	Patch Kind = "patch"
)

// ErrInvalidKind reports a bump kind outside major, minor, patch.
var ErrInvalidKind = errors.New("invalid bump kind")

// ParseKind validates a bump kind supplied by flags or config.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Major, Minor, Patch:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w %q (want major, minor, or patch)", ErrInvalidKind, s)
}

// Version is a semantic version triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse reads a MAJOR.MINOR.PATCH string into a Version. Prerelease and
// build suffixes are rejected; published versions are plain triples. Only
// canonical components are accepted, so leading zeros ("1.02.3") are an
// error rather than being renormalized on the next write.
func Parse(s string) (Version, error) {
	if !xsemver.IsValid("v" + s) {
		return Version{}, fmt.Errorf("invalid semantic version %q", s)
	}
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid semantic version %q: want three components", s)
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid semantic version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Bump derives the next version, zeroing every component of lower
// significance than the bumped one. The receiver is never modified.
func (v Version) Bump(kind Kind) (Version, error) {
	switch kind {
	case Major:
		return Version{Major: v.Major + 1}, nil
	case Minor:
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	}
	return Version{}, fmt.Errorf("%w %q", ErrInvalidKind, kind)
}
