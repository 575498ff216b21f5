// Package version parses game version strings ("1.20.1", "1.21") and answers
// the "at least X.Y" questions used to pick version-dependent archive paths.
//
// The raw input is kept alongside the parsed triple: directory and file names
// are derived from what the user typed, comparisons from the normalized form.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned for empty, non-numeric or over-long version strings.
var ErrMalformed = errors.New("malformed version")

// Version is a parsed version string. Missing trailing components are zero.
type Version struct {
	Raw   string
	Major int
	Minor int
	Patch int
}

// Parse accepts one to three dot-separated non-negative integers.
func Parse(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Version{}, fmt.Errorf("%w: empty string", ErrMalformed)
	}
	parts := strings.Split(raw, ".")
	if len(parts) > 3 {
		return Version{}, fmt.Errorf("%w: %q has more than three components", ErrMalformed, raw)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := parseComponent(p)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrMalformed, raw, err)
		}
		nums[i] = n
	}
	return Version{Raw: raw, Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// parseComponent rejects signs and anything that is not plain ASCII digits.
func parseComponent(p string) (int, error) {
	if p == "" {
		return 0, errors.New("empty component")
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return 0, fmt.Errorf("component %q is not a non-negative integer", p)
		}
	}
	return strconv.Atoi(p)
}

// Normalize right-pads s with zero components to exactly three.
//
//	1.20   → 1.20.0
//	1.20.1 → 1.20.1
func Normalize(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// String returns the normalized three-component form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders versions lexicographically by (major, minor, patch).
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return cmpInt(v.Major, o.Major)
	case v.Minor != o.Minor:
		return cmpInt(v.Minor, o.Minor)
	default:
		return cmpInt(v.Patch, o.Patch)
	}
}

// AtLeast reports whether v >= major.minor.0.
func (v Version) AtLeast(major, minor int) bool {
	return v.Compare(Version{Major: major, Minor: minor}) >= 0
}

// Underscored is the raw version with dots replaced, used in output names.
func (v Version) Underscored() string {
	return strings.ReplaceAll(v.Raw, ".", "_")
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
