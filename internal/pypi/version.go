package pypi

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion strips a leading "v" and parses the version leniently, so
// short forms such as "0.9" are accepted.
func ParseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}

// CompareVersions compares two version strings.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func CompareVersions(a, b string) (int, error) {
	av, err := ParseVersion(a)
	if err != nil {
		return 0, err
	}
	bv, err := ParseVersion(b)
	if err != nil {
		return 0, err
	}
	return av.Compare(bv), nil
}
