package version

import (
	"fmt"

	"github.com/blang/semver/v4"
)

// Version is overridden at build time with -ldflags "-X github.com/rhobs/finance-mcp/pkg/version.Version=..."
var Version = "0.1.0"

// Parse returns the semantic version of the build.
// A leading "v" is accepted.
func Parse() (semver.Version, error) {
	v, err := semver.ParseTolerant(Version)
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid build version %q: %w", Version, err)
	}
	return v, nil
}

// String returns the normalized version, or the raw value when it is not a semantic version
func String() string {
	v, err := Parse()
	if err != nil {
		return Version
	}
	return v.String()
}
