// Package version reports the build version of the binary.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with
// -ldflags "-X github.com/rollerweb/roller/internal/shared/version.Version=1.2.3".
var Version = "dev"

// Normalize ensures a version string has the "v" prefix semver expects.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// String is the canonical form of Version, for example "v1.2.3" for
// "1.2.3+build.7". Non semver builds such as "dev" are returned unchanged.
func String() string {
	v := Normalize(Version)
	if !semver.IsValid(v) {
		return strings.TrimSpace(Version)
	}
	return semver.Canonical(v)
}

// IsRelease reports whether the build carries a semver release version
// without a prerelease suffix.
func IsRelease() bool {
	v := Normalize(Version)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}
