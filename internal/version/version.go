// Package version carries the build fingerprints of the irkit CLI. The
// string variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

const (
	major = "0"
	minor = "3"
	patch = "0"
	pre   = "-dev"
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI. Left empty, it is derived
	// from the compiled-in components.
	Version = ""

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// String returns the version without terminal colors.
func String() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	return major + "." + minor + "." + patch + pre
}

// Colored returns the version with each component colored. An overridden
// Version is returned as is.
func Colored() string {
	if v := strings.TrimSpace(Version); v != "" {
		return v
	}
	return majorColor.Sprint(major) + "." + minorColor.Sprint(minor) + "." + patchColor.Sprint(patch) + pre
}
