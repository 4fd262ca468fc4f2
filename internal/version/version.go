package version

import "github.com/fatih/color"

// Build metadata for the vega toolchain. Release builds override these
// variables through -ldflags; a plain source build reports the dev
// defaults below.

const (
	major = "0"
	minor = "1"
	patch = "0"
	pre   = "dev"
)

var (
	majorStyle = color.New(color.FgCyan, color.Bold)
	minorStyle = color.New(color.FgMagenta, color.Bold)
	patchStyle = color.New(color.FgWhite, color.Bold)

	// Version is the semantic version reported by `vega version`.
	Version = majorStyle.Sprint(major) + "." + minorStyle.Sprint(minor) + "." + patchStyle.Sprint(patch) + "-" + pre

	// GitCommit is the commit hash the binary was built from, when known.
	GitCommit = ""

	// BuildDate is the build timestamp in ISO-8601, when known.
	BuildDate = ""
)
