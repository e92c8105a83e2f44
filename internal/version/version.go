// Package version holds the build identity printed by the version
// command. GitCommit and BuildDate are meant to be stamped at build
// time, e.g.
//
//	-ldflags "-X collabscan/internal/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import "github.com/fatih/color"

var (
	// GitCommit is the short hash of the commit the binary was built
	// from; empty for local builds.
	GitCommit = ""

	// BuildDate is the ISO-8601 build timestamp; empty for local
	// builds.
	BuildDate = ""
)

var (
	major = color.New(color.FgYellow, color.Bold).Sprint("0")
	minor = color.New(color.FgGreen, color.Bold).Sprint("1")
	patch = color.New(color.FgBlue, color.Bold).Sprint("0")

	// Version is the colorized semantic version of the tool.
	Version = major + "." + minor + "." + patch + "-dev"
)
