// Package version provides build-time version information.
package version

import "fmt"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.3.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns "<version> (<commit>, built <time>)", omitting unknown parts.
func String() string {
	switch {
	case GitCommit != "unknown" && BuildTime != "unknown":
		return fmt.Sprintf("%s (%s, built %s)", Version, GitCommit, BuildTime)
	case GitCommit != "unknown":
		return fmt.Sprintf("%s (%s)", Version, GitCommit)
	default:
		return Version
	}
}
