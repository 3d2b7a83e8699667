// Package version holds build metadata for the i3keep binary.
package version

// These values are overridden at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
