// Package version holds build metadata stamped via -ldflags at release
// time; a plain `go build` reports the dev defaults.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)
