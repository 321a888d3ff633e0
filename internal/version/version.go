// Package version holds build-time version information, injected via
// ldflags by the release pipeline.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
