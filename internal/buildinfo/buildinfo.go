// Package buildinfo holds build-time variables injected via ldflags.
package buildinfo

import "fmt"

// Populated by -ldflags at build time; defaults used for local dev.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Summary is the one-line description printed by `gomate version`.
func Summary() string {
	return fmt.Sprintf("gomate %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
