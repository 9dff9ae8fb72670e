package buildinfo

import "fmt"

// Set via -ldflags "-X github.com/cleared-dev/taxflow/internal/buildinfo.Version=..." at release.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String is the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
