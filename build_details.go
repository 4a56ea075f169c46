package reportio

import (
	"fmt"
	"runtime"
)

var (
	// Set with -ldflags "-X github.com/erraggy/reportio.version=..." at
	// release time; source builds report "dev".
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown" // RFC3339
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'
func Commit() string {
	return commit
}

// BuildTime returns the build timestamp, or 'unknown'
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version
func GoVersion() string {
	return runtime.Version()
}

// BuildInfo returns all build metadata, one labeled value per line.
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
