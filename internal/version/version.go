// Package version exposes build information stamped via ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time, e.g.
//
//	go build -ldflags "-X .../internal/version.Version=v1.2.0 \
//	  -X .../internal/version.CommitHash=$(git rev-parse HEAD) \
//	  -X .../internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version when built from a tag.
	Version = "dev"

	// CommitHash is the git commit the binary was built from.
	CommitHash = "unknown"

	// BuildTime is when the binary was built.
	BuildTime = "unknown"
)

// Info contains version and build information.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commitHash"`
	BuildTime  string `json:"buildTime"`
	GoVersion  string `json:"goVersion"`
	Platform   string `json:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version line.
func (i Info) String() string {
	return fmt.Sprintf("iotsgen %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
}
