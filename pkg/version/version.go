// Package version reports build metadata for the mistconv binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version, GitCommit, and BuildDate are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/newtron-network/mistconv/pkg/version.Version=v1.0.0 \
//	  -X github.com/newtron-network/mistconv/pkg/version.GitCommit=abc1234 \
//	  -X github.com/newtron-network/mistconv/pkg/version.BuildDate=2026-01-01T00:00:00Z"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo is the version information shown by "mistconv version".
type BuildInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information. When the commit was not set via
// ldflags, the VCS revision recorded by the Go toolchain is used.
func Get() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info.GitCommit == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					info.GitCommit = s.Value[:7]
				}
			}
		}
	}
	return info
}

// String formats the build information for display.
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s (%s) built %s, %s %s", b.Version, b.GitCommit, b.BuildDate, b.GoVersion, b.Platform)
}

// Info returns a formatted version string for display.
func Info() string {
	return Get().String()
}
