// Package version provides version information for replkit binaries,
// with build-time injection via -ldflags and semantic-version validation.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information, overridable at compile time:
//
//	go build -ldflags "-X replkit/internal/version.Version=... \
//	                   -X replkit/internal/version.GitCommit=... \
//	                   -X replkit/internal/version.BuildDate=..."
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the assembled version metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns full version information, validating Version as a
// semantic version.
func GetInfo() (*Info, error) {
	if _, err := semver.NewVersion(Version); err != nil {
		return nil, fmt.Errorf("invalid semantic version %q: %w", Version, err)
	}
	return &Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}, nil
}

// Formatted returns a one-line human-readable version string.
func Formatted() string {
	s := fmt.Sprintf("replkit v%s", Version)
	if GitCommit != "unknown" && GitCommit != "" {
		commit := GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		s += fmt.Sprintf(", commit %s", commit)
	}
	if BuildDate != "unknown" && BuildDate != "" {
		s += fmt.Sprintf(", built %s", BuildDate)
	}
	return s
}

// IsPrerelease reports whether the current version carries a prerelease
// suffix.
func IsPrerelease() bool {
	sv, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return sv.Prerelease() != ""
}

// Validate checks that Version parses as a semantic version.
func Validate() error {
	_, err := semver.NewVersion(Version)
	return err
}
