package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBuildInfo(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate())

	setBuildInfo(t, "not-a-version", "unknown", "unknown")
	assert.Error(t, Validate())
}

func TestGetInfo(t *testing.T) {
	setBuildInfo(t, "1.2.3", "abcdef1234567890", "2026-01-02")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abcdef1234567890", info.GitCommit)
	assert.Contains(t, info.Platform, "/")
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"))
}

func TestFormatted(t *testing.T) {
	setBuildInfo(t, "1.2.3", "abcdef1234567890", "2026-01-02")
	assert.Equal(t, "replkit v1.2.3, commit abcdef1, built 2026-01-02", Formatted())

	setBuildInfo(t, "1.2.3", "unknown", "unknown")
	assert.Equal(t, "replkit v1.2.3", Formatted())
}

func TestIsPrerelease(t *testing.T) {
	setBuildInfo(t, "1.0.0-rc.1", "unknown", "unknown")
	assert.True(t, IsPrerelease())

	setBuildInfo(t, "1.0.0", "unknown", "unknown")
	assert.False(t, IsPrerelease())
}
