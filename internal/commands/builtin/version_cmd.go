package builtin

import (
	"replkit/internal/version"
	"replkit/pkg/repltypes"
)

// VersionCommand prints the replkit build version.
type VersionCommand struct{}

// Name returns the command name "version".
func (c *VersionCommand) Name() string {
	return "version"
}

// Description returns the help topic text for version.
func (c *VersionCommand) Description() string {
	return "Show the replkit version"
}

// Execute implements repltypes.Command.
func (c *VersionCommand) Execute(_ repltypes.Environ, _ []string) (string, error) {
	return version.Formatted(), nil
}
