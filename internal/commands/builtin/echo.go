// Package builtin holds the base command set a replkit shell starts
// with. Applications register these explicitly and may override any of
// them by registering their own command under the same name.
package builtin

import (
	"strings"

	"replkit/pkg/repltypes"
)

// EchoCommand writes its arguments back, separated by single spaces.
type EchoCommand struct{}

// Name returns the command name "echo".
func (c *EchoCommand) Name() string {
	return "echo"
}

// Description returns the help topic text for echo.
func (c *EchoCommand) Description() string {
	return "Print the arguments, joined by single spaces"
}

// Execute implements repltypes.Command.
func (c *EchoCommand) Execute(_ repltypes.Environ, args []string) (string, error) {
	return strings.Join(args, " "), nil
}
