package builtin

import (
	"replkit/pkg/repltypes"
)

// All returns the base command set in registration order. The reader is
// needed by the history command; pass the shell's line reader.
func All(reader repltypes.LineReader) []repltypes.Command {
	return []repltypes.Command{
		&EchoCommand{},
		&EnvCommand{},
		NewHistoryCommand(reader),
		&VersionCommand{},
	}
}
