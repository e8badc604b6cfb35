package builtin

import (
	"fmt"
	"strings"

	"replkit/pkg/repltypes"
)

// HistoryCommand lists the session's input history, numbered from 1.
// "history clear" empties it.
type HistoryCommand struct {
	reader repltypes.LineReader
}

// NewHistoryCommand creates a history command over the shell's line
// reader.
func NewHistoryCommand(reader repltypes.LineReader) *HistoryCommand {
	return &HistoryCommand{reader: reader}
}

// Name returns the command name "history".
func (c *HistoryCommand) Name() string {
	return "history"
}

// Description returns the help topic text for history.
func (c *HistoryCommand) Description() string {
	return "Show the input history; 'history clear' empties it"
}

// Execute implements repltypes.Command.
func (c *HistoryCommand) Execute(_ repltypes.Environ, args []string) (string, error) {
	if len(args) == 1 && args[0] == "clear" {
		c.reader.SetHistory(nil)
		return "", nil
	}
	if len(args) > 0 {
		return "", fmt.Errorf("history: unexpected arguments: %s", strings.Join(args, " "))
	}

	lines := c.reader.History()
	if len(lines) == 0 {
		return "history is empty", nil
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d  %s", i+1, line)
	}
	return b.String(), nil
}
