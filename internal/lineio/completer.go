package lineio

import (
	"strings"
)

// commandCompleter implements readline.AutoCompleter over a dynamic
// candidate source. Only the command position (the first word) is
// completed; argument completion is left to the application.
type commandCompleter struct {
	source func() []string
}

// Do analyzes the line up to the cursor and returns the suffixes that
// would complete the current word, per the readline contract.
func (c *commandCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if c.source == nil {
		return nil, 0
	}

	head := string(line[:pos])
	if strings.ContainsAny(head, " \t") {
		// Past the command word.
		return nil, 0
	}

	var suggestions [][]rune
	for _, candidate := range c.source() {
		if strings.HasPrefix(candidate, head) {
			suggestions = append(suggestions, []rune(strings.TrimPrefix(candidate, head)))
		}
	}
	return suggestions, len(head)
}
