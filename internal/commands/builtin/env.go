package builtin

import (
	"fmt"
	"sort"
	"strings"

	"replkit/pkg/repltypes"
)

// EnvCommand inspects and mutates the shell's ambient environment.
// With no arguments it lists all entries; with one argument it prints
// that key; with KEY=VALUE it sets a session-persistent entry (unlike an
// inline overlay, which lasts one invocation).
type EnvCommand struct{}

// Name returns the command name "env".
func (c *EnvCommand) Name() string {
	return "env"
}

// Description returns the help topic text for env.
func (c *EnvCommand) Description() string {
	return "List the shell environment, print one key, or set KEY=VALUE for the session"
}

// Execute implements repltypes.Command.
func (c *EnvCommand) Execute(env repltypes.Environ, args []string) (string, error) {
	switch len(args) {
	case 0:
		all := env.All()
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s=%s", k, all[k]))
		}
		return strings.Join(lines, "\n"), nil

	case 1:
		if key, value, found := strings.Cut(args[0], "="); found {
			env.Set(key, value)
			return "", nil
		}
		value, ok := env.Get(args[0])
		if !ok {
			return "", fmt.Errorf("env: %s is not set", args[0])
		}
		return value, nil

	default:
		return "", fmt.Errorf("env: expected at most one argument, got %d", len(args))
	}
}
