package engine

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"replkit/pkg/repltypes"
)

// Hooks are the engine's named extension points. Every field has an
// identity or no-op default, so applications override only what they
// need. Precmd and Postcmd are expected to be pure transformations.
type Hooks struct {
	// Precmd rewrites the raw line before parsing. This is the sole
	// supported input-rewriting point (alias substitution, expansion).
	Precmd func(line string) string

	// Postcmd transforms a handler's output before it is emitted.
	Postcmd func(out string) string

	// Empty runs for blank or whitespace-only input instead of routing.
	Empty func(env repltypes.Environ) (string, error)

	// Default runs when no registered handler matches. It receives the
	// unrecognized command name as its first argument, which is what
	// distinguishes "unknown command" from "known command, odd args".
	Default func(env repltypes.Environ, command string, args []string) (string, error)

	// ShellEscape runs for the "!" command with the remaining tokens.
	ShellEscape func(env repltypes.Environ, args []string) (string, error)

	// Outro runs once on the quit transition; a non-empty result is
	// emitted as the session's last line.
	Outro func() string
}

func defaultHooks() Hooks {
	return Hooks{
		Precmd:  func(line string) string { return line },
		Postcmd: func(out string) string { return out },
		Empty: func(_ repltypes.Environ) (string, error) {
			return "", nil
		},
		Default: func(_ repltypes.Environ, command string, _ []string) (string, error) {
			return fmt.Sprintf("unknown command: %s", command), nil
		},
		ShellEscape: defaultShellEscape,
		Outro:       func() string { return "" },
	}
}

// defaultShellEscape runs the argument vector as an external process with
// the shell's ambient environment layered over the process environment,
// returning the combined output.
func defaultShellEscape(env repltypes.Environ, args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("!: no command given")
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = mergedOSEnv(env)

	out, err := cmd.CombinedOutput()
	text := strings.TrimRight(string(out), "\n")
	if err != nil {
		if text != "" {
			return "", fmt.Errorf("%s: %w: %s", args[0], err, text)
		}
		return "", fmt.Errorf("%s: %w", args[0], err)
	}
	return text, nil
}

// mergedOSEnv layers the shell's instance environment over the process
// environment for child processes. Duplicate keys resolve to the later
// entry, which is the instance value.
func mergedOSEnv(env repltypes.Environ) []string {
	merged := os.Environ()
	for k, v := range env.All() {
		merged = append(merged, k+"="+v)
	}
	return merged
}
