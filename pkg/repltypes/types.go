// Package repltypes contains the shared types and collaborator interfaces
// of the replkit framework. Implementation packages under internal/ depend
// on this package; embedding applications implement its interfaces to
// customize a shell.
package repltypes

// Command is a dispatchable handler. A concrete shell registers a set of
// Commands at construction time; the engine resolves parsed command names
// against that set by exact match.
type Command interface {
	// Name returns the command name used for dispatch, help and completion.
	Name() string

	// Description returns the one-line help topic text for the command.
	Description() string

	// Execute runs the command with the given argument list. The env is the
	// shell's ambient environment with any inline overlay already applied
	// for the duration of this call. A non-empty return string is emitted
	// through the output sink by the engine.
	Execute(env Environ, args []string) (string, error)
}

// Environ is the ambient key/value environment visible to a handler
// invocation. It is scoped to a single Shell instance, never the process
// environment.
type Environ interface {
	Get(key string) (string, bool)
	Set(key, value string)
	// All returns a copy of the current environment.
	All() map[string]string
}

// LineReader acquires input lines, typically with line editing and history.
// ReadLine blocks until a line is available and returns io.EOF when the
// input source is exhausted; that is the engine's clean-quit signal, not an
// error condition.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	History() []string
	SetHistory(lines []string)
	// Persist flushes history to durable storage, if any.
	Persist() error
	Close() error
}

// Sink receives fully formed output lines. WriteLine is always called with
// a single line not yet carrying its terminator; the sink appends it. The
// engine never writes to a fixed stream directly, so applications may
// redirect output to a pager or any other destination.
type Sink interface {
	WriteLine(text string) error
}

// Options is the construction-time configuration mapping of a shell.
// Recognized keys are defined as constants below; unrecognized keys are
// preserved verbatim and retrievable for the whole session.
type Options map[string]any

// Recognized Options keys.
const (
	// OptHistoryFile is the path the line reader persists history to.
	OptHistoryFile = "history_file"
	// OptRCFiles is an ordered []string of RC-file paths, loaded in order
	// with later files overriding earlier ones.
	OptRCFiles = "rc_files"
)
