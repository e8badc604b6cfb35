// Package lineio provides the line-reader collaborators of the shell
// engine: a production reader backed by chzyer/readline with editing,
// history and tab completion, and a scripted reader for tests and batch
// runs. The engine depends only on repltypes.LineReader.
package lineio

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"replkit/internal/logger"
)

// ReadlineReader wraps a readline instance. It keeps its own history
// mirror so History, SetHistory and Persist have well-defined contents
// independent of readline's internals.
type ReadlineReader struct {
	rl          *readline.Instance
	historyFile string
	history     []string
	interrupted bool
}

// NewReadline creates a terminal line reader. historyFile may be empty to
// disable persistence. completions supplies the candidate command names
// for tab completion; it is consulted on every keystroke so a registry
// mutation is picked up immediately.
func NewReadline(historyFile string, completions func() []string) (*ReadlineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt:   "^C",
		EOFPrompt:         "",
		AutoComplete:      &commandCompleter{source: completions},
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}

	r := &ReadlineReader{rl: rl, historyFile: historyFile}
	r.loadHistory()
	return r, nil
}

// ReadLine implements repltypes.LineReader. A first interrupt on an empty
// line is swallowed; a second consecutive one signals end-of-input, so ^C
// ^C is a clean path to the quit transition.
func (r *ReadlineReader) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)

	line, err := r.rl.Readline()
	switch {
	case err == readline.ErrInterrupt:
		if len(line) == 0 {
			if r.interrupted {
				return "", io.EOF
			}
			r.interrupted = true
		}
		return "", nil
	case err == io.EOF:
		return "", io.EOF
	case err != nil:
		return "", err
	}

	r.interrupted = false
	if strings.TrimSpace(line) != "" {
		r.history = append(r.history, line)
	}
	return line, nil
}

// History implements repltypes.LineReader.
func (r *ReadlineReader) History() []string {
	return append([]string(nil), r.history...)
}

// SetHistory implements repltypes.LineReader. It replaces the mirror and
// replays the lines into readline's recall buffer.
func (r *ReadlineReader) SetHistory(lines []string) {
	r.history = append([]string(nil), lines...)
	for _, line := range lines {
		if err := r.rl.SaveHistory(line); err != nil {
			logger.Debug("could not seed readline history", "error", err)
			return
		}
	}
}

// Persist implements repltypes.LineReader, writing the history mirror to
// the configured file.
func (r *ReadlineReader) Persist() error {
	if r.historyFile == "" {
		return nil
	}
	data := strings.Join(r.history, "\n")
	if data != "" {
		data += "\n"
	}
	return os.WriteFile(r.historyFile, []byte(data), 0o600)
}

// Close implements repltypes.LineReader.
func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

func (r *ReadlineReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	data, err := os.ReadFile(r.historyFile)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("could not read history file", "path", r.historyFile, "error", err)
		}
		return
	}
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	r.SetHistory(lines)
}
