package lineio

import (
	"io"
)

// ScriptReader feeds a fixed sequence of lines to the engine and then
// signals end-of-input. It backs batch mode and tests.
type ScriptReader struct {
	lines   []string
	next    int
	history []string
}

// NewScriptReader creates a reader over the given lines.
func NewScriptReader(lines []string) *ScriptReader {
	return &ScriptReader{lines: lines}
}

// ReadLine implements repltypes.LineReader, returning io.EOF once the
// script is exhausted. The prompt is accepted and discarded.
func (s *ScriptReader) ReadLine(_ string) (string, error) {
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	s.history = append(s.history, line)
	return line, nil
}

// History implements repltypes.LineReader.
func (s *ScriptReader) History() []string {
	return append([]string(nil), s.history...)
}

// SetHistory implements repltypes.LineReader.
func (s *ScriptReader) SetHistory(lines []string) {
	s.history = append([]string(nil), lines...)
}

// Persist implements repltypes.LineReader as a no-op.
func (s *ScriptReader) Persist() error { return nil }

// Close implements repltypes.LineReader as a no-op.
func (s *ScriptReader) Close() error { return nil }
