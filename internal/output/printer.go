// Package output is the console output collaborator of the shell engine.
// A Printer writes already-formed lines to a configurable destination,
// optionally applying lipgloss semantic styling. The engine only ever
// talks to the repltypes.Sink interface, so applications can substitute a
// pager or any other destination.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects how the printer renders.
type Mode int

const (
	// ModeAuto styles output when the destination is os.Stdout.
	ModeAuto Mode = iota
	// ModeStyled always applies semantic styles.
	ModeStyled
	// ModePlain never applies styles.
	ModePlain
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Printer writes shell output. It is safe for concurrent use, although
// the engine itself is single-threaded.
type Printer struct {
	mu     sync.Mutex
	writer io.Writer
	mode   Mode
	silent bool
}

// Option configures a Printer.
type Option func(*Printer)

// WithWriter directs output to w instead of os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(p *Printer) {
		if w != nil {
			p.writer = w
		}
	}
}

// WithMode forces a rendering mode.
func WithMode(mode Mode) Option {
	return func(p *Printer) { p.mode = mode }
}

// PlainText disables styling entirely. Use this for tests and for
// machine-consumed output.
func PlainText() Option {
	return func(p *Printer) { p.mode = ModePlain }
}

// Silent suppresses all output.
func Silent() Option {
	return func(p *Printer) { p.silent = true }
}

// NewPrinter creates a Printer writing to os.Stdout unless overridden.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// WriteLine emits one output line, appending the line terminator. It
// implements repltypes.Sink.
func (p *Printer) WriteLine(text string) error {
	return p.write(text, nil)
}

// Errorf emits a formatted error line with error styling.
func (p *Printer) Errorf(format string, args ...interface{}) error {
	return p.write(fmt.Sprintf(format, args...), &errorStyle)
}

// Warningf emits a formatted warning line.
func (p *Printer) Warningf(format string, args ...interface{}) error {
	return p.write(fmt.Sprintf(format, args...), &warningStyle)
}

// Infof emits a formatted informational line.
func (p *Printer) Infof(format string, args ...interface{}) error {
	return p.write(fmt.Sprintf(format, args...), &infoStyle)
}

func (p *Printer) write(text string, style *lipgloss.Style) error {
	if p.silent {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if style != nil && p.styled() {
		text = style.Render(text)
	}
	_, err := fmt.Fprintln(p.writer, text)
	return err
}

func (p *Printer) styled() bool {
	switch p.mode {
	case ModeStyled:
		return true
	case ModePlain:
		return false
	default:
		return p.writer == os.Stdout
	}
}
