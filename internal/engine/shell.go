// Package engine drives the read-eval-print loop of a replkit shell. It
// owns the per-iteration protocol: prompt resolution, line acquisition,
// the precmd hook, parsing, routing precedence, handler invocation under
// a scoped environment overlay, the postcmd hook, and output emission.
//
// The engine is single-threaded and synchronous. Its only blocking point
// is the line-reader collaborator; there is no overlap between loop
// iterations and no locking around the instance environment.
package engine

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"replkit/internal/help"
	"replkit/internal/logger"
	"replkit/internal/parser"
	"replkit/internal/rcfile"
	"replkit/internal/registry"
	"replkit/pkg/repltypes"
)

// Special-command patterns. These are checked before registry dispatch,
// so a registered handler named "help" or "exit" is shadowed by the
// special route. That precedence is deliberate and fixed.
var quitPattern = regexp.MustCompile(`(?i)^\s*(quit|exit|logout)\s*$`)

// Shell is the long-lived interpreter state: construction options, loaded
// RC configuration, the collaborators, the command registry, the prompt
// and the instance environment. Create one with New, then call Run.
type Shell struct {
	opts     repltypes.Options
	rc       rcfile.Config
	reader   repltypes.LineReader
	sink     repltypes.Sink
	registry *registry.Registry
	helpSys  *help.System
	env      *environ
	prompt   Prompt
	hooks    Hooks
	intro    string

	sessionID string
	log       *log.Logger
}

// Option configures a Shell at construction time.
type Option func(*Shell)

// WithReader installs the line-reader collaborator.
func WithReader(r repltypes.LineReader) Option {
	return func(sh *Shell) { sh.reader = r }
}

// WithSink installs the output collaborator.
func WithSink(s repltypes.Sink) Option {
	return func(sh *Shell) { sh.sink = s }
}

// WithCommands registers commands in order; later entries override
// earlier ones of the same name.
func WithCommands(cmds ...repltypes.Command) Option {
	return func(sh *Shell) {
		for _, cmd := range cmds {
			sh.registry.Replace(cmd)
		}
	}
}

// WithPrompt installs the prompt variant.
func WithPrompt(p Prompt) Option {
	return func(sh *Shell) { sh.prompt = p }
}

// WithIntro sets the text emitted once before the first prompt.
func WithIntro(text string) Option {
	return func(sh *Shell) { sh.intro = text }
}

// WithEnviron seeds the instance environment.
func WithEnviron(seed map[string]string) Option {
	return func(sh *Shell) { sh.env = newEnviron(seed) }
}

// WithHooks overrides extension points. Zero-valued fields keep their
// defaults.
func WithHooks(h Hooks) Option {
	return func(sh *Shell) {
		if h.Precmd != nil {
			sh.hooks.Precmd = h.Precmd
		}
		if h.Postcmd != nil {
			sh.hooks.Postcmd = h.Postcmd
		}
		if h.Empty != nil {
			sh.hooks.Empty = h.Empty
		}
		if h.Default != nil {
			sh.hooks.Default = h.Default
		}
		if h.ShellEscape != nil {
			sh.hooks.ShellEscape = h.ShellEscape
		}
		if h.Outro != nil {
			sh.hooks.Outro = h.Outro
		}
	}
}

// New builds a Shell from the construction options mapping and the given
// configuration. Unrecognized keys in opts are preserved verbatim and
// retrievable with Opt for the whole session. RC files named by
// repltypes.OptRCFiles are loaded in order, later files overriding
// earlier ones.
func New(opts repltypes.Options, options ...Option) (*Shell, error) {
	if opts == nil {
		opts = repltypes.Options{}
	}

	sh := &Shell{
		opts:      opts,
		rc:        rcfile.Config{},
		registry:  registry.New(),
		env:       newEnviron(nil),
		hooks:     defaultHooks(),
		prompt:    LiteralPrompt("> "),
		sessionID: uuid.NewString(),
		log:       logger.NewComponentLogger("Engine"),
	}

	if paths, ok := opts[repltypes.OptRCFiles].([]string); ok {
		cfg, err := rcfile.Load(paths)
		if err != nil {
			return nil, err
		}
		sh.rc = cfg
	}

	// The RC "prompt" key sets the default literal prompt; WithPrompt
	// still overrides it.
	if p := sh.rc.String("prompt", ""); p != "" {
		sh.prompt = LiteralPrompt(p + " ")
	}

	for _, opt := range options {
		opt(sh)
	}

	if sh.reader == nil {
		return nil, fmt.Errorf("a line reader is required")
	}
	if sh.sink == nil {
		return nil, fmt.Errorf("an output sink is required")
	}

	sh.helpSys = help.New(sh.registry)
	sh.log.Debug("shell constructed", "session", sh.sessionID, "commands", sh.registry.Len())
	return sh, nil
}

// Opt returns a construction option by key, recognized or not.
func (sh *Shell) Opt(key string) (any, bool) {
	v, ok := sh.opts[key]
	return v, ok
}

// SetOpt overlays a construction option for the rest of the session.
func (sh *Shell) SetOpt(key string, value any) {
	sh.opts[key] = value
}

// RC returns the loaded RC-file configuration. Read-only by convention.
func (sh *Shell) RC() rcfile.Config { return sh.rc }

// Env returns the instance environment.
func (sh *Shell) Env() repltypes.Environ { return sh.env }

// Registry returns the command registry.
func (sh *Shell) Registry() *registry.Registry { return sh.registry }

// Help returns the help system.
func (sh *Shell) Help() *help.System { return sh.helpSys }

// Reader returns the line-reader collaborator.
func (sh *Shell) Reader() repltypes.LineReader { return sh.reader }

// SessionID returns the unique ID of this shell session, used as the log
// correlation key.
func (sh *Shell) SessionID() string { return sh.sessionID }

// Run executes the loop until end-of-input or a quit command. Handler
// faults are displayed and the loop continues; only a line-reader failure
// other than io.EOF propagates out.
func (sh *Shell) Run() error {
	sh.log.Debug("state", "state", "intro", "session", sh.sessionID)
	if sh.intro != "" {
		sh.emit(sh.intro)
	}

	for {
		prompt := sh.prompt.resolve(sh)

		line, err := sh.reader.ReadLine(prompt)
		if errors.Is(err, io.EOF) {
			sh.log.Debug("state", "state", "quit", "session", sh.sessionID, "reason", "end of input")
			break
		}
		if err != nil {
			return fmt.Errorf("line reader failed: %w", err)
		}

		line = sh.hooks.Precmd(line)

		parsed, err := parser.Parse(line)
		if err != nil {
			sh.emit(fmt.Sprintf("error: %s", err))
			continue
		}

		out, quit, err := sh.dispatch(parsed)
		if err != nil {
			// Handler faults become displayed lines; the loop never dies.
			sh.log.Debug("handler fault", "command", parsed.Command, "error", err, "session", sh.sessionID)
			sh.emit(fmt.Sprintf("error: %s", err))
		} else if out = sh.hooks.Postcmd(out); out != "" {
			sh.emit(out)
		}

		if quit {
			sh.log.Debug("state", "state", "quit", "session", sh.sessionID, "reason", "quit command")
			break
		}
	}

	if out := sh.hooks.Outro(); out != "" {
		sh.emit(out)
	}
	if err := sh.reader.Persist(); err != nil {
		logger.Warn("could not persist history", "error", err, "session", sh.sessionID)
	}
	sh.log.Debug("state", "state", "terminal", "session", sh.sessionID)
	return nil
}

// dispatch routes one parsed line. Precedence: quit, help, shell escape,
// registry lookup, default handler; a blank command goes to the empty
// hook instead of routing. The env overlay is applied around the chosen
// handler and restored on every exit path.
func (sh *Shell) dispatch(p *parser.ParsedLine) (out string, quit bool, err error) {
	command := p.Command

	switch {
	case command == "":
		out, err = sh.invoke(p.Env, func() (string, error) {
			return sh.hooks.Empty(sh.env)
		})
		return out, false, err

	case quitPattern.MatchString(command):
		sh.log.Debug("route", "command", command, "route", "quit", "session", sh.sessionID)
		return "", true, nil

	case strings.EqualFold(command, "help") || command == "?":
		sh.log.Debug("route", "command", command, "route", "help", "session", sh.sessionID)
		out, err = sh.invoke(p.Env, func() (string, error) {
			return sh.helpSys.Respond(p.Args), nil
		})
		return out, false, err

	case command == "!":
		sh.log.Debug("route", "command", command, "route", "shell-escape", "session", sh.sessionID)
		out, err = sh.invoke(p.Env, func() (string, error) {
			return sh.hooks.ShellEscape(sh.env, p.Args)
		})
		return out, false, err
	}

	if cmd, ok := sh.registry.Resolve(command); ok {
		sh.log.Debug("route", "command", command, "route", "dispatch", "session", sh.sessionID)
		out, err = sh.invoke(p.Env, func() (string, error) {
			return cmd.Execute(sh.env, p.Args)
		})
		return out, false, err
	}

	sh.log.Debug("route", "command", command, "route", "default", "session", sh.sessionID)
	out, err = sh.invoke(p.Env, func() (string, error) {
		return sh.hooks.Default(sh.env, command, p.Args)
	})
	return out, false, err
}

// invoke runs fn with the inline overlay applied. The restore and the
// panic recovery are both deferred, so the overlay is unwound even when
// the handler fails or panics.
func (sh *Shell) invoke(overlay []parser.Assign, fn func() (string, error)) (out string, err error) {
	restore := sh.env.apply(overlay)
	defer restore()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return fn()
}

func (sh *Shell) emit(text string) {
	if err := sh.sink.WriteLine(text); err != nil {
		logger.Warn("output sink failed", "error", err, "session", sh.sessionID)
	}
}
