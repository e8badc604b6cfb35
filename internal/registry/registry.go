// Package registry manages command registration and lookup for a shell.
// It records which handler names exist for dispatch, help and tab
// completion. Registration is explicit: there is no runtime name
// introspection, the shell builds its registry once at startup.
package registry

import (
	"fmt"
	"sync"

	"replkit/pkg/repltypes"
)

// Registry is a thread-safe, order-preserving set of commands. The two
// derived name lists — completions (dispatchable names) and help topics —
// are computed from the registered commands but may be replaced wholesale
// through their setters when an application wants to advertise a
// different surface than it dispatches.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]repltypes.Command
	order    []string

	// Optional overrides for the derived name lists. nil means "derive
	// from the registered commands".
	completions []string
	helpTopics  []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands: make(map[string]repltypes.Command),
	}
}

// Discover builds a registry from an ordered command list. Later entries
// override earlier entries of the same name, which is how an application
// layers its commands over a base set.
func Discover(cmds ...repltypes.Command) *Registry {
	r := New()
	for _, cmd := range cmds {
		r.Replace(cmd)
	}
	return r
}

// Register adds a command. It returns an error for an empty name or a
// name that is already registered; use Replace for deliberate overrides.
func (r *Registry) Register(cmd repltypes.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command %s already registered", name)
	}

	r.commands[name] = cmd
	r.order = append(r.order, name)
	return nil
}

// Replace registers cmd, overriding any existing command of the same
// name. An overridden command keeps its original position so the
// registration order stays stable.
func (r *Registry) Replace(cmd repltypes.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := cmd.Name()
	if name == "" {
		return
	}
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = cmd
}

// Unregister removes a command by name. Removing an unknown name is not
// an error.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; !exists {
		return
	}
	delete(r.commands, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Resolve looks up a command by exact name. A false result routes the
// caller to its default-handler fallback; it is not an error.
func (r *Registry) Resolve(name string) (repltypes.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// ResolveHelp returns the help text for name. A false result means the
// caller should produce its generic "no help available" response.
func (r *Registry) ResolveHelp(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, exists := r.commands[name]
	if !exists || cmd.Description() == "" {
		return "", false
	}
	return cmd.Description(), true
}

// Completions returns the dispatchable command names in registration
// order, or the list installed with SetCompletions.
func (r *Registry) Completions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.completions != nil {
		return append([]string(nil), r.completions...)
	}
	return append([]string(nil), r.order...)
}

// SetCompletions replaces the advertised completion list. Passing nil
// reverts to deriving it from the registered commands.
func (r *Registry) SetCompletions(names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = names
}

// HelpTopics returns the names that have help text, in registration
// order, or the list installed with SetHelpTopics.
func (r *Registry) HelpTopics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.helpTopics != nil {
		return append([]string(nil), r.helpTopics...)
	}
	topics := make([]string, 0, len(r.order))
	for _, name := range r.order {
		if r.commands[name].Description() != "" {
			topics = append(topics, name)
		}
	}
	return topics
}

// SetHelpTopics replaces the advertised help topic list. Passing nil
// reverts to deriving it from the registered commands.
func (r *Registry) SetHelpTopics(names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpTopics = names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
