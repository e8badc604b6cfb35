// Package help resolves the shell's help command against the command
// registry's help topics. Topic listings are sorted lexicographically so
// output is deterministic regardless of registration order.
package help

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"replkit/internal/registry"
)

// System answers help requests. Besides the registry-derived topics it
// can carry supplemental topics loaded from a YAML file, for help text
// that has no command behind it (concepts, syntax notes).
type System struct {
	mu    sync.RWMutex
	reg   *registry.Registry
	extra map[string]string
}

// New creates a help system over reg.
func New(reg *registry.Registry) *System {
	return &System{
		reg:   reg,
		extra: make(map[string]string),
	}
}

// Respond produces the help output for the given arguments. With no
// arguments it lists all topics; with a topic it returns that topic's
// text or a fixed not-found line. It never fails.
func (s *System) Respond(args []string) string {
	if len(args) == 0 {
		return s.listing()
	}
	return s.topic(args[0])
}

func (s *System) listing() string {
	seen := make(map[string]bool)
	var topics []string
	for _, name := range s.reg.HelpTopics() {
		if !seen[name] {
			seen[name] = true
			topics = append(topics, name)
		}
	}

	s.mu.RLock()
	for name := range s.extra {
		if !seen[name] {
			seen[name] = true
			topics = append(topics, name)
		}
	}
	s.mu.RUnlock()

	sort.Strings(topics)

	var b strings.Builder
	b.WriteString("Available help topics:")
	for _, name := range topics {
		b.WriteString("\n  ")
		b.WriteString(name)
	}
	return b.String()
}

func (s *System) topic(name string) string {
	if text, ok := s.reg.ResolveHelp(name); ok {
		return text
	}

	s.mu.RLock()
	text, ok := s.extra[name]
	s.mu.RUnlock()
	if ok {
		return text
	}

	return fmt.Sprintf("no help available for %s", name)
}

// AddTopic installs a supplemental topic. Registry topics of the same
// name take precedence on lookup.
func (s *System) AddTopic(name, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extra[name] = text
}

// LoadTopicsFile merges supplemental topics from a YAML file of the form
// "name: text".
func (s *System) LoadTopicsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading help topics file: %w", err)
	}

	topics := make(map[string]string)
	if err := yaml.Unmarshal(data, &topics); err != nil {
		return fmt.Errorf("parsing help topics file %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, text := range topics {
		s.extra[name] = text
	}
	return nil
}
