package engine

import (
	"replkit/internal/parser"
)

// environ is the shell's ambient environment. It is scoped to one Shell
// instance so that two shells in the same process cannot interfere with
// each other; it never touches the process environment.
type environ struct {
	values map[string]string
}

func newEnviron(seed map[string]string) *environ {
	e := &environ{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		e.values[k] = v
	}
	return e
}

// Get implements repltypes.Environ.
func (e *environ) Get(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Set implements repltypes.Environ.
func (e *environ) Set(key, value string) {
	e.values[key] = value
}

// All implements repltypes.Environ.
func (e *environ) All() map[string]string {
	m := make(map[string]string, len(e.values))
	for k, v := range e.values {
		m[k] = v
	}
	return m
}

// apply merges an inline overlay into the environment and returns the
// function that undoes it. The engine defers the restore so it runs on
// every exit path out of a handler, error and panic included.
func (e *environ) apply(overlay []parser.Assign) (restore func()) {
	type saved struct {
		key     string
		value   string
		present bool
	}

	prior := make([]saved, 0, len(overlay))
	for _, a := range overlay {
		v, ok := e.values[a.Key]
		prior = append(prior, saved{key: a.Key, value: v, present: ok})
		e.values[a.Key] = a.Value
	}

	return func() {
		// Walk backwards so repeated keys land on their original value.
		for i := len(prior) - 1; i >= 0; i-- {
			s := prior[i]
			if s.present {
				e.values[s.key] = s.value
			} else {
				delete(e.values, s.key)
			}
		}
	}
}
