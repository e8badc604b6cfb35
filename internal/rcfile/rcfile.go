// Package rcfile reads the simple key/value startup files a shell loads
// at construction time. The format is line oriented:
//
//	name = value     string setting
//	name             boolean true shorthand
//	noname           boolean false shorthand
//	name = one \     trailing backslash continues the value
//	       two
//
// '#' starts a trailing comment. Later definitions of a name override
// earlier ones, and later files override earlier files for the same key.
package rcfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"replkit/internal/logger"
)

// Config is the flat mapping produced by loading RC files. Values are
// either string or bool. Treat it as read-only after loading.
type Config map[string]any

// String returns the string value for key, or def when the key is absent
// or holds a boolean.
func (c Config) String(key, def string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the boolean value for key, or def when the key is absent
// or holds a string.
func (c Config) Bool(key string, def bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return def
}

// Load reads each path in order into a single Config. Missing files are
// skipped with a debug log entry; any other read failure is returned.
func Load(paths []string) (Config, error) {
	cfg := Config{}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("rc file absent, skipping", "path", path)
				continue
			}
			return nil, fmt.Errorf("reading rc file %s: %w", path, err)
		}
		if err := parseInto(cfg, f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("parsing rc file %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		logger.Debug("rc file loaded", "path", path)
	}
	return cfg, nil
}

// Parse reads one RC-file stream into a fresh Config.
func Parse(r io.Reader) (Config, error) {
	cfg := Config{}
	if err := parseInto(cfg, r); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseInto(cfg Config, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripComment(scanner.Text())

		// Trailing backslash joins the next physical line onto this one.
		for strings.HasSuffix(strings.TrimRight(line, " \t"), "\\") {
			line = strings.TrimSuffix(strings.TrimRight(line, " \t"), "\\")
			if !scanner.Scan() {
				break
			}
			line += " " + strings.TrimSpace(stripComment(scanner.Text()))
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, value, found := strings.Cut(line, "="); found {
			cfg[strings.TrimSpace(name)] = strings.TrimSpace(value)
			continue
		}

		// Bare word: boolean shorthand, with a "no" prefix negating.
		if rest, negated := strings.CutPrefix(line, "no"); negated && rest != "" {
			cfg[rest] = false
		} else {
			cfg[line] = true
		}
	}
	return scanner.Err()
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}
