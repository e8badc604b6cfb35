package rcfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Config
	}{
		{
			name:  "string setting",
			input: "pager = less -R",
			want:  Config{"pager": "less -R"},
		},
		{
			name:  "bare name is boolean true",
			input: "color",
			want:  Config{"color": true},
		},
		{
			name:  "no prefix is boolean false",
			input: "nocolor",
			want:  Config{"color": false},
		},
		{
			name:  "trailing comment stripped",
			input: "prompt = repl>  # the default prompt",
			want:  Config{"prompt": "repl>"},
		},
		{
			name:  "whole line comment and blanks ignored",
			input: "# header\n\n  \ncolor\n",
			want:  Config{"color": true},
		},
		{
			name:  "later definition overrides earlier",
			input: "prompt = a\nprompt = b",
			want:  Config{"prompt": "b"},
		},
		{
			name:  "backslash continues the value",
			input: "banner = first \\\n    second",
			want:  Config{"banner": "first second"},
		},
		{
			name:  "empty value",
			input: "prompt =",
			want:  Config{"prompt": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_LaterFilesOverride(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "one.rc")
	require.NoError(t, os.WriteFile(first, []byte("prompt = one\ncolor\n"), 0o644))

	second := filepath.Join(dir, "two.rc")
	require.NoError(t, os.WriteFile(second, []byte("prompt = two\nnocolor\n"), 0o644))

	cfg, err := Load([]string{first, second})
	require.NoError(t, err)

	assert.Equal(t, "two", cfg.String("prompt", ""))
	assert.False(t, cfg.Bool("color", true))
}

func TestLoad_MissingFileSkipped(t *testing.T) {
	cfg, err := Load([]string{filepath.Join(t.TempDir(), "absent.rc")})
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestConfigAccessors(t *testing.T) {
	cfg := Config{"prompt": "x", "color": true}

	assert.Equal(t, "x", cfg.String("prompt", "d"))
	assert.Equal(t, "d", cfg.String("missing", "d"))
	assert.Equal(t, "d", cfg.String("color", "d")) // wrong type falls back
	assert.True(t, cfg.Bool("color", false))
	assert.False(t, cfg.Bool("prompt", false)) // wrong type falls back
}
