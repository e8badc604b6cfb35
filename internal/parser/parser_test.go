package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_WhitespaceSplitting(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCommand string
		wantArgs    []string
	}{
		{
			name:        "simple command with args",
			input:       "foo bar baz",
			wantCommand: "foo",
			wantArgs:    []string{"bar", "baz"},
		},
		{
			name:        "runs of whitespace collapse",
			input:       "  foo \t bar   baz  ",
			wantCommand: "foo",
			wantArgs:    []string{"bar", "baz"},
		},
		{
			name:        "single token",
			input:       "help",
			wantCommand: "help",
			wantArgs:    nil,
		},
		{
			name:        "empty line",
			input:       "",
			wantCommand: "",
			wantArgs:    nil,
		},
		{
			name:        "whitespace only",
			input:       "   \t  ",
			wantCommand: "",
			wantArgs:    nil,
		},
		{
			name:        "pipe and redirect are literal tokens",
			input:       "foo | grep x > out",
			wantCommand: "foo",
			wantArgs:    []string{"|", "grep", "x", ">", "out"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, parsed.Command)
			assert.Equal(t, tt.wantArgs, parsed.Args)
			assert.Empty(t, parsed.Env)
		})
	}
}

func TestParse_Quoting(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCommand string
		wantArgs    []string
	}{
		{
			name:        "double quotes preserve embedded whitespace",
			input:       `foo "bar baz" qux`,
			wantCommand: "foo",
			wantArgs:    []string{"bar baz", "qux"},
		},
		{
			name:        "single quotes preserve embedded whitespace",
			input:       "foo 'bar  baz'",
			wantCommand: "foo",
			wantArgs:    []string{"bar  baz"},
		},
		{
			name:        "adjacent quoted and bare text join into one token",
			input:       `echo pre"mid dle"post`,
			wantCommand: "echo",
			wantArgs:    []string{"premid dlepost"},
		},
		{
			name:        "empty quoted token survives",
			input:       `foo "" bar`,
			wantCommand: "foo",
			wantArgs:    []string{"", "bar"},
		},
		{
			name:        "backslash escapes whitespace",
			input:       `foo bar\ baz`,
			wantCommand: "foo",
			wantArgs:    []string{"bar baz"},
		},
		{
			name:        "backslash escapes quote",
			input:       `foo \"bar`,
			wantCommand: "foo",
			wantArgs:    []string{`"bar`},
		},
		{
			name:        "backslash is literal inside single quotes",
			input:       `foo 'a\b'`,
			wantCommand: "foo",
			wantArgs:    []string{`a\b`},
		},
		{
			name:        "double quotes keep hash literal",
			input:       `foo "bar # baz"`,
			wantCommand: "foo",
			wantArgs:    []string{"bar # baz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, parsed.Command)
			assert.Equal(t, tt.wantArgs, parsed.Args)
		})
	}
}

func TestParse_EnvOverlay(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCommand string
		wantEnv     map[string]string
		wantArgs    []string
	}{
		{
			name:        "single assignment",
			input:       "FOO=bar cmd",
			wantCommand: "cmd",
			wantEnv:     map[string]string{"FOO": "bar"},
		},
		{
			name:        "later assignment to same key wins",
			input:       "A=1 B=2 A=3 cmd x",
			wantCommand: "cmd",
			wantEnv:     map[string]string{"A": "3", "B": "2"},
			wantArgs:    []string{"x"},
		},
		{
			name:        "empty value sets empty string",
			input:       "FOO= cmd",
			wantCommand: "cmd",
			wantEnv:     map[string]string{"FOO": ""},
		},
		{
			name:        "quoted value keeps whitespace",
			input:       `GREETING="hello world" cmd`,
			wantCommand: "cmd",
			wantEnv:     map[string]string{"GREETING": "hello world"},
		},
		{
			name:        "assignments only, no command",
			input:       "FOO=bar BAZ=qux",
			wantCommand: "",
			wantEnv:     map[string]string{"FOO": "bar", "BAZ": "qux"},
		},
		{
			name:        "assignment after command is an ordinary arg",
			input:       "cmd FOO=bar",
			wantCommand: "cmd",
			wantEnv:     map[string]string{},
			wantArgs:    []string{"FOO=bar"},
		},
		{
			name:        "quoted name is not an assignment",
			input:       `"FOO"=bar x`,
			wantCommand: "FOO=bar",
			wantEnv:     map[string]string{},
			wantArgs:    []string{"x"},
		},
		{
			name:        "non-identifier name is not an assignment",
			input:       "1FOO=bar x",
			wantCommand: "1FOO=bar",
			wantEnv:     map[string]string{},
			wantArgs:    []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, parsed.Command)
			assert.Equal(t, tt.wantEnv, parsed.EnvMap())
			assert.Equal(t, tt.wantArgs, parsed.Args)
		})
	}
}

func TestParse_EnvOverlayOrder(t *testing.T) {
	parsed, err := Parse("B=2 A=1 B=3 cmd")
	require.NoError(t, err)

	// Encounter order is preserved, value is the last one assigned.
	require.Len(t, parsed.Env, 2)
	assert.Equal(t, Assign{Key: "B", Value: "3"}, parsed.Env[0])
	assert.Equal(t, Assign{Key: "A", Value: "1"}, parsed.Env[1])
}

func TestParse_Comments(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCommand string
		wantArgs    []string
	}{
		{
			name:        "trailing comment stripped",
			input:       "cmd x # trailing",
			wantCommand: "cmd",
			wantArgs:    []string{"x"},
		},
		{
			name:        "whole line comment",
			input:       "# nothing here",
			wantCommand: "",
			wantArgs:    nil,
		},
		{
			name:        "escaped hash is literal",
			input:       `cmd \#tag`,
			wantCommand: "cmd",
			wantArgs:    []string{"#tag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommand, parsed.Command)
			assert.Equal(t, tt.wantArgs, parsed.Args)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated double quote", input: `cmd "unterminated`},
		{name: "unterminated single quote", input: "cmd 'unterminated"},
		{name: "trailing backslash", input: `cmd foo\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, parsed)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.NotEmpty(t, perr.Msg)
		})
	}
}
