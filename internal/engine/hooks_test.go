package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replkit/internal/parser"
)

func TestDefaultShellEscape(t *testing.T) {
	env := newEnviron(map[string]string{"REPLKIT_TEST_VALUE": "42"})

	out, err := defaultShellEscape(env, []string{"sh", "-c", "echo $REPLKIT_TEST_VALUE"})
	require.NoError(t, err)
	assert.Equal(t, "42", out, "instance environment must reach the child process")
}

func TestDefaultShellEscape_NoCommand(t *testing.T) {
	_, err := defaultShellEscape(newEnviron(nil), nil)
	assert.ErrorContains(t, err, "no command given")
}

func TestDefaultShellEscape_FailureIncludesOutput(t *testing.T) {
	_, err := defaultShellEscape(newEnviron(nil), []string{"sh", "-c", "echo oops >&2; exit 3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oops")
}

func TestEnvironApply_RestoreOrder(t *testing.T) {
	e := newEnviron(map[string]string{"A": "base"})

	restore := e.apply([]parser.Assign{{Key: "A", Value: "x"}, {Key: "B", Value: "y"}})
	v, _ := e.Get("A")
	assert.Equal(t, "x", v)

	restore()
	v, _ = e.Get("A")
	assert.Equal(t, "base", v)
	_, ok := e.Get("B")
	assert.False(t, ok)
}
