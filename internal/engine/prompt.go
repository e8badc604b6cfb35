package engine

// PromptFunc computes a prompt string from the shell and any arguments
// bound when the prompt was installed.
type PromptFunc func(sh *Shell, args []string) string

// Prompt is the tagged prompt variant: either a literal string or a
// generator invoked once per loop iteration.
type Prompt struct {
	literal string
	fn      PromptFunc
	args    []string
}

// LiteralPrompt returns a fixed prompt.
func LiteralPrompt(s string) Prompt {
	return Prompt{literal: s}
}

// GeneratorPrompt returns a prompt computed by fn each iteration, with
// args bound now and passed through on every call.
func GeneratorPrompt(fn PromptFunc, args ...string) Prompt {
	return Prompt{fn: fn, args: args}
}

func (p Prompt) resolve(sh *Shell) string {
	if p.fn != nil {
		return p.fn(sh, p.args)
	}
	return p.literal
}
