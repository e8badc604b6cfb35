// Package parser splits raw input lines into a command name, an inline
// environment overlay and an argument list, using shell-style word
// splitting rules. It is a pure lexer: no expansion, no redirection, no
// globbing. Metacharacters like '|' and '>' come back as ordinary tokens.
package parser

import (
	"fmt"
	"strings"
)

// ParsedLine is the result of parsing one input line. It is constructed
// fresh per line and not mutated afterwards.
type ParsedLine struct {
	// Command is the first non-assignment token, or "" for a blank line.
	Command string
	// Env holds the leading NAME=value assignments in encounter order.
	// A repeated name keeps its first position but takes the last value.
	Env []Assign
	// Args are the tokens following the command, order preserved.
	Args []string
}

// Assign is a single inline environment assignment.
type Assign struct {
	Key   string
	Value string
}

// EnvMap returns the overlay as a plain map.
func (p *ParsedLine) EnvMap() map[string]string {
	m := make(map[string]string, len(p.Env))
	for _, a := range p.Env {
		m[a.Key] = a.Value
	}
	return m
}

// ParseError reports a malformed input line, such as an unterminated
// quote. Pos is the byte offset where the offending construct started.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Pos, e.Msg)
}

// token is a lexed word plus the metadata needed to recognize inline
// assignments: assignEq is the index in Text of the first '=' that was
// written unquoted and unescaped with a bare prefix, or -1.
type token struct {
	Text     string
	assignEq int
}

// Parse splits line into a ParsedLine. Every input produces some result
// except lines with an unterminated quote, which fail with *ParseError.
func Parse(line string) (*ParsedLine, error) {
	tokens, err := lex(line)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedLine{}

	i := 0
	for ; i < len(tokens); i++ {
		key, value, ok := splitAssign(tokens[i])
		if !ok {
			break
		}
		parsed.setEnv(key, value)
	}

	if i < len(tokens) {
		parsed.Command = tokens[i].Text
		for _, t := range tokens[i+1:] {
			parsed.Args = append(parsed.Args, t.Text)
		}
	}

	return parsed, nil
}

func (p *ParsedLine) setEnv(key, value string) {
	for i := range p.Env {
		if p.Env[i].Key == key {
			p.Env[i].Value = value
			return
		}
	}
	p.Env = append(p.Env, Assign{Key: key, Value: value})
}

// splitAssign reports whether t matches IDENT=value with a bare
// identifier. The value part may have been quoted; the identifier and the
// '=' must not.
func splitAssign(t token) (key, value string, ok bool) {
	if t.assignEq <= 0 {
		return "", "", false
	}
	key = t.Text[:t.assignEq]
	if !isIdent(key) {
		return "", "", false
	}
	return key, t.Text[t.assignEq+1:], true
}

func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return len(s) > 0
}

// lex performs shell word splitting: whitespace separates tokens, single
// and double quotes group, backslash escapes the next character (except
// inside single quotes), and an unquoted '#' starts a comment running to
// the end of the line.
func lex(line string) ([]token, error) {
	var (
		tokens   []token
		cur      strings.Builder
		inToken  bool
		bare     = true // no quote or escape seen yet in the current token
		assignEq = -1
		quote    rune // 0, '\'' or '"'
		quotePos int
		escaped  bool
	)

	flush := func() {
		if !inToken {
			return
		}
		tokens = append(tokens, token{Text: cur.String(), assignEq: assignEq})
		cur.Reset()
		inToken = false
		bare = true
		assignEq = -1
	}

	for pos, r := range line {
		if escaped {
			cur.WriteRune(r)
			escaped = false
			continue
		}

		switch {
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}

		case r == '\\':
			escaped = true
			inToken = true
			bare = false

		case quote == '"':
			if r == '"' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}

		case r == '\'' || r == '"':
			quote = r
			quotePos = pos
			inToken = true
			bare = false

		case r == '#':
			flush()
			return tokens, nil

		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()

		default:
			if r == '=' && bare && assignEq < 0 && cur.Len() > 0 {
				assignEq = cur.Len()
			}
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, &ParseError{Pos: quotePos, Msg: fmt.Sprintf("unterminated %c-quoted string", quote)}
	}
	if escaped {
		return nil, &ParseError{Pos: len(line) - 1, Msg: "trailing backslash"}
	}
	flush()
	return tokens, nil
}
