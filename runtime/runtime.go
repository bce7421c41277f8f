package runtime

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergev/psharp/lang"
	"github.com/sergev/psharp/parser"
	"github.com/sergev/psharp/source"
)

// NewGlobalEnv constructs the process-wide environment with the built-in
// constants installed.
func NewGlobalEnv() *lang.Env {
	env := lang.NewEnv(nil)
	env.Define("nothing", lang.IntNumber(0))
	env.Define("true", lang.IntNumber(1))
	env.Define("false", lang.IntNumber(0))
	return env
}

// Run lexes, parses and evaluates text as one expression against env.
// Blank text yields no value and no error.
func Run(filename, text string, env *lang.Env) (*lang.Number, error) {
	return RunAt(source.Start(filename, text), len(text), env)
}

// RunAt evaluates the expression in start.Text[start.Index:end], keeping
// positions relative to the whole text.
func RunAt(start source.Position, end int, env *lang.Env) (*lang.Number, error) {
	if end > len(start.Text) {
		end = len(start.Text)
	}
	if start.Index >= end || strings.TrimSpace(start.Text[start.Index:end]) == "" {
		return nil, nil
	}
	tokens, err := parser.TokenizeFrom(start, end)
	if err != nil {
		return nil, err
	}
	node, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	ev := lang.NewEvaluator(env)
	return ev.Eval(node, lang.NewContext(lang.ProgramName, env))
}

// EvaluateSource runs every non-blank line of text as its own expression,
// skipping a leading #! line. It stops at the first error and otherwise
// returns the result of the last line evaluated.
func EvaluateSource(env *lang.Env, filename, text string) (*lang.Number, error) {
	var last *lang.Number
	pos := source.Start(filename, text)
	for pos.Index < len(text) {
		lineEnd := len(text)
		if n := strings.IndexByte(text[pos.Index:], '\n'); n >= 0 {
			lineEnd = pos.Index + n
		}
		line := text[pos.Index:lineEnd]
		if !(pos.Line == 0 && strings.HasPrefix(line, "#!")) && strings.TrimSpace(line) != "" {
			val, err := RunAt(pos, lineEnd, env)
			if err != nil {
				return nil, err
			}
			last = val
		}
		pos = nextLine(pos, lineEnd)
	}
	return last, nil
}

// nextLine returns the position at the start of the line after the one
// ending at lineEnd.
func nextLine(pos source.Position, lineEnd int) source.Position {
	pos.Index = lineEnd + 1
	pos.Line++
	pos.Column = 0
	return pos
}

// EvaluateReader consumes all of r and evaluates it as a script named name.
func EvaluateReader(env *lang.Env, name string, r io.Reader) (*lang.Number, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("runtime: read %s: %w", name, err)
	}
	return EvaluateSource(env, name, string(data))
}

// EvaluateFile loads and executes a script file, allowing a #! shebang.
func EvaluateFile(env *lang.Env, path string) (*lang.Number, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}
	return EvaluateSource(env, path, string(data))
}
