package diag

import (
	"fmt"
	"strings"

	"github.com/sergev/psharp/source"
)

// Kind classifies a diagnostic by the pipeline stage that raised it.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Runtime
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "Illegal Character"
	case Syntax:
		return "Invalid Syntax"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// Frame is one entry of the execution context chain a runtime error was
// raised in.
type Frame interface {
	FrameName() string
	// Caller returns the calling frame and the position in it where this
	// frame was entered. ok is false for the outermost frame.
	Caller() (parent Frame, entry source.Position, ok bool)
}

// Error is a diagnostic covering the half-open span [Start, End).
type Error struct {
	Kind    Kind
	Start   source.Position
	End     source.Position
	Message string
	Frame   Frame // runtime errors only
}

// Errorf builds a lexical or syntax diagnostic.
func Errorf(kind Kind, start, end source.Position, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Start:   start,
		End:     end,
		Message: fmt.Sprintf(format, args...),
	}
}

// RuntimeErrorf builds a runtime diagnostic raised within frame.
func RuntimeErrorf(frame Frame, start, end source.Position, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    Runtime,
		Start:   start,
		End:     end,
		Message: fmt.Sprintf(format, args...),
		Frame:   frame,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Render()
}

// Render formats the diagnostic with the offending source underlined.
// Runtime diagnostics are preceded by the call stack, oldest call first.
func (e *Error) Render() string {
	var b strings.Builder
	if e.Kind == Runtime && e.Frame != nil {
		b.WriteString(e.Traceback())
	}
	fmt.Fprintf(&b, "%s: %s\n", e.Kind, e.Message)
	fmt.Fprintf(&b, "File %s, line %d\n\n", e.Start.Filename, e.Start.LineNumber())
	b.WriteString(source.Underline(e.Start, e.End))
	return b.String()
}

// Traceback lists the frames the error passed through.
func (e *Error) Traceback() string {
	var lines []string
	pos := e.Start
	for frame := e.Frame; frame != nil; {
		lines = append(lines, fmt.Sprintf("  File %s, line %d, in %s\n", pos.Filename, pos.LineNumber(), frame.FrameName()))
		parent, entry, ok := frame.Caller()
		if !ok {
			break
		}
		pos = entry
		frame = parent
	}

	var b strings.Builder
	b.WriteString("Call stack:\n")
	for i := len(lines) - 1; i >= 0; i-- {
		b.WriteString(lines[i])
	}
	return b.String()
}
