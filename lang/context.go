package lang

import (
	"github.com/sergev/psharp/diag"
	"github.com/sergev/psharp/source"
)

// ProgramName is the display name of the outermost frame.
const ProgramName = "<program>"

// Context is an execution frame. Contexts link to their caller to form the
// call stack shown in runtime tracebacks; values are always resolved through
// Env, never through the chain.
type Context struct {
	Name     string
	Env      *Env
	Parent   *Context
	EntryPos source.Position // where Parent entered this frame
}

// NewContext creates an outermost frame evaluating against env.
func NewContext(name string, env *Env) *Context {
	return &Context{
		Name: name,
		Env:  env,
	}
}

// Enter creates a frame called from c at entry, with a fresh scope whose
// lookups fall back to c's.
func (c *Context) Enter(name string, entry source.Position) *Context {
	return &Context{
		Name:     name,
		Env:      NewEnv(c.Env),
		Parent:   c,
		EntryPos: entry,
	}
}

func (c *Context) FrameName() string {
	return c.Name
}

func (c *Context) Caller() (diag.Frame, source.Position, bool) {
	if c.Parent == nil {
		return nil, source.Position{}, false
	}
	return c.Parent, c.EntryPos, true
}
