package lang

import "sort"

// Env implements a lexical environment chain.
type Env struct {
	parent *Env
	values map[string]Number
}

// NewEnv creates an environment with optional parent.
func NewEnv(parent *Env) *Env {
	return &Env{
		parent: parent,
		values: make(map[string]Number),
	}
}

// Define binds name to value in the current frame, never in a parent.
func (e *Env) Define(name string, val Number) {
	e.values[name] = val
}

// Get retrieves a binding, searching parents if necessary.
func (e *Env) Get(name string) (Number, bool) {
	if val, ok := e.values[name]; ok {
		return val, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return Number{}, false
}

// Parent returns the parent environment.
func (e *Env) Parent() *Env {
	return e.parent
}

// Names lists the bindings of the current frame in sorted order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
