package eval

import (
	"src.rill.dev/pkg/parse"
)

// Closure is a function defined with rill code: a function-definition body
// paired with the scope that was live at the point of definition. Calling it
// creates a fresh child scope and binds parameters positionally.
type Closure struct {
	Name     string
	Params   []string
	Body     []parse.Stmt
	Captured *Scope
	// Async closures do not complete inline; calling one starts a new task
	// and yields its handle.
	Async bool
}

// invoke runs the closure body to completion in the current unit of work. A
// propagating return is intercepted here, at the call boundary; falling off
// the end of the body yields None.
func (c *Closure) invoke(fm *Frame, args []any) (any, error) {
	scope := NewScope(c.Captured)
	for i, p := range c.Params {
		scope.Define(p, args[i])
	}
	ctrl, err := fm.child(scope).execStmts(c.Body)
	if err != nil {
		return nil, err
	}
	if ctrl.returning {
		return ctrl.value, nil
	}
	return nil, nil
}

// BuiltinFn is a function implemented in the host language. The
// implementation receives the calling frame explicitly.
type BuiltinFn struct {
	Name string
	Impl func(fm *Frame, args []any) (any, error)
}
