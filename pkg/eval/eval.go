// Package eval handles evaluation of parsed rill code and provides runtime
// facilities: lexical scopes, closures, built-in functions and the glue to
// the task scheduler behind spawn and await.
package eval

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"src.rill.dev/pkg/diag"
	"src.rill.dev/pkg/eval/errs"
	"src.rill.dev/pkg/lex"
	"src.rill.dev/pkg/logutil"
	"src.rill.dev/pkg/parse"
	"src.rill.dev/pkg/sched"
)

var logger = logutil.GetLogger("[eval] ")

// Ports are the standard input and outputs of an evaluation. Built-in I/O
// (print, input) goes through them.
type Ports struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Evaler provides methods for evaluating code, and maintains state persisted
// between evaluations: the global scope, the built-in scope, ports and the
// task scheduler.
type Evaler struct {
	// Global is the global scope, shared by every unit of work. Its parent
	// is the built-in scope.
	Global *Scope
	// Builtin holds the built-in functions. It is the root of every scope
	// chain.
	Builtin *Scope
	// Ports used by built-in I/O.
	Ports Ports

	sched *sched.Scheduler
	in    *bufio.Reader
}

// NewEvaler creates a new Evaler with the built-ins installed and ports
// connected to the standard files.
func NewEvaler() *Evaler {
	builtin := NewScope(nil)
	ev := &Evaler{
		Global:  NewScope(builtin),
		Builtin: builtin,
		Ports:   Ports{In: os.Stdin, Out: os.Stdout, Err: os.Stderr},
		sched:   sched.New(),
	}
	addBuiltins(builtin)
	return ev
}

// Eval runs each top-level statement of a module in sequence against the
// global scope. The first failure aborts the run for this module and is
// returned as an *Exception.
func (ev *Evaler) Eval(src lex.Source, m *parse.Module) error {
	logger.Printf("eval %q: %d top-level statements", src.Name, len(m.Body))
	fm := &Frame{Evaler: ev, src: src, scope: ev.Global}
	for _, stmt := range m.Body {
		ctrl, err := fm.execStmt(stmt)
		if err != nil {
			return err
		}
		if ctrl.returning {
			// A propagating return escaped every call boundary.
			return fm.errorpf(stmt.Pos(), "return outside function")
		}
	}
	return nil
}

// EvalSource parses and runs a piece of source code. The returned error may
// be a lex error, a parse error or a runtime exception.
func (ev *Evaler) EvalSource(src lex.Source) error {
	m, err := parse.Parse(src)
	if err != nil {
		return err
	}
	return ev.Eval(src, m)
}

// Call calls a callable value from the host with the given arguments.
func (ev *Evaler) Call(callee any, args []any) (any, error) {
	fm := &Frame{Evaler: ev, src: lex.Source{Name: "[internal]"}, scope: ev.Global}
	return fm.call(callee, args, diag.Pos{})
}

// Frame is the context of one unit of evaluation: the evaler, the source
// being run (for error attribution) and the current scope. It is threaded
// explicitly through every statement and expression.
type Frame struct {
	Evaler *Evaler
	src    lex.Source
	scope  *Scope
}

// child returns a frame like fm but running in the given scope.
func (fm *Frame) child(scope *Scope) *Frame {
	return &Frame{Evaler: fm.Evaler, src: fm.src, scope: scope}
}

// errorpf makes an *Exception positioned at p.
func (fm *Frame) errorpf(p diag.Pos, format string, args ...any) error {
	return fm.wrapError(p, fmt.Errorf(format, args...))
}

// wrapError attaches source context to an error. Errors that already carry
// context pass through unchanged.
func (fm *Frame) wrapError(p diag.Pos, err error) error {
	if err == nil {
		return nil
	}
	var exc *Exception
	if errors.As(err, &exc) {
		return err
	}
	return &Exception{
		Reason:  err,
		Context: diag.NewContext(fm.src.Name, fm.src.Code, p),
	}
}

// execStmts executes a block of statements in order, stopping at the first
// propagating return or error.
func (fm *Frame) execStmts(stmts []parse.Stmt) (control, error) {
	for _, stmt := range stmts {
		ctrl, err := fm.execStmt(stmt)
		if err != nil {
			return control{}, err
		}
		if ctrl.returning {
			return ctrl, nil
		}
	}
	return control{}, nil
}

// execStmt executes a single statement. The statement set is closed; a new
// node kind must be handled here.
func (fm *Frame) execStmt(stmt parse.Stmt) (control, error) {
	switch stmt := stmt.(type) {
	case *parse.FuncDef:
		c := &Closure{
			Name:     stmt.Name,
			Params:   stmt.Params,
			Body:     stmt.Body,
			Captured: fm.scope,
			Async:    stmt.Async,
		}
		fm.scope.Define(stmt.Name, c)
		return control{}, nil
	case *parse.Return:
		var value any
		if stmt.Value != nil {
			v, err := fm.evalExpr(stmt.Value)
			if err != nil {
				return control{}, err
			}
			value = v
		}
		return control{returning: true, value: value}, nil
	case *parse.Assign:
		v, err := fm.evalExpr(stmt.Value)
		if err != nil {
			return control{}, err
		}
		// Assignment defines in the innermost scope; it never mutates an
		// enclosing binding of the same name.
		fm.scope.Define(stmt.Name, v)
		return control{}, nil
	case *parse.If:
		test, err := fm.evalExpr(stmt.Test)
		if err != nil {
			return control{}, err
		}
		if Truth(test) {
			return fm.child(NewScope(fm.scope)).execStmts(stmt.Body)
		}
		if stmt.Else != nil {
			return fm.child(NewScope(fm.scope)).execStmts(stmt.Else)
		}
		return control{}, nil
	case *parse.While:
		for {
			test, err := fm.evalExpr(stmt.Test)
			if err != nil {
				return control{}, err
			}
			if !Truth(test) {
				return control{}, nil
			}
			// Each iteration gets a fresh scope.
			ctrl, err := fm.child(NewScope(fm.scope)).execStmts(stmt.Body)
			if err != nil || ctrl.returning {
				return ctrl, err
			}
		}
	case *parse.For:
		iter, err := fm.evalExpr(stmt.Iter)
		if err != nil {
			return control{}, err
		}
		it, err := iterator(iter)
		if err != nil {
			return control{}, fm.wrapError(stmt.Iter.Pos(), err)
		}
		for {
			elem, ok, err := it()
			if err != nil {
				return control{}, fm.wrapError(stmt.Iter.Pos(), err)
			}
			if !ok {
				return control{}, nil
			}
			scope := NewScope(fm.scope)
			scope.Define(stmt.Var, elem)
			ctrl, err := fm.child(scope).execStmts(stmt.Body)
			if err != nil || ctrl.returning {
				return ctrl, err
			}
		}
	case *parse.ExprStmt:
		_, err := fm.evalExpr(stmt.X)
		return control{}, err
	default:
		panic(fmt.Sprintf("unhandled statement type %T", stmt))
	}
}

// evalExpr evaluates a single expression. The expression set is closed; a
// new node kind must be handled here.
func (fm *Frame) evalExpr(expr parse.Expr) (any, error) {
	switch expr := expr.(type) {
	case *parse.Literal:
		return expr.Value, nil
	case *parse.Name:
		v, ok := fm.scope.Lookup(expr.Ident)
		if !ok {
			return nil, fm.errorpf(expr.Pos(), "undefined variable %q", expr.Ident)
		}
		return v, nil
	case *parse.BinOp:
		left, err := fm.evalExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		right, err := fm.evalExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		v, err := applyOp(expr.Op, left, right)
		return v, fm.wrapError(expr.Pos(), err)
	case *parse.Call:
		callee, err := fm.evalExpr(expr.Fn)
		if err != nil {
			return nil, err
		}
		args, err := fm.evalExprs(expr.Args)
		if err != nil {
			return nil, err
		}
		return fm.call(callee, args, expr.Pos())
	case *parse.Pipe:
		return fm.evalPipe(expr)
	case *parse.Spawn:
		return fm.evalSpawn(expr)
	case *parse.Await:
		v, err := fm.evalExpr(expr.X)
		if err != nil {
			return nil, err
		}
		if task, ok := v.(*sched.Task); ok {
			result, err := task.Await()
			return result, fm.wrapError(expr.Pos(), err)
		}
		// Awaiting an already-resolved value is a pass-through.
		return v, nil
	case *parse.Lambda:
		// The lambda body becomes a single implicit return; the closure
		// captures the scope live right now.
		body := []parse.Stmt{&parse.Return{
			Base:  parse.Base{At: expr.Body.Pos()},
			Value: expr.Body,
		}}
		return &Closure{
			Name:     "<lambda>",
			Params:   expr.Params,
			Body:     body,
			Captured: fm.scope,
		}, nil
	case *parse.ListLit:
		elems, err := fm.evalExprs(expr.Elems)
		if err != nil {
			return nil, err
		}
		if elems == nil {
			elems = []any{}
		}
		return elems, nil
	default:
		panic(fmt.Sprintf("unhandled expression type %T", expr))
	}
}

// evalExprs evaluates expressions left to right.
func (fm *Frame) evalExprs(exprs []parse.Expr) ([]any, error) {
	var vals []any
	for _, expr := range exprs {
		v, err := fm.evalExpr(expr)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// evalPipe threads the left value into the right-hand side: a call gets it
// prepended to its arguments; a bare name is invoked with it as the sole
// argument.
func (fm *Frame) evalPipe(expr *parse.Pipe) (any, error) {
	left, err := fm.evalExpr(expr.Left)
	if err != nil {
		return nil, err
	}
	switch rhs := expr.Right.(type) {
	case *parse.Call:
		callee, err := fm.evalExpr(rhs.Fn)
		if err != nil {
			return nil, err
		}
		rest, err := fm.evalExprs(rhs.Args)
		if err != nil {
			return nil, err
		}
		return fm.call(callee, append([]any{left}, rest...), rhs.Pos())
	case *parse.Name:
		callee, err := fm.evalExpr(rhs)
		if err != nil {
			return nil, err
		}
		return fm.call(callee, []any{left}, rhs.Pos())
	default:
		return nil, fm.wrapError(expr.Pos(), errs.BadValue{
			What:   "pipeline right-hand side",
			Valid:  "a call or a name",
			Actual: "another expression",
		})
	}
}

// evalSpawn evaluates the callee and arguments in the spawning unit, then
// hands the call to the scheduler as a new unit of work.
func (fm *Frame) evalSpawn(expr *parse.Spawn) (any, error) {
	callee, err := fm.evalExpr(expr.Call.Fn)
	if err != nil {
		return nil, err
	}
	c, ok := callee.(*Closure)
	if !ok || !c.Async {
		return nil, fm.wrapError(expr.Pos(), errs.BadValue{
			What:   "spawned callee",
			Valid:  "an async function",
			Actual: Kind(callee),
		})
	}
	args, err := fm.evalExprs(expr.Call.Args)
	if err != nil {
		return nil, err
	}
	if err := fm.checkArity(c, args, expr.Pos()); err != nil {
		return nil, err
	}
	return fm.spawnTask(c, args), nil
}

// spawnTask starts a task evaluating the closure body. The task gets its own
// scope chain rooted at the closure's captured scope; only the global scope
// is shared with other units.
func (fm *Frame) spawnTask(c *Closure, args []any) *sched.Task {
	return fm.Evaler.sched.Spawn(func() (any, error) {
		return c.invoke(fm, args)
	})
}

// call dispatches a call: a closure is invoked with a fresh child scope; a
// built-in dispatches directly. Calling an async closure starts a task and
// yields its handle.
func (fm *Frame) call(callee any, args []any, at diag.Pos) (any, error) {
	switch callee := callee.(type) {
	case *Closure:
		if err := fm.checkArity(callee, args, at); err != nil {
			return nil, err
		}
		if callee.Async {
			return fm.spawnTask(callee, args), nil
		}
		return callee.invoke(fm, args)
	case *BuiltinFn:
		v, err := callee.Impl(fm, args)
		return v, fm.wrapError(at, err)
	default:
		return nil, fm.wrapError(at, errs.BadValue{
			What:   "called value",
			Valid:  "a callable",
			Actual: Kind(callee),
		})
	}
}

func (fm *Frame) checkArity(c *Closure, args []any, at diag.Pos) error {
	if len(args) != len(c.Params) {
		return fm.wrapError(at, errs.ArityMismatch{
			What:     "arguments to " + c.Name,
			ValidLow: len(c.Params), ValidHigh: len(c.Params),
			Actual: len(args),
		})
	}
	return nil
}
