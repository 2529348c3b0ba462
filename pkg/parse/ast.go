// Package parse builds program trees from rill token sequences using
// recursive descent with precedence climbing. The tree is immutable once
// built; the evaluator walks it without modifying it.
package parse

import (
	"src.rill.dev/pkg/diag"
	"src.rill.dev/pkg/lex"
)

// Node is implemented by all tree nodes.
type Node interface {
	Pos() diag.Pos
}

// Base holds the source position common to all nodes. Node types embed it.
type Base struct {
	At diag.Pos
}

// Pos returns the position of the node's first token.
func (b Base) Pos() diag.Pos { return b.At }

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Module is the root of a program tree.
type Module struct {
	Base
	Body []Stmt
}

// FuncDef is a function definition, synchronous or asynchronous.
type FuncDef struct {
	Base
	Name   string
	Params []string
	Body   []Stmt
	Async  bool
}

// Return aborts the enclosing function call, optionally carrying a value.
type Return struct {
	Base
	Value Expr // nil for a bare return
}

// If executes Body or Else depending on Test.
type If struct {
	Base
	Test Expr
	Body []Stmt
	Else []Stmt
}

// While executes Body as long as Test holds.
type While struct {
	Base
	Test Expr
	Body []Stmt
}

// For binds each element of Iter to Var and executes Body.
type For struct {
	Base
	Var  string
	Iter Expr
	Body []Stmt
}

// Assign defines Name in the innermost scope.
type Assign struct {
	Base
	Name  string
	Value Expr
}

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	Base
	X Expr
}

// BinOp is a binary operation; Op is the operator's token kind.
type BinOp struct {
	Base
	Op    lex.Kind
	Left  Expr
	Right Expr
}

// Call applies Fn to Args.
type Call struct {
	Base
	Fn   Expr
	Args []Expr
}

// Pipe holds both sides of a |> un-desugared; the evaluator threads the left
// value into the right side.
type Pipe struct {
	Base
	Left  Expr
	Right Expr
}

// Spawn hands Call to the task scheduler as a new unit of work.
type Spawn struct {
	Base
	Call *Call
}

// Await suspends the current unit until X resolves.
type Await struct {
	Base
	X Expr
}

// Literal is a number, string, boolean or None literal. Value is one of
// int64, float64, string, bool or nil.
type Literal struct {
	Base
	Value any
}

// Name is a reference to a variable.
type Name struct {
	Base
	Ident string
}

// Lambda is an anonymous function whose body is a single expression.
type Lambda struct {
	Base
	Params []string
	Body   Expr
}

// ListLit is a list literal.
type ListLit struct {
	Base
	Elems []Expr
}

func (*FuncDef) stmtNode()  {}
func (*Return) stmtNode()   {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}
func (*For) stmtNode()      {}
func (*Assign) stmtNode()   {}
func (*ExprStmt) stmtNode() {}

func (*BinOp) exprNode()   {}
func (*Call) exprNode()    {}
func (*Pipe) exprNode()    {}
func (*Spawn) exprNode()   {}
func (*Await) exprNode()   {}
func (*Literal) exprNode() {}
func (*Name) exprNode()    {}
func (*Lambda) exprNode()  {}
func (*ListLit) exprNode() {}
