package parse

import (
	"fmt"

	"src.rill.dev/pkg/diag"
	"src.rill.dev/pkg/lex"
)

// Parse tokenizes and parses a piece of source code. The returned error is a
// *diag.Error of type "lex error" or "parse error".
func Parse(src lex.Source) (*Module, error) {
	tokens, err := lex.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return FromTokens(src, tokens)
}

// FromTokens parses an already tokenized piece of source code. The source is
// only used for error contexts.
func FromTokens(src lex.Source, tokens []lex.Token) (*Module, error) {
	ps := &parser{src: src, tokens: tokens}
	m, err := ps.module()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// parser maintains the mutable state of a parse: the token sequence and a
// cursor into it. Parsing aborts on the first syntax error.
type parser struct {
	src    lex.Source
	tokens []lex.Token
	pos    int
}

func (ps *parser) module() (*Module, error) {
	m := &Module{Base: Base{At: diag.Pos{Line: 1, Col: 1}}}
	for !ps.atEnd() {
		stmt, err := ps.declaration()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			m.Body = append(m.Body, stmt)
		}
	}
	return m, nil
}

// declaration parses a function definition or falls through to a statement.
func (ps *parser) declaration() (Stmt, error) {
	switch {
	case ps.match(lex.Def):
		return ps.funcDef(false)
	case ps.match(lex.Async):
		if _, err := ps.consume(lex.Def, "'def' after 'async'"); err != nil {
			return nil, err
		}
		return ps.funcDef(true)
	}
	return ps.statement()
}

func (ps *parser) funcDef(async bool) (Stmt, error) {
	at := ps.prev().Pos
	name, err := ps.consume(lex.Ident, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := ps.consume(lex.LParen, "'(' after function name"); err != nil {
		return nil, err
	}
	params, err := ps.paramList(lex.RParen)
	if err != nil {
		return nil, err
	}
	if _, err := ps.consume(lex.RParen, "')' after parameters"); err != nil {
		return nil, err
	}
	body, err := ps.blockHeader("function body")
	if err != nil {
		return nil, err
	}
	return &FuncDef{Base{at}, name.Text, params, body, async}, nil
}

// paramList parses zero or more comma-separated parameter names, stopping
// before the given closing token kind.
func (ps *parser) paramList(closing lex.Kind) ([]string, error) {
	var params []string
	if ps.check(closing) {
		return nil, nil
	}
	for {
		p, err := ps.consume(lex.Ident, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, p.Text)
		if !ps.match(lex.Comma) {
			return params, nil
		}
	}
}

// blockHeader parses the ": NEWLINE INDENT ... DEDENT" tail shared by every
// block-introducing construct.
func (ps *parser) blockHeader(what string) ([]Stmt, error) {
	if _, err := ps.consume(lex.Colon, "':' before "+what); err != nil {
		return nil, err
	}
	if _, err := ps.consume(lex.Newline, "newline before "+what); err != nil {
		return nil, err
	}
	return ps.block()
}

func (ps *parser) block() ([]Stmt, error) {
	if _, err := ps.consume(lex.Indent, "an indented block"); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !ps.check(lex.Dedent) && !ps.atEnd() {
		stmt, err := ps.declaration()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := ps.consume(lex.Dedent, "end of block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (ps *parser) statement() (Stmt, error) {
	switch {
	case ps.match(lex.Return):
		return ps.returnStmt()
	case ps.match(lex.If):
		return ps.ifStmt()
	case ps.match(lex.While):
		return ps.whileStmt()
	case ps.match(lex.For):
		return ps.forStmt()
	case ps.match(lex.Newline):
		// Empty statement.
		return nil, nil
	}

	expr, err := ps.expression()
	if err != nil {
		return nil, err
	}
	if ps.match(lex.Assign) {
		name, ok := expr.(*Name)
		if !ok {
			return nil, ps.errorAt(expr.Pos(), "invalid assignment target")
		}
		value, err := ps.expression()
		if err != nil {
			return nil, err
		}
		if _, err := ps.consume(lex.Newline, "newline after assignment"); err != nil {
			return nil, err
		}
		return &Assign{Base{name.Pos()}, name.Ident, value}, nil
	}
	if _, err := ps.consume(lex.Newline, "newline after expression"); err != nil {
		return nil, err
	}
	return &ExprStmt{Base{expr.Pos()}, expr}, nil
}

func (ps *parser) returnStmt() (Stmt, error) {
	at := ps.prev().Pos
	var value Expr
	if !ps.check(lex.Newline) {
		var err error
		value, err = ps.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := ps.consume(lex.Newline, "newline after return"); err != nil {
		return nil, err
	}
	return &Return{Base{at}, value}, nil
}

func (ps *parser) ifStmt() (Stmt, error) {
	at := ps.prev().Pos
	test, err := ps.expression()
	if err != nil {
		return nil, err
	}
	body, err := ps.blockHeader("if body")
	if err != nil {
		return nil, err
	}
	var orelse []Stmt
	if ps.match(lex.Else) {
		orelse, err = ps.blockHeader("else body")
		if err != nil {
			return nil, err
		}
	}
	return &If{Base{at}, test, body, orelse}, nil
}

func (ps *parser) whileStmt() (Stmt, error) {
	at := ps.prev().Pos
	test, err := ps.expression()
	if err != nil {
		return nil, err
	}
	body, err := ps.blockHeader("while body")
	if err != nil {
		return nil, err
	}
	return &While{Base{at}, test, body}, nil
}

func (ps *parser) forStmt() (Stmt, error) {
	at := ps.prev().Pos
	name, err := ps.consume(lex.Ident, "loop variable")
	if err != nil {
		return nil, err
	}
	if _, err := ps.consume(lex.In, "'in' after loop variable"); err != nil {
		return nil, err
	}
	iter, err := ps.expression()
	if err != nil {
		return nil, err
	}
	body, err := ps.blockHeader("for body")
	if err != nil {
		return nil, err
	}
	return &For{Base{at}, name.Text, iter, body}, nil
}

// Expression grammar, lowest to highest precedence:
// pipe, equality, comparison, additive, multiplicative, unary, call, primary.

func (ps *parser) expression() (Expr, error) {
	return ps.pipe()
}

func (ps *parser) pipe() (Expr, error) {
	expr, err := ps.equality()
	if err != nil {
		return nil, err
	}
	for ps.match(lex.Pipe) {
		right, err := ps.equality()
		if err != nil {
			return nil, err
		}
		expr = &Pipe{Base{expr.Pos()}, expr, right}
	}
	return expr, nil
}

func (ps *parser) equality() (Expr, error) {
	return ps.binaryLevel(ps.comparison, lex.Eq, lex.NotEq)
}

func (ps *parser) comparison() (Expr, error) {
	return ps.binaryLevel(ps.additive, lex.Lt, lex.LtEq, lex.Gt, lex.GtEq)
}

func (ps *parser) additive() (Expr, error) {
	return ps.binaryLevel(ps.multiplicative, lex.Plus, lex.Minus)
}

func (ps *parser) multiplicative() (Expr, error) {
	return ps.binaryLevel(ps.unary, lex.Star, lex.Slash)
}

// binaryLevel parses one left-associative precedence level built from the
// given operator kinds over the next tighter level.
func (ps *parser) binaryLevel(next func() (Expr, error), ops ...lex.Kind) (Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for ps.match(ops...) {
		op := ps.prev().Kind
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = &BinOp{Base{expr.Pos()}, op, expr, right}
	}
	return expr, nil
}

func (ps *parser) unary() (Expr, error) {
	switch {
	case ps.match(lex.Spawn):
		at := ps.prev().Pos
		expr, err := ps.call()
		if err != nil {
			return nil, err
		}
		call, ok := expr.(*Call)
		if !ok {
			return nil, ps.errorAt(at, "expected a call after 'spawn'")
		}
		return &Spawn{Base{at}, call}, nil
	case ps.match(lex.Await):
		at := ps.prev().Pos
		expr, err := ps.unary()
		if err != nil {
			return nil, err
		}
		return &Await{Base{at}, expr}, nil
	case ps.match(lex.Minus):
		at := ps.prev().Pos
		expr, err := ps.unary()
		if err != nil {
			return nil, err
		}
		// Unary minus is subtraction from zero.
		return &BinOp{Base{at}, lex.Minus, &Literal{Base{at}, int64(0)}, expr}, nil
	}
	return ps.call()
}

func (ps *parser) call() (Expr, error) {
	expr, err := ps.primary()
	if err != nil {
		return nil, err
	}
	for ps.match(lex.LParen) {
		args, err := ps.exprList(lex.RParen)
		if err != nil {
			return nil, err
		}
		if _, err := ps.consume(lex.RParen, "')' after arguments"); err != nil {
			return nil, err
		}
		expr = &Call{Base{expr.Pos()}, expr, args}
	}
	return expr, nil
}

// exprList parses zero or more comma-separated expressions, stopping before
// the given closing token kind.
func (ps *parser) exprList(closing lex.Kind) ([]Expr, error) {
	var exprs []Expr
	if ps.check(closing) {
		return nil, nil
	}
	for {
		expr, err := ps.expression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !ps.match(lex.Comma) {
			return exprs, nil
		}
	}
}

func (ps *parser) primary() (Expr, error) {
	tok := ps.peek()
	switch {
	case ps.match(lex.True):
		return &Literal{Base{tok.Pos}, true}, nil
	case ps.match(lex.False):
		return &Literal{Base{tok.Pos}, false}, nil
	case ps.match(lex.None):
		return &Literal{Base{tok.Pos}, nil}, nil
	case ps.match(lex.Number):
		if tok.IsFloat {
			return &Literal{Base{tok.Pos}, tok.Float}, nil
		}
		return &Literal{Base{tok.Pos}, tok.Int}, nil
	case ps.match(lex.String):
		return &Literal{Base{tok.Pos}, tok.Text}, nil
	case ps.match(lex.Ident):
		return &Name{Base{tok.Pos}, tok.Text}, nil
	case ps.match(lex.LParen):
		expr, err := ps.expression()
		if err != nil {
			return nil, err
		}
		if _, err := ps.consume(lex.RParen, "')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case ps.match(lex.LBracket):
		elems, err := ps.exprList(lex.RBracket)
		if err != nil {
			return nil, err
		}
		if _, err := ps.consume(lex.RBracket, "']' after list elements"); err != nil {
			return nil, err
		}
		return &ListLit{Base{tok.Pos}, elems}, nil
	case ps.match(lex.Lambda):
		var params []string
		if !ps.check(lex.Colon) {
			var err error
			params, err = ps.paramList(lex.Colon)
			if err != nil {
				return nil, err
			}
		}
		if _, err := ps.consume(lex.Colon, "':' after lambda parameters"); err != nil {
			return nil, err
		}
		body, err := ps.expression()
		if err != nil {
			return nil, err
		}
		return &Lambda{Base{tok.Pos}, params, body}, nil
	}
	return nil, ps.errorf("expected an expression, found %s", tok)
}

// Cursor helpers.

func (ps *parser) match(kinds ...lex.Kind) bool {
	for _, k := range kinds {
		if ps.check(k) {
			ps.advance()
			return true
		}
	}
	return false
}

func (ps *parser) check(k lex.Kind) bool {
	if ps.atEnd() {
		return false
	}
	return ps.peek().Kind == k
}

func (ps *parser) advance() lex.Token {
	if !ps.atEnd() {
		ps.pos++
	}
	return ps.prev()
}

func (ps *parser) atEnd() bool { return ps.peek().Kind == lex.EOF }

func (ps *parser) peek() lex.Token { return ps.tokens[ps.pos] }

func (ps *parser) prev() lex.Token { return ps.tokens[ps.pos-1] }

// consume advances over a token of the wanted kind, or fails with an error
// naming the expected construct and the token actually found.
func (ps *parser) consume(k lex.Kind, what string) (lex.Token, error) {
	if ps.check(k) {
		return ps.advance(), nil
	}
	return lex.Token{}, ps.errorf("expected %s, found %s", what, ps.peek())
}

func (ps *parser) errorf(format string, args ...any) error {
	return ps.errorAt(ps.peek().Pos, format, args...)
}

func (ps *parser) errorAt(p diag.Pos, format string, args ...any) error {
	return &diag.Error{
		Type:    "parse error",
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, p),
	}
}
