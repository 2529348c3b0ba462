package lex

import (
	"fmt"
	"strconv"

	"src.rill.dev/pkg/diag"
)

// Tokenize turns source text into an ordered token sequence terminated by an
// EOF token. The returned error, if any, is a *diag.Error carrying the
// position of the first lexical error; no recovery is attempted.
func Tokenize(src Source) ([]Token, error) {
	lx := &lexer{src: src, line: 1, col: 1, indents: []int{0}}
	return lx.run()
}

// lexer holds the mutable state of a single tokenization run.
type lexer struct {
	src     Source
	pos     int
	line    int
	col     int
	tokens  []Token
	indents []int
}

func (lx *lexer) run() ([]Token, error) {
	for lx.pos < len(lx.src.Code) {
		c := lx.peek()
		switch {
		case c == '#':
			lx.skipComment()
		case c == '\n':
			if err := lx.handleNewline(); err != nil {
				return nil, err
			}
		case isBlank(c):
			lx.advance()
		case isIdentStart(c):
			lx.readIdent()
		case isDigit(c):
			if err := lx.readNumber(); err != nil {
				return nil, err
			}
		case c == '\'' || c == '"':
			if err := lx.readString(); err != nil {
				return nil, err
			}
		default:
			if err := lx.readSymbol(); err != nil {
				return nil, err
			}
		}
	}
	lx.finish()
	return lx.tokens, nil
}

func (lx *lexer) peek() byte {
	if lx.pos >= len(lx.src.Code) {
		return 0
	}
	return lx.src.Code[lx.pos]
}

func (lx *lexer) advance() {
	if lx.pos < len(lx.src.Code) {
		if lx.src.Code[lx.pos] == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
		lx.pos++
	}
}

func (lx *lexer) emit(t Token) { lx.tokens = append(lx.tokens, t) }

func (lx *lexer) here() diag.Pos { return diag.Pos{Line: lx.line, Col: lx.col} }

func (lx *lexer) errorf(p diag.Pos, format string, args ...any) error {
	return &diag.Error{
		Type:    "lex error",
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(lx.src.Name, lx.src.Code, p),
	}
}

func (lx *lexer) skipComment() {
	for lx.pos < len(lx.src.Code) && lx.peek() != '\n' {
		lx.advance()
	}
}

// handleNewline consumes a newline and measures the indentation of the next
// logical line. Blank and comment-only lines produce no tokens at all. A
// Newline token is attributed to the line just completed; Indent and Dedent
// tokens to the new line.
func (lx *lexer) handleNewline() error {
	lx.advance() // consume '\n'

	for isBlank(lx.peek()) {
		lx.advance()
	}
	if lx.pos >= len(lx.src.Code) || lx.peek() == '\n' || lx.peek() == '#' {
		return nil
	}

	indent := lx.col - 1
	lx.emit(Token{Kind: Newline, Pos: diag.Pos{Line: lx.line - 1, Col: 1}})

	top := lx.indents[len(lx.indents)-1]
	switch {
	case indent > top:
		lx.indents = append(lx.indents, indent)
		lx.emit(Token{Kind: Indent, Pos: diag.Pos{Line: lx.line, Col: 1}})
	case indent < top:
		for indent < lx.indents[len(lx.indents)-1] {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.emit(Token{Kind: Dedent, Pos: diag.Pos{Line: lx.line, Col: 1}})
		}
		if indent != lx.indents[len(lx.indents)-1] {
			return lx.errorf(diag.Pos{Line: lx.line, Col: 1},
				"inconsistent indentation")
		}
	}
	return nil
}

func (lx *lexer) readIdent() {
	p := lx.here()
	start := lx.pos
	for isIdentStart(lx.peek()) || isDigit(lx.peek()) {
		lx.advance()
	}
	word := lx.src.Code[start:lx.pos]
	lx.emit(Token{Kind: LookupIdent(word), Text: word, Pos: p})
}

// readNumber reads a decimal digit sequence. A single embedded '.' promotes
// the literal to floating point; a second '.' terminates the number.
func (lx *lexer) readNumber() error {
	p := lx.here()
	start := lx.pos
	isFloat := false
	for isDigit(lx.peek()) || lx.peek() == '.' {
		if lx.peek() == '.' {
			if isFloat {
				break
			}
			isFloat = true
		}
		lx.advance()
	}
	text := lx.src.Code[start:lx.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lx.errorf(p, "invalid number literal %q", text)
		}
		lx.emit(Token{Kind: Number, Text: text, Float: f, IsFloat: true, Pos: p})
	} else {
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return lx.errorf(p, "invalid number literal %q", text)
		}
		lx.emit(Token{Kind: Number, Text: text, Int: i, Pos: p})
	}
	return nil
}

// readString reads a string delimited by matching single or double quotes. A
// backslash makes the following character literal; no other escape decoding
// is done.
func (lx *lexer) readString() error {
	p := lx.here()
	quote := lx.peek()
	lx.advance()
	var buf []byte
	for lx.pos < len(lx.src.Code) && lx.peek() != quote {
		if lx.peek() == '\\' {
			lx.advance()
			if lx.pos >= len(lx.src.Code) {
				break
			}
		}
		buf = append(buf, lx.peek())
		lx.advance()
	}
	if lx.pos >= len(lx.src.Code) {
		return lx.errorf(lx.here(), "unterminated string")
	}
	lx.advance() // closing quote
	lx.emit(Token{Kind: String, Text: string(buf), Pos: p})
	return nil
}

// Two-character operators are matched greedily before single-character ones.
var twoCharSymbols = map[string]Kind{
	"|>": Pipe, "==": Eq, "!=": NotEq, "<=": LtEq, ">=": GtEq, "->": Arrow,
}

var oneCharSymbols = map[byte]Kind{
	'+': Plus, '-': Minus, '*': Star, '/': Slash, '=': Assign,
	'<': Lt, '>': Gt, '(': LParen, ')': RParen, '{': LBrace, '}': RBrace,
	'[': LBracket, ']': RBracket, ',': Comma, ':': Colon, '.': Dot,
}

func (lx *lexer) readSymbol() error {
	p := lx.here()
	if lx.pos+2 <= len(lx.src.Code) {
		two := lx.src.Code[lx.pos : lx.pos+2]
		if k, ok := twoCharSymbols[two]; ok {
			lx.advance()
			lx.advance()
			lx.emit(Token{Kind: k, Text: two, Pos: p})
			return nil
		}
	}
	c := lx.peek()
	if k, ok := oneCharSymbols[c]; ok {
		lx.advance()
		lx.emit(Token{Kind: k, Text: string(c), Pos: p})
		return nil
	}
	return lx.errorf(p, "unexpected character %q", string(c))
}

// finish synthesizes a trailing Newline if needed, drains the indentation
// stack, and emits EOF.
func (lx *lexer) finish() {
	if n := len(lx.tokens); n > 0 {
		last := lx.tokens[n-1].Kind
		if last != Newline && last != Dedent {
			lx.emit(Token{Kind: Newline, Pos: diag.Pos{Line: lx.line, Col: 1}})
		}
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.emit(Token{Kind: Dedent, Pos: diag.Pos{Line: lx.line, Col: 1}})
	}
	lx.emit(Token{Kind: EOF, Pos: diag.Pos{Line: lx.line, Col: 1}})
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\v' || c == '\f' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}
