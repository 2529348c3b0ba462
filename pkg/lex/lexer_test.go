package lex

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.rill.dev/pkg/diag"
)

func tokenize(t *testing.T, code string) []Token {
	t.Helper()
	tokens, err := Tokenize(Source{Name: "[test]", Code: code})
	if err != nil {
		t.Fatalf("Tokenize(%q) -> error %v", code, err)
	}
	return tokens
}

func kinds(tokens []Token) []Kind {
	ks := make([]Kind, len(tokens))
	for i, t := range tokens {
		ks[i] = t.Kind
	}
	return ks
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []Kind
	}{
		{"empty source", "", []Kind{EOF}},
		{"only blank lines", "\n\n   \n", []Kind{EOF}},
		{"only comments", "# one\n# two\n", []Kind{EOF}},
		{"assignment", "x = 10 + 20",
			[]Kind{Ident, Assign, Number, Plus, Number, Newline, EOF}},
		{"two-char operators", "a |> b == c != d <= e >= f -> g",
			[]Kind{Ident, Pipe, Ident, Eq, Ident, NotEq, Ident, LtEq,
				Ident, GtEq, Ident, Arrow, Ident, Newline, EOF}},
		{"keywords", "async def f(): return await spawn lambda",
			[]Kind{Async, Def, Ident, LParen, RParen, Colon, Return,
				Await, Spawn, Lambda, Newline, EOF}},
		{"literal keywords", "True False None",
			[]Kind{True, False, None, Newline, EOF}},
		{"list literal", "[1, 2]",
			[]Kind{LBracket, Number, Comma, Number, RBracket, Newline, EOF}},
		{"comment discarded", "x = 1 # trailing\ny = 2",
			[]Kind{Ident, Assign, Number, Newline, Ident, Assign, Number,
				Newline, EOF}},
		{"blank lines between statements", "a = 1\n\n\nb = 2",
			[]Kind{Ident, Assign, Number, Newline, Ident, Assign, Number,
				Newline, EOF}},
		{"indented block", "def f():\n    return 1\nx = 2",
			[]Kind{Def, Ident, LParen, RParen, Colon, Newline, Indent,
				Return, Number, Newline, Dedent, Ident, Assign, Number,
				Newline, EOF}},
		{"nested blocks drained at end", "if a:\n    if b:\n        c",
			[]Kind{If, Ident, Colon, Newline, Indent, If, Ident, Colon,
				Newline, Indent, Ident, Newline, Dedent, Dedent, EOF}},
		{"multi-level dedent", "if a:\n    if b:\n        c\nd",
			[]Kind{If, Ident, Colon, Newline, Indent, If, Ident, Colon,
				Newline, Indent, Ident, Newline, Dedent, Dedent, Ident,
				Newline, EOF}},
		{"second dot terminates number", "1.2.3",
			[]Kind{Number, Dot, Number, Newline, EOF}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := kinds(tokenize(t, test.code))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Tokenize(%q) kinds (-want +got):\n%s", test.code, diff)
			}
		})
	}
}

func TestTokenize_Payloads(t *testing.T) {
	tokens := tokenize(t, "x = 10 + 20")
	want := []Token{
		{Kind: Ident, Text: "x", Pos: diag.Pos{Line: 1, Col: 1}},
		{Kind: Assign, Text: "=", Pos: diag.Pos{Line: 1, Col: 3}},
		{Kind: Number, Text: "10", Int: 10, Pos: diag.Pos{Line: 1, Col: 5}},
		{Kind: Plus, Text: "+", Pos: diag.Pos{Line: 1, Col: 8}},
		{Kind: Number, Text: "20", Int: 20, Pos: diag.Pos{Line: 1, Col: 10}},
		{Kind: Newline, Pos: diag.Pos{Line: 1, Col: 1}},
		{Kind: EOF, Pos: diag.Pos{Line: 1, Col: 1}},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("Tokenize tokens (-want +got):\n%s", diff)
	}
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		code    string
		isFloat bool
		intVal  int64
		fltVal  float64
	}{
		{"42", false, 42, 0},
		{"1.5", true, 0, 1.5},
		{"10.", true, 0, 10},
	}
	for _, test := range tests {
		tok := tokenize(t, test.code)[0]
		if tok.Kind != Number || tok.IsFloat != test.isFloat ||
			tok.Int != test.intVal || tok.Float != test.fltVal {
			t.Errorf("Tokenize(%q)[0] = %+v, want float=%v int=%v flt=%v",
				test.code, tok, test.isFloat, test.intVal, test.fltVal)
		}
	}
}

func TestTokenize_Strings(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{`'hello'`, "hello"},
		{`"hello"`, "hello"},
		{`'it\'s'`, "it's"},
		{`'a\\b'`, `a\b`},
		// Escapes are not decoded; the backslash just makes the next
		// character literal.
		{`"a\nb"`, "anb"},
		{`"don't"`, "don't"},
	}
	for _, test := range tests {
		tok := tokenize(t, test.code)[0]
		if tok.Kind != String || tok.Text != test.want {
			t.Errorf("Tokenize(%q)[0] = %+v, want string %q",
				test.code, tok, test.want)
		}
	}
}

func TestTokenize_BalancedIndentation(t *testing.T) {
	code := "def f():\n    if x:\n        y\n    z\nw\nif a:\n    b"
	tokens := tokenize(t, code)
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case Indent:
			depth++
		case Dedent:
			depth--
			if depth < 0 {
				t.Fatalf("unbalanced: DEDENT below level 0 at %v", tok.Pos)
			}
		case EOF:
			if depth != 0 {
				t.Errorf("indentation level at EOF = %d, want 0", depth)
			}
		}
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantPos diag.Pos
	}{
		{"inconsistent dedent", "if a:\n    b\n  c\n",
			"inconsistent indentation", diag.Pos{Line: 3, Col: 1}},
		{"unterminated string", "x = 'abc",
			"unterminated string", diag.Pos{Line: 1, Col: 9}},
		{"unterminated string ending in backslash", `x = 'abc\`,
			"unterminated string", diag.Pos{Line: 1, Col: 10}},
		{"unexpected character", "x = $y",
			`unexpected character "$"`, diag.Pos{Line: 1, Col: 5}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Tokenize(Source{Name: "[test]", Code: test.code})
			if err == nil {
				t.Fatalf("Tokenize(%q) -> no error", test.code)
			}
			diagErr, ok := err.(*diag.Error)
			if !ok {
				t.Fatalf("Tokenize(%q) -> error of type %T", test.code, err)
			}
			if diagErr.Message != test.wantMsg {
				t.Errorf("message = %q, want %q", diagErr.Message, test.wantMsg)
			}
			if diagErr.Context.Pos != test.wantPos {
				t.Errorf("pos = %v, want %v", diagErr.Context.Pos, test.wantPos)
			}
			if !strings.HasPrefix(err.Error(), "lex error: ") {
				t.Errorf("Error() = %q, want lex error prefix", err.Error())
			}
		})
	}
}
