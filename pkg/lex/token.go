// Package lex turns rill source text into a flat token sequence, synthesizing
// block structure tokens (Indent, Dedent, Newline) from significant
// indentation.
package lex

import (
	"fmt"

	"src.rill.dev/pkg/diag"
)

// Kind enumerates the kinds of tokens. The set is closed; the parser matches
// on it exhaustively.
type Kind uint8

const (
	// Structural markers.
	EOF Kind = iota
	Indent
	Dedent
	Newline

	// Identifiers and literals.
	Ident
	Number
	String

	// Keywords.
	Def
	Async
	Return
	If
	Else
	While
	For
	In
	Spawn
	Await
	True
	False
	None
	Lambda

	// Operators and punctuation.
	Pipe    // |>
	Plus    // +
	Minus   // -
	Star    // *
	Slash   // /
	Assign  // =
	Eq      // ==
	NotEq   // !=
	Lt      // <
	Gt      // >
	LtEq    // <=
	GtEq    // >=
	Arrow   // ->
	LParen  // (
	RParen  // )
	LBrace  // {
	RBrace  // }
	LBracket
	RBracket
	Comma
	Colon
	Dot
)

var kindNames = map[Kind]string{
	EOF: "EOF", Indent: "INDENT", Dedent: "DEDENT", Newline: "NEWLINE",
	Ident: "identifier", Number: "number", String: "string",
	Def: "'def'", Async: "'async'", Return: "'return'", If: "'if'",
	Else: "'else'", While: "'while'", For: "'for'", In: "'in'",
	Spawn: "'spawn'", Await: "'await'", True: "'True'", False: "'False'",
	None: "'None'", Lambda: "'lambda'",
	Pipe: "'|>'", Plus: "'+'", Minus: "'-'", Star: "'*'", Slash: "'/'",
	Assign: "'='", Eq: "'=='", NotEq: "'!='", Lt: "'<'", Gt: "'>'",
	LtEq: "'<='", GtEq: "'>='", Arrow: "'->'",
	LParen: "'('", RParen: "')'", LBrace: "'{'", RBrace: "'}'",
	LBracket: "'['", RBracket: "']'", Comma: "','", Colon: "':'", Dot: "'.'",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var keywords = map[string]Kind{
	"def": Def, "async": Async, "return": Return, "if": If, "else": Else,
	"while": While, "for": For, "in": In, "spawn": Spawn, "await": Await,
	"True": True, "False": False, "None": None, "lambda": Lambda,
}

// LookupIdent returns the keyword kind for the given word, or Ident if the
// word is not a keyword.
func LookupIdent(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return Ident
}

// Token is a single lexical unit. It is immutable once produced.
type Token struct {
	Kind Kind
	// Text is the identifier name, the decoded string content, or the
	// operator lexeme, depending on Kind.
	Text string
	// Numeric payload, valid when Kind is Number.
	Int     int64
	Float   float64
	IsFloat bool
	Pos     diag.Pos
}

func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Number:
		if t.IsFloat {
			return fmt.Sprintf("number %v", t.Float)
		}
		return fmt.Sprintf("number %v", t.Int)
	default:
		return t.Kind.String()
	}
}

// Source describes a piece of source code to tokenize.
type Source struct {
	Name string
	Code string
	// Whether the source originates from a file.
	IsFile bool
}
