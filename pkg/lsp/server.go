package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.rill.dev/pkg/diag"
	"src.rill.dev/pkg/lex"
	"src.rill.dev/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

type server struct {
	content map[lsp.DocumentURI]string
}

func newServer() *server {
	return &server{make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/completion": s.completion,

		"textDocument/didClose": noop,
		// Required by the protocol.
		"initialized": noop,
		// Called by clients even when the server doesn't advertise support.
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		return fn(ctx, conn, *req.Params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			CompletionProvider: &lsp.CompletionOptions{},
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	// ContentChanges includes the full text since the server only advertises
	// support for that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	go publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	content := s.content[params.TextDocument.URI]
	return complete(content, params.Position), nil
}

func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(uri, content)})
}

// diagnostics reports lex and parse errors for the document. Evaluation
// never happens here.
func diagnostics(uri lsp.DocumentURI, content string) []lsp.Diagnostic {
	_, err := parse.Parse(lex.Source{Name: string(uri), Code: content})
	if err == nil {
		return []lsp.Diagnostic{}
	}
	var derr *diag.Error
	if !errors.As(err, &derr) {
		return []lsp.Diagnostic{{
			Severity: lsp.Error, Source: "rill", Message: err.Error()}}
	}
	pos := lspPosition(derr.Context.Pos)
	return []lsp.Diagnostic{{
		Range:    lsp.Range{Start: pos, End: pos},
		Severity: lsp.Error,
		Source:   derr.Type,
		Message:  derr.Message,
	}}
}

// lspPosition converts a 1-based source position to a 0-based LSP position.
func lspPosition(p diag.Pos) lsp.Position {
	if !p.Known() {
		return lsp.Position{}
	}
	return lsp.Position{Line: p.Line - 1, Character: p.Col - 1}
}

// completionCandidates are the words the server offers: keywords and
// built-in function names.
var completionCandidates = []string{
	"async", "await", "def", "else", "filter", "float", "for", "if", "in",
	"input", "int", "lambda", "len", "list", "map", "print", "return",
	"spawn", "str", "sum", "while",
}

// complete offers candidates matching the identifier fragment ending at the
// cursor position.
func complete(content string, pos lsp.Position) []lsp.CompletionItem {
	prefix, start := wordBefore(content, pos)
	items := []lsp.CompletionItem{}
	for _, cand := range completionCandidates {
		if !strings.HasPrefix(cand, prefix) {
			continue
		}
		items = append(items, lsp.CompletionItem{
			Label: cand,
			Kind:  lsp.CIKKeyword,
			TextEdit: &lsp.TextEdit{
				Range:   lsp.Range{Start: start, End: pos},
				NewText: cand,
			},
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	return items
}

// wordBefore extracts the identifier fragment that ends at pos, along with
// the position where it starts.
func wordBefore(content string, pos lsp.Position) (string, lsp.Position) {
	lines := strings.Split(content, "\n")
	if pos.Line < 0 || pos.Line >= len(lines) {
		return "", pos
	}
	line := lines[pos.Line]
	end := pos.Character
	if end > len(line) {
		end = len(line)
	}
	start := end
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	return line[start:end], lsp.Position{Line: pos.Line, Character: start}
}

func isWordByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z' || '0' <= b && b <= '9'
}
