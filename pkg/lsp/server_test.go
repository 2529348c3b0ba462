package lsp

import (
	"testing"

	lsp "github.com/sourcegraph/go-lsp"
)

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []lsp.Diagnostic
	}{
		{"no errors", "print(1 + 2)\n", []lsp.Diagnostic{}},
		{"parse error", "print(1 +\n", []lsp.Diagnostic{{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 0},
				End:   lsp.Position{Line: 1, Character: 0},
			},
			Severity: lsp.Error,
			Source:   "parse error",
			Message:  "expected an expression, found NEWLINE",
		}}},
		{"lex error", `x = "oops`, []lsp.Diagnostic{{
			Range: lsp.Range{
				Start: lsp.Position{Line: 0, Character: 9},
				End:   lsp.Position{Line: 0, Character: 9},
			},
			Severity: lsp.Error,
			Source:   "lex error",
			Message:  "unterminated string",
		}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := diagnostics("file:///a.rill", test.content)
			if len(got) != len(test.want) {
				t.Fatalf("got %d diagnostics %v, want %d", len(got), got, len(test.want))
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("diagnostic %d = %+v, want %+v", i, got[i], test.want[i])
				}
			}
		})
	}
}

func TestComplete(t *testing.T) {
	items := complete("pri", lsp.Position{Line: 0, Character: 3})
	if len(items) != 1 || items[0].Label != "print" {
		t.Errorf("complete(pri) = %v, want [print]", items)
	}
	edit := items[0].TextEdit
	if edit.Range.Start != (lsp.Position{Line: 0, Character: 0}) {
		t.Errorf("edit range starts at %v, want 0:0", edit.Range.Start)
	}

	items = complete("x = s", lsp.Position{Line: 0, Character: 5})
	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	want := []string{"spawn", "str", "sum"}
	if len(labels) != len(want) {
		t.Fatalf("complete(s) = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("complete(s) = %v, want %v", labels, want)
		}
	}

	items = complete("", lsp.Position{Line: 0, Character: 0})
	if len(items) != len(completionCandidates) {
		t.Errorf("empty prefix offered %d items, want all %d",
			len(items), len(completionCandidates))
	}
}
