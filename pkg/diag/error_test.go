package diag

import (
	"strings"
	"testing"
)

func setCulpritMarkers(t *testing.T, begin, end string) {
	t.Helper()
	oldBegin, oldEnd := culpritMarkBegin, culpritMarkEnd
	culpritMarkBegin, culpritMarkEnd = begin, end
	t.Cleanup(func() { culpritMarkBegin, culpritMarkEnd = oldBegin, oldEnd })
}

func TestErrorString(t *testing.T) {
	err := &Error{
		Type:    "lex error",
		Message: "unterminated string",
		Context: *NewContext("[test]", "x = 'oops\n", Pos{1, 10}),
	}
	want := "lex error: [test]:1:10: unterminated string"
	if got := err.Error(); got != want {
		t.Errorf("Error() -> %q, want %q", got, want)
	}
}

func TestErrorShow(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	err := &Error{
		Type:    "parse error",
		Message: "expected ')'",
		Context: *NewContext("[test]", "f(a\n", Pos{1, 4}),
	}
	got := err.Show("")
	if !strings.HasPrefix(got, "Parse error: ") {
		t.Errorf("Show() does not capitalize type: %q", got)
	}
	if !strings.Contains(got, "[test], line 1:") {
		t.Errorf("Show() does not contain position description: %q", got)
	}
	if !strings.Contains(got, "f(a< >") {
		t.Errorf("Show() does not mark end of line culprit: %q", got)
	}
}

func TestContextShowMarksColumn(t *testing.T) {
	setCulpritMarkers(t, "<", ">")
	c := NewContext("script", "a = $b\n", Pos{1, 5})
	got := c.Show("")
	if !strings.Contains(got, "a = <$>b") {
		t.Errorf("Show() = %q, want culprit rune marked", got)
	}
}

func TestPosString(t *testing.T) {
	if got := (Pos{}).String(); got != "?" {
		t.Errorf("zero Pos String() -> %q, want %q", got, "?")
	}
	if got := (Pos{3, 7}).String(); got != "3:7" {
		t.Errorf("Pos{3,7} String() -> %q, want %q", got, "3:7")
	}
}
