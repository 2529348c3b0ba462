package diag

import (
	"fmt"
	"strings"
)

// Context is a position within a named piece of source code. It is typically
// carried by errors that can be attributed to a part of the source, like lex
// and parse errors and runtime error tracebacks.
type Context struct {
	Name   string
	Source string
	Pos
}

// NewContext creates a new Context.
func NewContext(name, source string, p Pos) *Context {
	return &Context{name, source, p}
}

// Variables controlling the style of the culprit marker. Can be overridden in
// tests.
var (
	culpritMarkBegin = "\033[1;4m"
	culpritMarkEnd   = "\033[m"
)

// Show shows the context: the name and position, followed by the source line
// with the culprit column highlighted.
func (c *Context) Show(indent string) string {
	if !c.Known() {
		return fmt.Sprintf("%s, unknown position", c.Name)
	}
	desc := fmt.Sprintf("%s, line %d:", c.Name, c.Line)
	line, ok := c.sourceLine()
	if !ok {
		return desc
	}
	return desc + "\n" + indent + "  " + markColumn(line, c.Col)
}

// sourceLine returns the Line'th line of the source, without its trailing
// newline.
func (c *Context) sourceLine() (string, bool) {
	lines := strings.Split(c.Source, "\n")
	if c.Line < 1 || c.Line > len(lines) {
		return "", false
	}
	return lines[c.Line-1], true
}

// markColumn highlights the rune at the given 1-based column. A column just
// past the end of the line marks the end of input.
func markColumn(line string, col int) string {
	i := col - 1
	if i < 0 || i >= len(line) {
		return line + culpritMarkBegin + " " + culpritMarkEnd
	}
	return line[:i] + culpritMarkBegin + line[i:i+1] + culpritMarkEnd + line[i+1:]
}
