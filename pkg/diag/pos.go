// Package diag contains building blocks for positioned diagnostics.
package diag

import "fmt"

// Pos is a position in a piece of source code. Both Line and Col are 1-based;
// the zero value marks an unknown position.
type Pos struct {
	Line int
	Col  int
}

// Known reports whether the position is known.
func (p Pos) Known() bool { return p.Line > 0 }

func (p Pos) String() string {
	if !p.Known() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
