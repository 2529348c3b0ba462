package eval

import (
	"fmt"

	"src.rill.dev/pkg/diag"
)

// Exception is a runtime error raised at a point of evaluation. It carries
// the source context of the node whose evaluation failed.
type Exception struct {
	Reason  error
	Context *diag.Context
}

// Error returns the message of the cause of the exception.
func (exc *Exception) Error() string { return exc.Reason.Error() }

// Unwrap returns the cause of the exception.
func (exc *Exception) Unwrap() error { return exc.Reason }

// Show shows the exception with its source context.
func (exc *Exception) Show(indent string) string {
	s := fmt.Sprintf("Exception: \033[31;1m%s\033[m", exc.Reason)
	if exc.Context != nil {
		s += "\n" + indent + "  " + exc.Context.Show(indent+"  ")
	}
	return s
}

// control is the result of executing a statement: either normal completion
// or a propagating return carrying a value. It is deliberately not an error,
// so that return can never be confused with a genuine runtime failure; the
// nearest enclosing call boundary consumes it.
type control struct {
	returning bool
	value     any
}
