// Package tt supports table-driven tests with little boilerplate.
//
// A table is a slice of cases, each an Args(...).Rets(...) chain; Test calls
// the function under test once per case and diffs the returns with go-cmp.
package tt

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Table represents a test table.
type Table []*Case

// Case represents a test case. It is created by the Args function, and
// offers setters that augment and return itself, so calls can be chained
// like Args(...).Rets(...).
type Case struct {
	args []any
	rets []any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case {
	return &Case{args: args}
}

// Rets modifies the test case so that it requires the return values to match
// the given values. It returns the receiver. An argument may implement the
// Matcher interface, in which case its Match method is called with the
// actual return value; otherwise values are compared with go-cmp, treating
// errors as equal when their messages are.
func (c *Case) Rets(rets ...any) *Case {
	c.rets = rets
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name string
	body any
}

// Fn makes a new FnToTest with the given function name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body}
}

// T is the interface for accessing testing.T.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test tests a function against test cases.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		for i, want := range test.rets {
			if !matchOne(want, rets[i]) {
				t.Errorf("%s(%s) -> %s, want %s",
					fn.name, commaDelimited(test.args...),
					commaDelimited(rets...), commaDelimited(test.rets...))
				break
			}
		}
	}
}

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether a return value is considered a match.
	Match(ret any) bool
}

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(any) bool { return true }

var cmpOpt = cmpopts.EquateErrors()

func matchOne(want, got any) bool {
	if m, ok := want.(Matcher); ok {
		return m.Match(got)
	}
	if wantErr, ok := want.(error); ok {
		gotErr, ok := got.(error)
		return ok && wantErr.Error() == gotErr.Error()
	}
	return cmp.Equal(want, got, cmpOpt)
}

func commaDelimited(args ...any) string {
	s := ""
	for i, arg := range args {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(arg)
	}
	return s
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	fnType := reflect.TypeOf(fn)
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) is a zero Value; make a typed nil from
			// the parameter type instead.
			argsReflect[i] = reflect.Zero(fnType.In(i))
		} else {
			argsReflect[i] = reflect.ValueOf(arg)
		}
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, retReflect := range retsReflect {
		rets[i] = retReflect.Interface()
	}
	return rets
}
