package errs

import "testing"

var errorMessageTests = []struct {
	err     error
	wantMsg string
}{
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: 2, Actual: 3},
		"arity mismatch: arguments must be 2 values, but is 3 values",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 2, ValidHigh: -1, Actual: 1},
		"arity mismatch: arguments must be 2 values or more, but is 1 value",
	},
	{
		ArityMismatch{What: "arguments", ValidLow: 1, ValidHigh: 2, Actual: 0},
		"arity mismatch: arguments must be 1 to 2 values, but is 0 values",
	},
	{
		BadValue{What: "pipeline right-hand side",
			Valid: "a call or a name", Actual: "a literal"},
		"bad value: pipeline right-hand side must be a call or a name, but is a literal",
	},
}

func TestErrorMessages(t *testing.T) {
	for _, test := range errorMessageTests {
		if gotMsg := test.err.Error(); gotMsg != test.wantMsg {
			t.Errorf("got message %q, want %q", gotMsg, test.wantMsg)
		}
	}
}
