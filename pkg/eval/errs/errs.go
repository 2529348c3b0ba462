// Package errs declares error types used as part of the runtime error API.
package errs

import "fmt"

// ArityMismatch encodes an error where the expected number of values is out
// of the valid range.
type ArityMismatch struct {
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch: %s must be %s, but is %s",
		e.What, valuesDesc(e.ValidLow, e.ValidHigh), nValues(e.Actual))
}

func valuesDesc(low, high int) string {
	switch {
	case high == low:
		return nValues(low)
	case high == -1:
		return nValues(low) + " or more"
	default:
		return fmt.Sprintf("%d to %d values", low, high)
	}
}

func nValues(n int) string {
	if n == 1 {
		return "1 value"
	}
	return fmt.Sprintf("%d values", n)
}

// BadValue encodes an error where the value does not meet a requirement.
type BadValue struct {
	What   string
	Valid  string
	Actual string
}

func (e BadValue) Error() string {
	return fmt.Sprintf("bad value: %s must be %s, but is %s",
		e.What, e.Valid, e.Actual)
}
