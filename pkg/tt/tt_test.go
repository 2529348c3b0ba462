package tt

import (
	"errors"
	"fmt"
	"testing"
)

// testT implements the T interface and records errors.
type testT []string

func (t *testT) Helper() {}

func (t *testT) Errorf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func add(a, b int) int { return a + b }

func divide(a, b int) (int, error) {
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}

func TestTTPass(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{
		Args(1, 2).Rets(3),
		Args(-1, 1).Rets(0),
	})
	if len(mockT) != 0 {
		t.Errorf("Test errored on matching table: %v", mockT)
	}
}

func TestTTFail(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("add", add), Table{Args(1, 2).Rets(4)})
	if len(mockT) != 1 {
		t.Errorf("Test did not report mismatch")
	}
	wantErr := "add(1, 2) -> 3, want 4"
	if mockT[0] != wantErr {
		t.Errorf("Test reported %q, want %q", mockT[0], wantErr)
	}
}

func TestTTErrorReturns(t *testing.T) {
	var mockT testT
	Test(&mockT, Fn("divide", divide), Table{
		Args(6, 2).Rets(3, nil),
		Args(1, 0).Rets(0, errors.New("division by zero")),
		Args(1, 0).Rets(Any, Any),
	})
	if len(mockT) != 0 {
		t.Errorf("Test errored on matching table: %v", mockT)
	}
}
