package eval

import (
	"fmt"
	"strconv"
	"strings"

	"src.rill.dev/pkg/sched"
)

// Values are represented by host types: nil (None), bool, int64, float64,
// string, []any (lists), *Closure, *BuiltinFn, *Stream and *sched.Task.

// Kind returns a human-readable description of the kind of a value, used in
// error messages.
func Kind(v any) string {
	switch v.(type) {
	case nil:
		return "none"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case *Closure:
		return "function"
	case *BuiltinFn:
		return "builtin function"
	case *Stream:
		return "stream"
	case *sched.Task:
		return "task"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ToString renders a value the way str and print do.
func ToString(v any) string {
	switch v := v.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case []any:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(Repr(elem))
		}
		sb.WriteByte(']')
		return sb.String()
	case *Closure:
		return "<function " + v.Name + ">"
	case *BuiltinFn:
		return "<builtin " + v.Name + ">"
	case *Stream:
		return "<stream>"
	case *sched.Task:
		return "<task>"
	default:
		return fmt.Sprint(v)
	}
}

// Repr is like ToString except that strings are quoted. List elements are
// rendered with Repr.
func Repr(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}
	return ToString(v)
}

// Truth converts a value to a boolean: None, False, zero numbers, empty
// strings and empty lists are false; everything else is true.
func Truth(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) != 0
	default:
		return true
	}
}

// Equal compares two values structurally. Numbers compare across int and
// float representations.
func Equal(a, b any) bool {
	if an, aok := toFloat(a); aok {
		bn, bok := toFloat(b)
		return bok && an == bn
	}
	switch a := a.(type) {
	case nil:
		return b == nil
	case bool:
		bb, ok := b.(bool)
		return ok && a == bb
	case string:
		bs, ok := b.(string)
		return ok && a == bs
	case []any:
		bl, ok := b.([]any)
		if !ok || len(a) != len(bl) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bl[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
