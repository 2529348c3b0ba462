package eval

import (
	"errors"
	"fmt"

	"src.rill.dev/pkg/eval/errs"
	"src.rill.dev/pkg/lex"
)

var errDivisionByZero = errors.New("division by zero")

// applyOp evaluates one application of a binary operator. The operator set
// is fixed to {+, -, *, /, >, <, ==}; other parseable operators are an
// "unknown operator" runtime error.
func applyOp(op lex.Kind, left, right any) (any, error) {
	switch op {
	case lex.Plus:
		return add(left, right)
	case lex.Minus:
		return arith(op, left, right)
	case lex.Star:
		return arith(op, left, right)
	case lex.Slash:
		return divide(left, right)
	case lex.Gt, lex.Lt:
		return compare(op, left, right)
	case lex.Eq:
		return Equal(left, right), nil
	default:
		return nil, fmt.Errorf("unknown operator %s", op)
	}
}

// add implements +: numeric addition, string concatenation, or list
// concatenation.
func add(left, right any) (any, error) {
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return nil, opOperandError(lex.Plus, right)
		}
		return ls + rs, nil
	}
	if ll, ok := left.([]any); ok {
		rl, ok := right.([]any)
		if !ok {
			return nil, opOperandError(lex.Plus, right)
		}
		out := make([]any, 0, len(ll)+len(rl))
		out = append(out, ll...)
		return append(out, rl...), nil
	}
	return arith(lex.Plus, left, right)
}

// arith implements +, - and * over int64/float64 with promotion to float
// when either operand is a float.
func arith(op lex.Kind, left, right any) (any, error) {
	li, lInt := left.(int64)
	ri, rInt := right.(int64)
	if lInt && rInt {
		switch op {
		case lex.Plus:
			return li + ri, nil
		case lex.Minus:
			return li - ri, nil
		case lex.Star:
			return li * ri, nil
		}
	}
	lf, lok := toFloat(left)
	if !lok {
		return nil, opOperandError(op, left)
	}
	rf, rok := toFloat(right)
	if !rok {
		return nil, opOperandError(op, right)
	}
	switch op {
	case lex.Plus:
		return lf + rf, nil
	case lex.Minus:
		return lf - rf, nil
	case lex.Star:
		return lf * rf, nil
	}
	panic("unreachable")
}

// divide implements true division: the result is always a float.
func divide(left, right any) (any, error) {
	lf, lok := toFloat(left)
	if !lok {
		return nil, opOperandError(lex.Slash, left)
	}
	rf, rok := toFloat(right)
	if !rok {
		return nil, opOperandError(lex.Slash, right)
	}
	if rf == 0 {
		return nil, errDivisionByZero
	}
	return lf / rf, nil
}

// compare implements < and > over numbers and strings.
func compare(op lex.Kind, left, right any) (any, error) {
	if ls, ok := left.(string); ok {
		rs, ok := right.(string)
		if !ok {
			return nil, opOperandError(op, right)
		}
		if op == lex.Lt {
			return ls < rs, nil
		}
		return ls > rs, nil
	}
	lf, lok := toFloat(left)
	if !lok {
		return nil, opOperandError(op, left)
	}
	rf, rok := toFloat(right)
	if !rok {
		return nil, opOperandError(op, right)
	}
	if op == lex.Lt {
		return lf < rf, nil
	}
	return lf > rf, nil
}

func opOperandError(op lex.Kind, v any) error {
	return errs.BadValue{
		What:   "operand of " + op.String(),
		Valid:  "a compatible value",
		Actual: Kind(v),
	}
}
