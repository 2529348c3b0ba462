package eval

import (
	"errors"
	"testing"

	"src.rill.dev/pkg/lex"
	"src.rill.dev/pkg/tt"
)

func TestApplyOp(t *testing.T) {
	tt.Test(t, tt.Fn("applyOp", applyOp), tt.Table{
		tt.Args(lex.Plus, int64(2), int64(3)).Rets(int64(5), nil),
		tt.Args(lex.Plus, int64(2), 0.5).Rets(2.5, nil),
		tt.Args(lex.Plus, "a", "b").Rets("ab", nil),
		tt.Args(lex.Plus, []any{int64(1)}, []any{int64(2)}).
			Rets([]any{int64(1), int64(2)}, nil),
		tt.Args(lex.Minus, int64(2), int64(3)).Rets(int64(-1), nil),
		tt.Args(lex.Star, int64(4), 0.5).Rets(2.0, nil),
		tt.Args(lex.Slash, int64(10), int64(4)).Rets(2.5, nil),
		tt.Args(lex.Slash, int64(4), int64(2)).Rets(2.0, nil),
		tt.Args(lex.Lt, int64(1), int64(2)).Rets(true, nil),
		tt.Args(lex.Gt, "b", "a").Rets(true, nil),
		tt.Args(lex.Eq, int64(3), 3.0).Rets(true, nil),
		tt.Args(lex.Eq, "a", int64(1)).Rets(false, nil),

		tt.Args(lex.Slash, int64(1), int64(0)).
			Rets(nil, errors.New("division by zero")),
		tt.Args(lex.Plus, "a", int64(1)).
			Rets(nil, errors.New("bad value: operand of '+' must be a compatible value, but is number")),
		tt.Args(lex.Star, []any{}, int64(2)).
			Rets(nil, errors.New("bad value: operand of '*' must be a compatible value, but is list")),
		tt.Args(lex.NotEq, int64(1), int64(2)).
			Rets(nil, errors.New("unknown operator '!='")),
		tt.Args(lex.GtEq, int64(1), int64(2)).
			Rets(nil, errors.New("unknown operator '>='")),
	})
}
