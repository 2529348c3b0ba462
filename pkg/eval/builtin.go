package eval

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"src.rill.dev/pkg/diag"
	"src.rill.dev/pkg/eval/errs"
)

// addBuiltins populates the built-in scope. Built-ins receive the calling
// frame so they can reach the evaler's ports, scheduler and scopes.
func addBuiltins(scope *Scope) {
	for _, b := range builtins {
		scope.Define(b.Name, b)
	}
}

var builtins = []*BuiltinFn{
	{"print", printFn},
	{"input", inputFn},
	{"map", mapFn},
	{"filter", filterFn},
	{"sum", sumFn},
	{"list", listFn},
	{"int", intFn},
	{"float", floatFn},
	{"str", strFn},
	{"len", lenFn},
}

func checkBuiltinArity(name string, args []any, n int) error {
	if len(args) != n {
		return errs.ArityMismatch{
			What:     "arguments to " + name,
			ValidLow: n, ValidHigh: n, Actual: len(args),
		}
	}
	return nil
}

func printFn(fm *Frame, args []any) (any, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = ToString(arg)
	}
	_, err := fmt.Fprintln(fm.Evaler.Ports.Out, strings.Join(parts, " "))
	return nil, err
}

func inputFn(fm *Frame, args []any) (any, error) {
	ev := fm.Evaler
	if len(args) > 1 {
		return nil, errs.ArityMismatch{
			What:     "arguments to input",
			ValidLow: 0, ValidHigh: 1, Actual: len(args),
		}
	}
	if len(args) == 1 {
		fmt.Fprint(ev.Ports.Out, ToString(args[0]))
	}
	if ev.in == nil {
		ev.in = bufio.NewReader(ev.Ports.In)
	}
	line, err := ev.in.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// mapFn builds a lazy stream applying f to each element of data. The
// argument order is (data, f) so that pipelines read left to right.
func mapFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("map", args, 2); err != nil {
		return nil, err
	}
	it, err := iterator(args[0])
	if err != nil {
		return nil, err
	}
	f := args[1]
	return &Stream{next: func() (any, bool, error) {
		elem, ok, err := it()
		if err != nil || !ok {
			return nil, false, err
		}
		v, err := fm.call(f, []any{elem}, diag.Pos{})
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}}, nil
}

func filterFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("filter", args, 2); err != nil {
		return nil, err
	}
	it, err := iterator(args[0])
	if err != nil {
		return nil, err
	}
	f := args[1]
	return &Stream{next: func() (any, bool, error) {
		for {
			elem, ok, err := it()
			if err != nil || !ok {
				return nil, false, err
			}
			keep, err := fm.call(f, []any{elem}, diag.Pos{})
			if err != nil {
				return nil, false, err
			}
			if Truth(keep) {
				return elem, true, nil
			}
		}
	}}, nil
}

func sumFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("sum", args, 1); err != nil {
		return nil, err
	}
	var intSum int64
	var floatSum float64
	isFloat := false
	err := each(args[0], func(elem any) error {
		switch elem := elem.(type) {
		case int64:
			intSum += elem
		case float64:
			isFloat = true
			floatSum += elem
		default:
			return errs.BadValue{
				What:  "summed element",
				Valid: "a number", Actual: Kind(elem),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if isFloat {
		return floatSum + float64(intSum), nil
	}
	return intSum, nil
}

// listFn materializes its argument: lists are copied, streams drained,
// strings split into one-character strings.
func listFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("list", args, 1); err != nil {
		return nil, err
	}
	out := []any{}
	err := each(args[0], func(elem any) error {
		out = append(out, elem)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func intFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("int", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, errs.BadValue{
				What:  "argument to int",
				Valid: "an integer literal", Actual: Repr(v),
			}
		}
		return n, nil
	}
	return nil, errs.BadValue{
		What:  "argument to int",
		Valid: "a number, boolean or string", Actual: Kind(args[0]),
	}
}

func floatFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("float", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, errs.BadValue{
				What:  "argument to float",
				Valid: "a number literal", Actual: Repr(v),
			}
		}
		return f, nil
	}
	return nil, errs.BadValue{
		What:  "argument to float",
		Valid: "a number or string", Actual: Kind(args[0]),
	}
}

func strFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("str", args, 1); err != nil {
		return nil, err
	}
	return ToString(args[0]), nil
}

func lenFn(fm *Frame, args []any) (any, error) {
	if err := checkBuiltinArity("len", args, 1); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case string:
		return int64(len(v)), nil
	case []any:
		return int64(len(v)), nil
	}
	return nil, errs.BadValue{
		What:  "argument to len",
		Valid: "a list or string", Actual: Kind(args[0]),
	}
}
