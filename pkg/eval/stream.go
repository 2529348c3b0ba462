package eval

import (
	"src.rill.dev/pkg/eval/errs"
)

// Stream is a lazy, finite sequence of values produced on demand by map and
// filter. A stream can be consumed only once; re-invoking the call that made
// it produces a fresh stream.
type Stream struct {
	next func() (any, bool, error)
}

// Next produces the next element. The second return value is false once the
// stream is exhausted.
func (s *Stream) Next() (any, bool, error) { return s.next() }

// iterator returns a function producing the successive elements of a value.
// Lists, streams and strings are iterable; strings yield one-character
// strings.
func iterator(v any) (func() (any, bool, error), error) {
	switch v := v.(type) {
	case []any:
		i := 0
		return func() (any, bool, error) {
			if i >= len(v) {
				return nil, false, nil
			}
			elem := v[i]
			i++
			return elem, true, nil
		}, nil
	case *Stream:
		return v.next, nil
	case string:
		i := 0
		return func() (any, bool, error) {
			if i >= len(v) {
				return nil, false, nil
			}
			elem := v[i : i+1]
			i++
			return elem, true, nil
		}, nil
	default:
		return nil, errs.BadValue{
			What: "iterated value", Valid: "a list, stream or string",
			Actual: Kind(v),
		}
	}
}

// each applies f to every element of an iterable value, stopping at the
// first error.
func each(v any, f func(any) error) error {
	it, err := iterator(v)
	if err != nil {
		return err
	}
	for {
		elem, ok, err := it()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := f(elem); err != nil {
			return err
		}
	}
}
