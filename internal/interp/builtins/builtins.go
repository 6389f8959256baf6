// Package builtins implements the language's fixed list combinators: list,
// get, len, map, filter, any, all and fold. Each is a pure function from a
// single runtime.Value argument (multi-argument calls arrive here already
// collapsed into a Tuple by the parser's call-site desugaring) to a result
// or an *errors.EvalError.
//
// map, filter, any, all and fold need to call back into a weave function
// or lambda value; they take that ability as the apply parameter rather
// than importing the evaluator, which would create an import cycle
// (evaluator already imports builtins).
package builtins

import (
	"github.com/weave-lang/weave/internal/interp/errors"
	"github.com/weave-lang/weave/internal/interp/runtime"
)

// ApplyFunc calls a weave function, lambda or builtin value with a single
// argument, exactly as a Call expression would.
type ApplyFunc func(fn runtime.Value, arg runtime.Value) (runtime.Value, *errors.EvalError)

// Func is the shape every built-in combinator implements.
type Func func(arg runtime.Value, apply ApplyFunc) (runtime.Value, *errors.EvalError)

// Table maps each combinator's name to its implementation. Named the same
// way a host-registered builtin would be, but consulted first: a host
// cannot shadow one of these names (see pkg/weave's AddBuiltin).
var Table = map[string]Func{
	"list":   listFn,
	"get":    getFn,
	"len":    lenFn,
	"map":    mapFn,
	"filter": filterFn,
	"any":    anyFn,
	"all":    allFn,
	"fold":   foldFn,
}

// tupleArgs extracts exactly n positional arguments from arg. A single
// logical argument (n == 1) never arrives wrapped in a Tuple, since the
// parser only produces a Tuple argument for two or more call arguments.
func tupleArgs(arg runtime.Value, n int, name string) ([]runtime.Value, *errors.EvalError) {
	if n == 1 {
		if t, ok := arg.(runtime.Tuple); ok {
			return t.Elems, nil
		}
		return []runtime.Value{arg}, nil
	}
	t, ok := arg.(runtime.Tuple)
	if !ok {
		return nil, errors.WrongArityErr(name, 1)
	}
	if len(t.Elems) != n {
		return nil, errors.WrongArityErr(name, len(t.Elems))
	}
	return t.Elems, nil
}

func wantList(v runtime.Value, name string) (runtime.List, *errors.EvalError) {
	l, ok := v.(runtime.List)
	if !ok {
		return runtime.List{}, errors.New(errors.TypeMismatch, "%s expects a List, got %s", name, v.Kind())
	}
	return l, nil
}

func wantBool(v runtime.Value, name string) (bool, *errors.EvalError) {
	b, ok := v.(runtime.Bool)
	if !ok {
		return false, errors.New(errors.TypeMismatch, "%s's function must return a Bool, got %s", name, v.Kind())
	}
	return b.V, nil
}

// listFn collects its arguments into a List. list() is the empty list;
// list(a, b, c) is a 3-element list; list((1, 2)) flattens the tuple it
// was given exactly as list(1, 2) would, since both arrive as the same
// 2-element Tuple argument.
func listFn(arg runtime.Value, _ ApplyFunc) (runtime.Value, *errors.EvalError) {
	if t, ok := arg.(runtime.Tuple); ok {
		return runtime.List{Elems: append([]runtime.Value(nil), t.Elems...)}, nil
	}
	return runtime.List{Elems: []runtime.Value{arg}}, nil
}

// getFn indexes a List. Negative indices are out of range, not a wraparound
// access.
func getFn(arg runtime.Value, _ ApplyFunc) (runtime.Value, *errors.EvalError) {
	elems, err := tupleArgs(arg, 2, "get")
	if err != nil {
		return nil, err
	}
	lst, err := wantList(elems[0], "get")
	if err != nil {
		return nil, err
	}
	idx, ok := elems[1].(runtime.Int)
	if !ok {
		return nil, errors.New(errors.TypeMismatch, "get expects an Int index, got %s", elems[1].Kind())
	}
	if idx.V < 0 || int(idx.V) >= len(lst.Elems) {
		return nil, errors.IndexOutOfRangeErr(int(idx.V), len(lst.Elems))
	}
	return lst.Elems[idx.V], nil
}

func lenFn(arg runtime.Value, _ ApplyFunc) (runtime.Value, *errors.EvalError) {
	lst, err := wantList(arg, "len")
	if err != nil {
		return nil, err
	}
	return runtime.Int{V: int32(len(lst.Elems))}, nil
}

func mapFn(arg runtime.Value, apply ApplyFunc) (runtime.Value, *errors.EvalError) {
	elems, err := tupleArgs(arg, 2, "map")
	if err != nil {
		return nil, err
	}
	lst, err := wantList(elems[0], "map")
	if err != nil {
		return nil, err
	}
	out := make([]runtime.Value, len(lst.Elems))
	for i, e := range lst.Elems {
		v, err := apply(elems[1], e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return runtime.List{Elems: out}, nil
}

func filterFn(arg runtime.Value, apply ApplyFunc) (runtime.Value, *errors.EvalError) {
	elems, err := tupleArgs(arg, 2, "filter")
	if err != nil {
		return nil, err
	}
	lst, err := wantList(elems[0], "filter")
	if err != nil {
		return nil, err
	}
	var out []runtime.Value
	for _, e := range lst.Elems {
		v, err := apply(elems[1], e)
		if err != nil {
			return nil, err
		}
		keep, err := wantBool(v, "filter")
		if err != nil {
			return nil, err
		}
		if keep {
			out = append(out, e)
		}
	}
	return runtime.List{Elems: out}, nil
}

// anyFn and allFn always traverse the whole list; they do not short-circuit
// on the first decisive element, so a predicate error later in the list is
// never masked by an early true/false.
func anyFn(arg runtime.Value, apply ApplyFunc) (runtime.Value, *errors.EvalError) {
	elems, err := tupleArgs(arg, 2, "any")
	if err != nil {
		return nil, err
	}
	lst, err := wantList(elems[0], "any")
	if err != nil {
		return nil, err
	}
	found := false
	for _, e := range lst.Elems {
		v, err := apply(elems[1], e)
		if err != nil {
			return nil, err
		}
		b, err := wantBool(v, "any")
		if err != nil {
			return nil, err
		}
		if b {
			found = true
		}
	}
	return runtime.Bool{V: found}, nil
}

func allFn(arg runtime.Value, apply ApplyFunc) (runtime.Value, *errors.EvalError) {
	elems, err := tupleArgs(arg, 2, "all")
	if err != nil {
		return nil, err
	}
	lst, err := wantList(elems[0], "all")
	if err != nil {
		return nil, err
	}
	result := true
	for _, e := range lst.Elems {
		v, err := apply(elems[1], e)
		if err != nil {
			return nil, err
		}
		b, err := wantBool(v, "all")
		if err != nil {
			return nil, err
		}
		if !b {
			result = false
		}
	}
	return runtime.Bool{V: result}, nil
}

func foldFn(arg runtime.Value, apply ApplyFunc) (runtime.Value, *errors.EvalError) {
	elems, err := tupleArgs(arg, 3, "fold")
	if err != nil {
		return nil, err
	}
	lst, err := wantList(elems[0], "fold")
	if err != nil {
		return nil, err
	}
	acc := elems[1]
	fn := elems[2]
	for _, e := range lst.Elems {
		v, err := apply(fn, runtime.Tuple{Elems: []runtime.Value{acc, e}})
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}
