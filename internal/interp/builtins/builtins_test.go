package builtins

import (
	"testing"

	"github.com/weave-lang/weave/internal/interp/errors"
	"github.com/weave-lang/weave/internal/interp/runtime"
)

func TestListFn(t *testing.T) {
	v, err := Table["list"](runtime.Tuple{Elems: []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, ok := v.(runtime.List)
	if !ok || len(l.Elems) != 2 {
		t.Fatalf("list() = %v, want a 2-element list", v)
	}
}

func TestGetFnRejectsNegativeIndex(t *testing.T) {
	arg := runtime.Tuple{Elems: []runtime.Value{
		runtime.List{Elems: []runtime.Value{runtime.Int{V: 9}}},
		runtime.Int{V: -1},
	}}
	_, err := Table["get"](arg, nil)
	if err == nil || err.Kind != errors.IndexOutOfRange {
		t.Fatalf("get() with negative index = %v, want IndexOutOfRange", err)
	}
}

func TestGetFnInBounds(t *testing.T) {
	arg := runtime.Tuple{Elems: []runtime.Value{
		runtime.List{Elems: []runtime.Value{runtime.Int{V: 9}, runtime.Int{V: 8}}},
		runtime.Int{V: 1},
	}}
	v, err := Table["get"](arg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(runtime.Int); !ok || i.V != 8 {
		t.Errorf("get(l, 1) = %v, want 8", v)
	}
}

func TestLenFn(t *testing.T) {
	v, err := Table["len"](runtime.List{Elems: []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3}}}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(runtime.Int); !ok || i.V != 3 {
		t.Errorf("len() = %v, want 3", v)
	}
}

func TestMapFn(t *testing.T) {
	double := func(fn runtime.Value, arg runtime.Value) (runtime.Value, *errors.EvalError) {
		return runtime.Int{V: arg.(runtime.Int).V * 2}, nil
	}
	arg := runtime.Tuple{Elems: []runtime.Value{
		runtime.List{Elems: []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}}},
		runtime.Builtin{Name: "double"},
	}}
	v, err := Table["map"](arg, double)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l := v.(runtime.List)
	if len(l.Elems) != 2 || l.Elems[0].(runtime.Int).V != 2 || l.Elems[1].(runtime.Int).V != 4 {
		t.Errorf("map([1,2], double) = %v, want [2,4]", v)
	}
}

func TestFilterFnRequiresBoolPredicate(t *testing.T) {
	notBool := func(fn runtime.Value, arg runtime.Value) (runtime.Value, *errors.EvalError) {
		return runtime.Int{V: 1}, nil
	}
	arg := runtime.Tuple{Elems: []runtime.Value{
		runtime.List{Elems: []runtime.Value{runtime.Int{V: 1}}},
		runtime.Builtin{Name: "notBool"},
	}}
	_, err := Table["filter"](arg, notBool)
	if err == nil || err.Kind != errors.TypeMismatch {
		t.Fatalf("filter() with non-Bool predicate = %v, want TypeMismatch", err)
	}
}

func TestAnyAllFullTraversal(t *testing.T) {
	calls := 0
	alwaysTrue := func(fn runtime.Value, arg runtime.Value) (runtime.Value, *errors.EvalError) {
		calls++
		return runtime.Bool{V: true}, nil
	}
	arg := runtime.Tuple{Elems: []runtime.Value{
		runtime.List{Elems: []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3}}},
		runtime.Builtin{Name: "alwaysTrue"},
	}}
	v, err := Table["any"](arg, alwaysTrue)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.(runtime.Bool); !ok || !b.V {
		t.Errorf("any() = %v, want true", v)
	}
	if calls != 3 {
		t.Errorf("any() made %d predicate calls, want 3 (no short-circuit)", calls)
	}

	calls = 0
	alwaysFalse := func(fn runtime.Value, arg runtime.Value) (runtime.Value, *errors.EvalError) {
		calls++
		return runtime.Bool{V: false}, nil
	}
	v, err = Table["all"](arg, alwaysFalse)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.(runtime.Bool); !ok || b.V {
		t.Errorf("all() = %v, want false", v)
	}
	if calls != 3 {
		t.Errorf("all() made %d predicate calls, want 3 (no short-circuit)", calls)
	}
}

func TestFoldFn(t *testing.T) {
	sum := func(fn runtime.Value, arg runtime.Value) (runtime.Value, *errors.EvalError) {
		t := arg.(runtime.Tuple)
		acc := t.Elems[0].(runtime.Int).V
		e := t.Elems[1].(runtime.Int).V
		return runtime.Int{V: acc + e}, nil
	}
	arg := runtime.Tuple{Elems: []runtime.Value{
		runtime.List{Elems: []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3}}},
		runtime.Int{V: 0},
		runtime.Builtin{Name: "sum"},
	}}
	v, err := Table["fold"](arg, sum)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(runtime.Int); !ok || i.V != 6 {
		t.Errorf("fold([1,2,3], 0, +) = %v, want 6", v)
	}
}

func TestTupleArgsSingleArgNeverWrapped(t *testing.T) {
	elems, err := tupleArgs(runtime.Int{V: 5}, 1, "len")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 1 || elems[0].(runtime.Int).V != 5 {
		t.Errorf("tupleArgs(Int, 1) = %v, want [Int(5)]", elems)
	}
}
