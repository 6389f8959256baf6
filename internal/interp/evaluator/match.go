package evaluator

import (
	"github.com/weave-lang/weave/internal/ast"
	evalerrors "github.com/weave-lang/weave/internal/interp/errors"
	"github.com/weave-lang/weave/internal/interp/runtime"
)

// matchClause matches a clause's (possibly absent) pattern against arg.
// A nil pattern is the implicit wildcard a clause gets when it omits its
// `pattern ->` prefix: it matches anything and binds nothing. env is the
// caller's environment (see match).
func (e *Evaluator) matchClause(pattern ast.Expr, arg runtime.Value, frame, env *runtime.Frame) (bool, *evalerrors.EvalError) {
	if pattern == nil {
		return true, nil
	}
	return e.match(pattern, arg, frame, env)
}

// match implements the pattern-matching algorithm: a bare Var always
// matches and binds the value under its name in frame (fatal
// DuplicateBinding if the name is already bound in this same frame, i.e.
// this same pattern); a TupleExpr destructures a Tuple value positionally
// after 1-tuple unwrapping at every nesting level, with arity mismatch a
// plain no-match rather than an error; anything else is evaluated as an
// ordinary expression and compared for equality against the value.
//
// frame accumulates this pattern's own bindings as matching proceeds.
// env is the caller's environment — the scope in effect at the call site,
// never the partial frame being built — and is what the "any other
// pattern expression" case evaluates against, per spec.md §4.2: an
// earlier sibling's binding in the same pattern (e.g. the `x` in
// `(x, x+1)`) must not be visible to a later sibling's literal
// sub-pattern. Callers pass nil for a top-level function clause (no
// enclosing scope) and the lambda's captured frame for a lambda clause.
func (e *Evaluator) match(pattern ast.Expr, value runtime.Value, frame, env *runtime.Frame) (bool, *evalerrors.EvalError) {
	switch pat := pattern.(type) {
	case *ast.Var:
		if err := runtime.Define(frame, pat.Name, value); err != nil {
			return false, evalerrors.Stamp(err, pattern.Span())
		}
		return true, nil
	case *ast.TupleExpr:
		tup, ok := runtime.Unwrap1(value).(runtime.Tuple)
		if !ok {
			if len(pat.Elems) == 0 {
				return false, nil
			}
			return false, nil
		}
		if len(tup.Elems) != len(pat.Elems) {
			return false, nil
		}
		for i, sub := range pat.Elems {
			ok, err := e.match(sub, tup.Elems[i], frame, env)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	default:
		patVal, err := e.Eval(pattern, env, 0)
		if err != nil {
			return false, err
		}
		eq, err := e.valuesEqual(patVal, value)
		if err != nil {
			return false, evalerrors.Stamp(err, pattern.Span())
		}
		return eq, nil
	}
}

// valuesEqual compares two values structurally, applying 1-tuple
// transparency at every nesting level. A top-level == with a Custom
// operand goes through pre_eq/post_eq dispatch (see operators.go) and
// never reaches here. A Function, Lambda, Builtin or Custom value that
// does reach here (inside a Tuple or List, or in a pattern) reports
// NotComparable when it is the left operand; as the right operand of an
// Int, Bool, String, Tuple or List it simply compares unequal.
func (e *Evaluator) valuesEqual(a, b runtime.Value) (bool, *evalerrors.EvalError) {
	a = runtime.Unwrap1(a)
	b = runtime.Unwrap1(b)
	switch av := a.(type) {
	case runtime.Int:
		bv, ok := b.(runtime.Int)
		return ok && av.V == bv.V, nil
	case runtime.Bool:
		bv, ok := b.(runtime.Bool)
		return ok && av.V == bv.V, nil
	case runtime.String:
		bv, ok := b.(runtime.String)
		return ok && av.V == bv.V, nil
	case runtime.Tuple:
		bv, ok := b.(runtime.Tuple)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false, nil
		}
		for i := range av.Elems {
			eq, err := e.valuesEqual(av.Elems[i], bv.Elems[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	case runtime.List:
		bv, ok := b.(runtime.List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false, nil
		}
		for i := range av.Elems {
			eq, err := e.valuesEqual(av.Elems[i], bv.Elems[i])
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	default:
		return false, evalerrors.NotComparableErr(a.Kind())
	}
}
