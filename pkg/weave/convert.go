package weave

import "github.com/weave-lang/weave/internal/interp/runtime"

// toRuntime lowers a host Value into the evaluator's internal
// representation, recursing through Tuple/List elements.
func toRuntime(v Value) runtime.Value {
	switch v.kind {
	case KindInt:
		return runtime.Int{V: v.i}
	case KindString:
		return runtime.String{V: v.s}
	case KindBool:
		return runtime.Bool{V: v.b}
	case KindTuple:
		return runtime.Tuple{Elems: toRuntimeSlice(v.elems)}
	case KindList:
		return runtime.List{Elems: toRuntimeSlice(v.elems)}
	case KindCustom:
		return runtime.Custom{V: v.custom}
	default:
		return runtime.Custom{V: nil}
	}
}

func toRuntimeSlice(vs []Value) []runtime.Value {
	out := make([]runtime.Value, len(vs))
	for i, v := range vs {
		out[i] = toRuntime(v)
	}
	return out
}

// hostUnsafeKind reports the kind name of the first Function, Lambda or
// Builtin found in v, searching inside Tuple/List elements as well as at
// the top level. A function whose body is a bare function/builtin
// reference or a lambda literal (e.g. `#main () -> map;`) legitimately
// evaluates to exactly such a value, so Handle.Call must check for this
// rather than assume it can't happen.
func hostUnsafeKind(v runtime.Value) (string, bool) {
	switch vv := v.(type) {
	case runtime.Function:
		return "Function", true
	case runtime.Lambda:
		return "Lambda", true
	case runtime.Builtin:
		return "Builtin", true
	case runtime.Tuple:
		for _, el := range vv.Elems {
			if kind, bad := hostUnsafeKind(el); bad {
				return kind, true
			}
		}
	case runtime.List:
		for _, el := range vv.Elems {
			if kind, bad := hostUnsafeKind(el); bad {
				return kind, true
			}
		}
	}
	return "", false
}

// fromRuntime raises an evaluator value back to the host-facing Value.
// Callers that can receive a Function, Lambda or Builtin from the
// language (Handle.Call's result) must check hostUnsafeKind first; those
// kinds have no Value representation and fall through to Custom(nil)
// here only because such a call site already turned them into an error.
func fromRuntime(v runtime.Value) Value {
	switch vv := v.(type) {
	case runtime.Int:
		return Int(vv.V)
	case runtime.String:
		return String(vv.V)
	case runtime.Bool:
		return Bool(vv.V)
	case runtime.Tuple:
		return Tuple(fromRuntimeSlice(vv.Elems)...)
	case runtime.List:
		return List(fromRuntimeSlice(vv.Elems)...)
	case runtime.Custom:
		return Custom(vv.V)
	default:
		return Custom(nil)
	}
}

func fromRuntimeSlice(vs []runtime.Value) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = fromRuntime(v)
	}
	return out
}
