package weave

import (
	"github.com/weave-lang/weave/internal/interp/extensions"
	"github.com/weave-lang/weave/internal/interp/runtime"
)

// toExtensionCaps lowers a host-facing Capabilities into the evaluator's
// internal extensions.Capabilities, wrapping each hook to translate
// runtime.Value <-> Value at the boundary. A nil field stays nil so the
// evaluator's "not handled, fall through" logic is unaffected.
func toExtensionCaps(c Capabilities) *extensions.Capabilities {
	out := &extensions.Capabilities{}
	if c.PreAdd != nil {
		out.PreAdd = valueHook(c.PreAdd)
	}
	if c.PostAdd != nil {
		out.PostAdd = valueHook(c.PostAdd)
	}
	if c.PreSub != nil {
		out.PreSub = valueHook(c.PreSub)
	}
	if c.PostSub != nil {
		out.PostSub = valueHook(c.PostSub)
	}
	if c.PreMul != nil {
		out.PreMul = valueHook(c.PreMul)
	}
	if c.PostMul != nil {
		out.PostMul = valueHook(c.PostMul)
	}
	if c.PreDiv != nil {
		out.PreDiv = valueHook(c.PreDiv)
	}
	if c.PostDiv != nil {
		out.PostDiv = valueHook(c.PostDiv)
	}
	if c.PreMod != nil {
		out.PreMod = valueHook(c.PreMod)
	}
	if c.PostMod != nil {
		out.PostMod = valueHook(c.PostMod)
	}
	if c.PreEq != nil {
		out.PreEq = boolHook(c.PreEq)
	}
	if c.PostEq != nil {
		out.PostEq = boolHook(c.PostEq)
	}
	if c.PreNeq != nil {
		out.PreNeq = boolHook(c.PreNeq)
	}
	if c.PostNeq != nil {
		out.PostNeq = boolHook(c.PostNeq)
	}
	if c.PreLt != nil {
		out.PreLt = boolHook(c.PreLt)
	}
	if c.PostLt != nil {
		out.PostLt = boolHook(c.PostLt)
	}
	if c.PreGt != nil {
		out.PreGt = boolHook(c.PreGt)
	}
	if c.PostGt != nil {
		out.PostGt = boolHook(c.PostGt)
	}
	if c.PreLeq != nil {
		out.PreLeq = boolHook(c.PreLeq)
	}
	if c.PostLeq != nil {
		out.PostLeq = boolHook(c.PostLeq)
	}
	if c.PreGeq != nil {
		out.PreGeq = boolHook(c.PreGeq)
	}
	if c.PostGeq != nil {
		out.PostGeq = boolHook(c.PostGeq)
	}
	if c.PreAnd != nil {
		out.PreAnd = boolHook(c.PreAnd)
	}
	if c.PostAnd != nil {
		out.PostAnd = boolHook(c.PostAnd)
	}
	if c.PreOr != nil {
		out.PreOr = boolHook(c.PreOr)
	}
	if c.PostOr != nil {
		out.PostOr = boolHook(c.PostOr)
	}
	if c.PreNot != nil {
		fn := c.PreNot
		out.PreNot = func(self any) (runtime.Value, error) {
			v, err := fn(self)
			if err != nil {
				return nil, err
			}
			return toRuntime(v), nil
		}
	}
	if c.PreNeg != nil {
		fn := c.PreNeg
		out.PreNeg = func(self any) (runtime.Value, error) {
			v, err := fn(self)
			if err != nil {
				return nil, err
			}
			return toRuntime(v), nil
		}
	}
	if c.Display != nil {
		out.Display = c.Display
	}
	return out
}

func valueHook(fn func(any, Value) (Value, error)) func(any, runtime.Value) (runtime.Value, error) {
	return func(self any, other runtime.Value) (runtime.Value, error) {
		v, err := fn(self, fromRuntime(other))
		if err != nil {
			return nil, err
		}
		return toRuntime(v), nil
	}
}

func boolHook(fn func(any, Value) (bool, error)) func(any, runtime.Value) (bool, error) {
	return func(self any, other runtime.Value) (bool, error) {
		return fn(self, fromRuntime(other))
	}
}
