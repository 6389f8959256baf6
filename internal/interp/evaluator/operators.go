package evaluator

import (
	"strings"

	"github.com/weave-lang/weave/internal/ast"
	evalerrors "github.com/weave-lang/weave/internal/interp/errors"
	"github.com/weave-lang/weave/internal/interp/extensions"
	"github.com/weave-lang/weave/internal/interp/runtime"
)

// evalBinary evaluates a built-in binary operator application. && and ||
// are handled separately (evalAndOr) because they short-circuit once a
// primitive Bool operand already decides the result.
func (e *Evaluator) evalBinary(b *ast.Binary, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	if b.Op == ast.And || b.Op == ast.Or {
		return e.evalAndOr(b, frame, depth)
	}
	left, err := e.Eval(b.Left, frame, depth)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(b.Right, frame, depth)
	if err != nil {
		return nil, err
	}
	v, err := e.applyBinaryOp(b.Op, left, right)
	if err != nil {
		return nil, evalerrors.Stamp(err, b.Span())
	}
	return v, nil
}

func (e *Evaluator) evalAndOr(b *ast.Binary, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	left, err := e.Eval(b.Left, frame, depth)
	if err != nil {
		return nil, err
	}
	if lb, ok := left.(runtime.Bool); ok {
		if b.Op == ast.And && !lb.V {
			return runtime.Bool{V: false}, nil
		}
		if b.Op == ast.Or && lb.V {
			return runtime.Bool{V: true}, nil
		}
		right, err := e.Eval(b.Right, frame, depth)
		if err != nil {
			return nil, err
		}
		if rb, ok := right.(runtime.Bool); ok {
			return rb, nil
		}
		v, err := e.applyBinaryOp(b.Op, left, right)
		if err != nil {
			return nil, evalerrors.Stamp(err, b.Span())
		}
		return v, nil
	}
	right, err := e.Eval(b.Right, frame, depth)
	if err != nil {
		return nil, err
	}
	v, err := e.applyBinaryOp(b.Op, left, right)
	if err != nil {
		return nil, evalerrors.Stamp(err, b.Span())
	}
	return v, nil
}

// applyBinaryOp resolves a binary operator in the order Testable Property
// 7 requires: the primitive rule for the operand kinds involved, then the
// left operand's pre_<op> hook if it is Custom, then the right operand's
// post_<op> hook if it is Custom, and finally TypeMismatch naming both
// operands.
func (e *Evaluator) applyBinaryOp(op ast.BinaryOp, left, right runtime.Value) (runtime.Value, *evalerrors.EvalError) {
	if v, handled, err := primitiveBinary(e, op, left, right); handled {
		return v, err
	}
	if lc, ok := left.(runtime.Custom); ok {
		if v, err, handled := e.dispatchPre(op, lc.V, right); handled {
			return v, err
		}
	}
	if rc, ok := right.(runtime.Custom); ok {
		if v, err, handled := e.dispatchPost(op, left, rc.V); handled {
			return v, err
		}
	}
	return nil, evalerrors.TypeMismatchErr(opSymbol(op), left.Kind(), right.Kind())
}

func primitiveBinary(e *Evaluator, op ast.BinaryOp, left, right runtime.Value) (runtime.Value, bool, *evalerrors.EvalError) {
	switch op {
	case ast.Add:
		if l, ok := left.(runtime.Int); ok {
			if r, ok := right.(runtime.Int); ok {
				return runtime.Int{V: l.V + r.V}, true, nil
			}
		}
		// String + anything displayable coerces the right operand via the
		// same Display rule f-string interpolation uses.
		if l, ok := left.(runtime.String); ok {
			if s, ok := runtime.Display(right, e.customDisplay); ok {
				return runtime.String{V: l.V + s}, true, nil
			}
		}
	case ast.Mul:
		if l, ok := left.(runtime.Int); ok {
			if r, ok := right.(runtime.Int); ok {
				return runtime.Int{V: l.V * r.V}, true, nil
			}
		}
		// String * Int(k>=0) repeats the string k times; a negative k falls
		// through to TypeMismatch rather than panicking strings.Repeat.
		if l, ok := left.(runtime.String); ok {
			if r, ok := right.(runtime.Int); ok && r.V >= 0 {
				return runtime.String{V: strings.Repeat(l.V, int(r.V))}, true, nil
			}
		}
	case ast.Sub, ast.Div, ast.Mod:
		l, lok := left.(runtime.Int)
		r, rok := right.(runtime.Int)
		if !lok || !rok {
			return nil, false, nil
		}
		switch op {
		case ast.Sub:
			return runtime.Int{V: l.V - r.V}, true, nil
		case ast.Div:
			if r.V == 0 {
				return nil, true, evalerrors.ArithmeticErr("division by zero")
			}
			return runtime.Int{V: l.V / r.V}, true, nil
		case ast.Mod:
			if r.V == 0 {
				return nil, true, evalerrors.ArithmeticErr("modulo by zero")
			}
			return runtime.Int{V: l.V % r.V}, true, nil
		}
	case ast.Lt, ast.Gt, ast.Leq, ast.Geq:
		if l, ok := left.(runtime.Int); ok {
			if r, ok := right.(runtime.Int); ok {
				return runtime.Bool{V: compareOrdered(op, cmpInt(l.V, r.V))}, true, nil
			}
		}
		if l, ok := left.(runtime.String); ok {
			if r, ok := right.(runtime.String); ok {
				return runtime.Bool{V: compareOrdered(op, cmpString(l.V, r.V))}, true, nil
			}
		}
	case ast.Eq, ast.Neq:
		if _, ok := left.(runtime.Custom); ok {
			return nil, false, nil
		}
		if _, ok := right.(runtime.Custom); ok {
			return nil, false, nil
		}
		eq, err := e.valuesEqual(left, right)
		if err != nil {
			return nil, true, err
		}
		if op == ast.Neq {
			eq = !eq
		}
		return runtime.Bool{V: eq}, true, nil
	}
	return nil, false, nil
}

func cmpInt(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareOrdered(op ast.BinaryOp, c int) bool {
	switch op {
	case ast.Lt:
		return c < 0
	case ast.Gt:
		return c > 0
	case ast.Leq:
		return c <= 0
	case ast.Geq:
		return c >= 0
	default:
		return false
	}
}

// dispatchPre looks up and calls self's pre_<op> hook, where self is the
// Custom payload of the left operand and other is the right operand as
// evaluated. handled is false when no hook is registered for op, telling
// the caller to fall through to the next dispatch step.
func (e *Evaluator) dispatchPre(op ast.BinaryOp, self any, other runtime.Value) (runtime.Value, *evalerrors.EvalError, bool) {
	caps := e.capabilities()
	if caps == nil {
		return nil, nil, false
	}
	switch op {
	case ast.Add:
		return callValueHook(caps.PreAdd, self, other)
	case ast.Sub:
		return callValueHook(caps.PreSub, self, other)
	case ast.Mul:
		return callValueHook(caps.PreMul, self, other)
	case ast.Div:
		return callValueHook(caps.PreDiv, self, other)
	case ast.Mod:
		return callValueHook(caps.PreMod, self, other)
	case ast.Eq:
		return callBoolHook(caps.PreEq, self, other)
	case ast.Neq:
		return callBoolHook(caps.PreNeq, self, other)
	case ast.Lt:
		return callBoolHook(caps.PreLt, self, other)
	case ast.Gt:
		return callBoolHook(caps.PreGt, self, other)
	case ast.Leq:
		return callBoolHook(caps.PreLeq, self, other)
	case ast.Geq:
		return callBoolHook(caps.PreGeq, self, other)
	case ast.And:
		return callBoolHook(caps.PreAnd, self, other)
	case ast.Or:
		return callBoolHook(caps.PreOr, self, other)
	}
	return nil, nil, false
}

// dispatchPost mirrors dispatchPre for a Custom right operand: self is the
// Custom payload of the right operand, other is the left operand.
func (e *Evaluator) dispatchPost(op ast.BinaryOp, other runtime.Value, self any) (runtime.Value, *evalerrors.EvalError, bool) {
	caps := e.capabilities()
	if caps == nil {
		return nil, nil, false
	}
	switch op {
	case ast.Add:
		return callValueHook(caps.PostAdd, self, other)
	case ast.Sub:
		return callValueHook(caps.PostSub, self, other)
	case ast.Mul:
		return callValueHook(caps.PostMul, self, other)
	case ast.Div:
		return callValueHook(caps.PostDiv, self, other)
	case ast.Mod:
		return callValueHook(caps.PostMod, self, other)
	case ast.Eq:
		return callBoolHook(caps.PostEq, self, other)
	case ast.Neq:
		return callBoolHook(caps.PostNeq, self, other)
	case ast.Lt:
		return callBoolHook(caps.PostLt, self, other)
	case ast.Gt:
		return callBoolHook(caps.PostGt, self, other)
	case ast.Leq:
		return callBoolHook(caps.PostLeq, self, other)
	case ast.Geq:
		return callBoolHook(caps.PostGeq, self, other)
	case ast.And:
		return callBoolHook(caps.PostAnd, self, other)
	case ast.Or:
		return callBoolHook(caps.PostOr, self, other)
	}
	return nil, nil, false
}

func callValueHook(hook func(any, runtime.Value) (runtime.Value, error), self any, other runtime.Value) (runtime.Value, *evalerrors.EvalError, bool) {
	if hook == nil {
		return nil, nil, false
	}
	v, err := hook(self, other)
	if err != nil {
		return nil, evalerrors.CustomHookRejectedErr(err.Error()), true
	}
	return v, nil, true
}

func callBoolHook(hook func(any, runtime.Value) (bool, error), self any, other runtime.Value) (runtime.Value, *evalerrors.EvalError, bool) {
	if hook == nil {
		return nil, nil, false
	}
	b, err := hook(self, other)
	if err != nil {
		return nil, evalerrors.CustomHookRejectedErr(err.Error()), true
	}
	return runtime.Bool{V: b}, nil, true
}

func (e *Evaluator) capabilities() *extensions.Capabilities {
	if e.Reg == nil {
		return nil
	}
	return e.Reg.Caps
}

// evalUnary evaluates a built-in prefix operator: ! on Bool, - on Int, or
// either operator's pre_<op> hook when the operand is Custom.
func (e *Evaluator) evalUnary(u *ast.Unary, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	v, err := e.Eval(u.Expr, frame, depth)
	if err != nil {
		return nil, err
	}
	result, err := e.applyUnaryOp(u.Op, v)
	if err != nil {
		return nil, evalerrors.Stamp(err, u.Span())
	}
	return result, nil
}

func (e *Evaluator) applyUnaryOp(op ast.UnaryOp, v runtime.Value) (runtime.Value, *evalerrors.EvalError) {
	switch op {
	case ast.Not:
		if b, ok := v.(runtime.Bool); ok {
			return runtime.Bool{V: !b.V}, nil
		}
	case ast.Neg:
		if n, ok := v.(runtime.Int); ok {
			return runtime.Int{V: -n.V}, nil
		}
	}
	if c, ok := v.(runtime.Custom); ok {
		if caps := e.capabilities(); caps != nil {
			var hook func(any) (runtime.Value, error)
			switch op {
			case ast.Not:
				hook = caps.PreNot
			case ast.Neg:
				hook = caps.PreNeg
			}
			if hook != nil {
				res, err := hook(c.V)
				if err != nil {
					return nil, evalerrors.CustomHookRejectedErr(err.Error())
				}
				return res, nil
			}
		}
	}
	return nil, evalerrors.TypeMismatchErr(unaryOpSymbol(op), v.Kind(), "")
}

// evalCustomUnary and evalCustomBinary apply a host-registered sigil
// operator directly; unlike the built-in operators these have no
// primitive fallback rule and no Custom-capability dispatch of their own,
// since the whole point of a sigil is that the host fully owns it.
func (e *Evaluator) evalCustomUnary(n *ast.CustomUnary, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	v, err := e.Eval(n.Expr, frame, depth)
	if err != nil {
		return nil, err
	}
	if e.Reg == nil {
		return nil, evalerrors.Stamp(evalerrors.UnknownFunc(string(n.Sigil)), n.Span())
	}
	fn, ok := e.Reg.UnaryOps[n.Sigil]
	if !ok {
		return nil, evalerrors.Stamp(evalerrors.UnknownFunc(string(n.Sigil)), n.Span())
	}
	res, gerr := fn(v)
	if gerr != nil {
		return nil, evalerrors.Stamp(evalerrors.CustomHookRejectedErr(gerr.Error()), n.Span())
	}
	return res, nil
}

func (e *Evaluator) evalCustomBinary(n *ast.CustomBinary, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	left, err := e.Eval(n.Left, frame, depth)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right, frame, depth)
	if err != nil {
		return nil, err
	}
	if e.Reg == nil {
		return nil, evalerrors.Stamp(evalerrors.UnknownFunc(string(n.Sigil)), n.Span())
	}
	fn, ok := e.Reg.BinaryOps[n.Sigil]
	if !ok {
		return nil, evalerrors.Stamp(evalerrors.UnknownFunc(string(n.Sigil)), n.Span())
	}
	res, gerr := fn(left, right)
	if gerr != nil {
		return nil, evalerrors.Stamp(evalerrors.CustomHookRejectedErr(gerr.Error()), n.Span())
	}
	return res, nil
}

func unaryOpSymbol(op ast.UnaryOp) string {
	if op == ast.Not {
		return "!"
	}
	return "-"
}

func opSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.Add:
		return "+"
	case ast.Sub:
		return "-"
	case ast.Mul:
		return "*"
	case ast.Div:
		return "/"
	case ast.Mod:
		return "%"
	case ast.Eq:
		return "=="
	case ast.Neq:
		return "!="
	case ast.Lt:
		return "<"
	case ast.Gt:
		return ">"
	case ast.Leq:
		return "<="
	case ast.Geq:
		return ">="
	case ast.And:
		return "&&"
	case ast.Or:
		return "||"
	default:
		return "?"
	}
}
