// Package evaluator implements the tree-walking evaluator: expression
// evaluation, pattern matching, clause/guard dispatch and operator
// resolution (primitive rule, then a host's custom-type capabilities,
// then TypeMismatch). It is the only package that sees both
// internal/interp/runtime and internal/interp/extensions.
package evaluator

import (
	"fmt"
	"os"
	"strings"

	"github.com/weave-lang/weave/internal/ast"
	"github.com/weave-lang/weave/internal/interp/builtins"
	evalerrors "github.com/weave-lang/weave/internal/interp/errors"
	"github.com/weave-lang/weave/internal/interp/extensions"
	"github.com/weave-lang/weave/internal/interp/runtime"
)

// Evaluator holds everything needed to run a parsed Program: the program
// itself (for resolving top-level function names fresh on every lookup),
// the host's extension registry, and the maximum call depth a single
// evaluation is allowed to reach before it is aborted.
type Evaluator struct {
	Program  *ast.Program
	Reg      *extensions.Registry
	MaxDepth int

	// Trace, when set, writes one line per clause match attempt to
	// os.Stderr. Off by default; pkg/weave.WithTrace turns it on.
	Trace bool
}

// New returns an Evaluator. maxDepth <= 0 disables the depth limit.
func New(program *ast.Program, reg *extensions.Registry, maxDepth int) *Evaluator {
	return &Evaluator{Program: program, Reg: reg, MaxDepth: maxDepth}
}

// Eval evaluates expr in frame. depth counts nested function/lambda
// applications, not expression nesting; it is threaded through every call
// boundary so Apply can enforce MaxDepth.
func (e *Evaluator) Eval(expr ast.Expr, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return runtime.Int{V: n.Value}, nil
	case *ast.StringLit:
		return runtime.String{V: n.Value}, nil
	case *ast.InterpString:
		return e.evalInterpString(n, frame, depth)
	case *ast.Var:
		return e.evalVar(n, frame)
	case *ast.TupleExpr:
		return e.evalTuple(n, frame, depth)
	case *ast.Unary:
		return e.evalUnary(n, frame, depth)
	case *ast.Binary:
		return e.evalBinary(n, frame, depth)
	case *ast.CustomUnary:
		return e.evalCustomUnary(n, frame, depth)
	case *ast.CustomBinary:
		return e.evalCustomBinary(n, frame, depth)
	case *ast.Call:
		return e.evalCall(n, frame, depth)
	case *ast.Lambda:
		return runtime.Lambda{Clause: ast.Clause{Param: n.Param, Body: n.Body}, Env: frame}, nil
	default:
		return nil, evalerrors.New(evalerrors.Arithmetic, "unhandled expression node %T", expr)
	}
}

func (e *Evaluator) evalTuple(t *ast.TupleExpr, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	elems := make([]runtime.Value, len(t.Elems))
	for i, el := range t.Elems {
		v, err := e.Eval(el, frame, depth)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return runtime.Tuple{Elems: elems}, nil
}

// evalVar resolves a name through, in order: the frame chain (locals,
// pattern bindings, reserved true/false), the program's top-level
// functions (always resolved fresh, never captured by a closure), the
// fixed list-combinator builtins, and finally any host-registered named
// builtin.
func (e *Evaluator) evalVar(v *ast.Var, frame *runtime.Frame) (runtime.Value, *evalerrors.EvalError) {
	if val, ok := frame.Lookup(v.Name); ok {
		return val, nil
	}
	if fn := e.Program.Function(v.Name); fn != nil {
		return runtime.Function{Name: fn.Name, Clauses: fn.Clauses}, nil
	}
	if _, ok := builtins.Table[v.Name]; ok {
		return runtime.Builtin{Name: v.Name}, nil
	}
	if e.Reg != nil {
		if _, ok := e.Reg.Builtins[v.Name]; ok {
			return runtime.Builtin{Name: v.Name}, nil
		}
	}
	return nil, evalerrors.Stamp(evalerrors.UnboundErr(v.Name), v.Span())
}

func (e *Evaluator) evalInterpString(n *ast.InterpString, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	var sb strings.Builder
	sb.WriteString(n.Literals[0])
	for i, expr := range n.Exprs {
		v, err := e.Eval(expr, frame, depth)
		if err != nil {
			return nil, err
		}
		s, ok := runtime.Display(v, e.customDisplay)
		if !ok {
			return nil, evalerrors.Stamp(evalerrors.NotPrintableErr(v.Kind()), expr.Span())
		}
		sb.WriteString(s)
		sb.WriteString(n.Literals[i+1])
	}
	return runtime.String{V: sb.String()}, nil
}

func (e *Evaluator) customDisplay(v any) (string, bool) {
	if e.Reg == nil || e.Reg.Caps == nil || e.Reg.Caps.Display == nil {
		return "", false
	}
	return e.Reg.Caps.Display(v), true
}

func (e *Evaluator) evalCall(c *ast.Call, frame *runtime.Frame, depth int) (runtime.Value, *evalerrors.EvalError) {
	callee, err := e.Eval(c.Callee, frame, depth)
	if err != nil {
		return nil, err
	}
	arg, err := e.Eval(c.Arg, frame, depth)
	if err != nil {
		return nil, err
	}
	v, err := e.Apply(callee, arg, depth, c.Span())
	if err != nil {
		return nil, evalerrors.Stamp(err, c.Span())
	}
	return v, nil
}

// Apply calls fn with arg, dispatching on fn's runtime kind. depth is the
// depth of the call about to be made (the caller's depth + 1 semantics are
// applied by applyFunction/applyLambda/applyBuiltin for the body they go
// on to evaluate); Apply itself checks depth against MaxDepth before doing
// any work.
func (e *Evaluator) Apply(fn runtime.Value, arg runtime.Value, depth int, span ast.Span) (runtime.Value, *evalerrors.EvalError) {
	if e.MaxDepth > 0 && depth > e.MaxDepth {
		return nil, evalerrors.Stamp(evalerrors.MaxCallDepthErr(e.MaxDepth), span)
	}
	switch f := fn.(type) {
	case runtime.Function:
		return e.applyFunction(f, arg, depth)
	case runtime.Lambda:
		return e.applyLambda(f, arg, depth)
	case runtime.Builtin:
		return e.applyBuiltin(f, arg, depth, span)
	default:
		return nil, evalerrors.TypeMismatchErr("call", fn.Kind(), "")
	}
}

func (e *Evaluator) applyFunction(f runtime.Function, arg runtime.Value, depth int) (runtime.Value, *evalerrors.EvalError) {
	for i, clause := range f.Clauses {
		frame := runtime.NewFrame()
		ok, err := e.matchClause(clause.Param, arg, frame, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			e.traceClause(f.Name, i, "pattern did not match")
			continue
		}
		if clause.Guard != nil {
			g, err := e.Eval(clause.Guard, frame, depth+1)
			if err != nil {
				return nil, err
			}
			gb, ok := g.(runtime.Bool)
			if !ok {
				return nil, evalerrors.Stamp(evalerrors.GuardNotBoolErr(g.Kind()), clause.Guard.Span())
			}
			if !gb.V {
				e.traceClause(f.Name, i, "guard rejected")
				continue
			}
		}
		e.traceClause(f.Name, i, "matched")
		return e.Eval(clause.Body, frame, depth+1)
	}
	return nil, evalerrors.NoMatchErr(f.Name)
}

func (e *Evaluator) traceClause(fname string, index int, outcome string) {
	if !e.Trace {
		return
	}
	fmt.Fprintf(os.Stderr, "trace: #%s clause %d: %s\n", fname, index, outcome)
}

func (e *Evaluator) applyLambda(l runtime.Lambda, arg runtime.Value, depth int) (runtime.Value, *evalerrors.EvalError) {
	frame := runtime.NewFrame()
	frame.SetParent(l.Env)
	ok, err := e.match(l.Clause.Param, arg, frame, l.Env)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, evalerrors.NoMatchErr("<lambda>")
	}
	return e.Eval(l.Clause.Body, frame, depth+1)
}

func (e *Evaluator) applyBuiltin(b runtime.Builtin, arg runtime.Value, depth int, span ast.Span) (runtime.Value, *evalerrors.EvalError) {
	if fn, ok := builtins.Table[b.Name]; ok {
		apply := func(f runtime.Value, a runtime.Value) (runtime.Value, *evalerrors.EvalError) {
			return e.Apply(f, a, depth+1, span)
		}
		return fn(arg, apply)
	}
	if e.Reg != nil {
		if hostFn, ok := e.Reg.Builtins[b.Name]; ok {
			v, err := hostFn(arg)
			if err != nil {
				return nil, evalerrors.CustomHookRejectedErr(err.Error())
			}
			return v, nil
		}
	}
	return nil, evalerrors.UnknownFunc(b.Name)
}
