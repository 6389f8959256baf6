package weave

import (
	"github.com/weave-lang/weave/internal/ast"
	"github.com/weave-lang/weave/internal/interp/evaluator"
	"github.com/weave-lang/weave/internal/interp/runtime"
	"github.com/weave-lang/weave/internal/parser"
)

// Parse compiles source into a Script bound to this Language's extension
// registry. A failed parse returns a nil Script and a non-nil
// *CompileError describing every failure found; Parse never returns a
// partially-valid Script.
func (l *Language) Parse(source string) (*Script, *CompileError) {
	p := parser.New(source, l.reg.Sigils())
	program := p.ParseProgram()
	if cerr := compileErrorFromParser(p.Errors()); cerr != nil {
		return nil, cerr
	}
	return &Script{program: program, source: source, lang: l}, nil
}

// Script is one successfully parsed weave source file, bound to the
// Language it was parsed with.
type Script struct {
	program *ast.Program
	source  string
	lang    *Language
}

// List returns the names of every top-level function the script defines,
// in source order. A name defined by several #name ... blocks appears
// once, at its first block; the parser merges the blocks' clauses in
// source order.
func (s *Script) List() []string {
	names := make([]string, len(s.program.Functions))
	for i, f := range s.program.Functions {
		names[i] = f.Name
	}
	return names
}

// Function looks up name among the script's top-level functions and
// returns a Handle for calling it. An unknown name is the one runtime
// error the façade raises before any expression is ever evaluated, so it
// is reported unlocated.
func (s *Script) Function(name string) (*Handle, *RuntimeError) {
	fn := s.program.Function(name)
	if fn == nil {
		return nil, &RuntimeError{Kind: "UnknownFunction", Message: "no function named " + name}
	}
	return &Handle{script: s, fn: fn}, nil
}

// Handle is a specific function bound to an accumulating argument list,
// ready to Call once enough arguments have been supplied via Arg.
type Handle struct {
	script *Script
	fn     *ast.Function
	args   []Value
}

// Arg returns a new Handle with v appended to the argument list. Handle
// is immutable; chain calls as h.Arg(a).Arg(b).Call().
func (h *Handle) Arg(v Value) *Handle {
	next := &Handle{script: h.script, fn: h.fn, args: make([]Value, len(h.args)+1)}
	copy(next.args, h.args)
	next.args[len(h.args)] = v
	return next
}

// Call evaluates the bound function against the accumulated arguments.
// Zero arguments call with an empty tuple, as `f()` does in source; one
// argument is passed through directly, as `f(a)` does; two or more are
// combined into a tuple, as `f(a, b, ...)` desugars to `f((a, b, ...))`.
func (h *Handle) Call() (Value, *RuntimeError) {
	var arg runtime.Value
	switch len(h.args) {
	case 0:
		arg = runtime.Tuple{}
	case 1:
		arg = toRuntime(h.args[0])
	default:
		arg = toRuntime(Tuple(h.args...))
	}

	ev := evaluator.New(h.script.program, h.script.lang.reg, h.script.lang.maxCallDepth)
	ev.Trace = h.script.lang.trace
	fnVal := runtime.Function{Name: h.fn.Name, Clauses: h.fn.Clauses}
	result, err := ev.Apply(fnVal, arg, 1, h.fn.Span())
	if err != nil {
		return Value{}, runtimeErrorFrom(err, h.script.source)
	}
	if kind, bad := hostUnsafeKind(result); bad {
		return Value{}, &RuntimeError{Kind: "NotHostSafe", Message: kind + " cannot cross the host boundary"}
	}
	return fromRuntime(result), nil
}
