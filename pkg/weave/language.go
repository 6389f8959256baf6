package weave

import (
	"fmt"

	"github.com/weave-lang/weave/internal/interp/builtins"
	"github.com/weave-lang/weave/internal/interp/extensions"
	"github.com/weave-lang/weave/internal/interp/runtime"
)

// Sigils is the full set of runes the grammar reserves for host-defined
// operators. A Language may register any subset of them.
var Sigils = extensions.SigilSet()

// Capabilities is the host-facing dual-sided dispatch table for a
// Language's Custom value type: pre_<op> fires when the Custom value is
// the left operand, post_<op> when it is the right operand. Every field
// is optional. See internal/interp/extensions.Capabilities, which this
// mirrors one-for-one in host-facing Value terms.
type Capabilities struct {
	PreAdd, PostAdd func(self any, other Value) (Value, error)
	PreSub, PostSub func(self any, other Value) (Value, error)
	PreMul, PostMul func(self any, other Value) (Value, error)
	PreDiv, PostDiv func(self any, other Value) (Value, error)
	PreMod, PostMod func(self any, other Value) (Value, error)
	PreEq, PostEq   func(self any, other Value) (bool, error)
	PreNeq, PostNeq func(self any, other Value) (bool, error)
	PreLt, PostLt   func(self any, other Value) (bool, error)
	PreGt, PostGt   func(self any, other Value) (bool, error)
	PreLeq, PostLeq func(self any, other Value) (bool, error)
	PreGeq, PostGeq func(self any, other Value) (bool, error)
	PreAnd, PostAnd func(self any, other Value) (bool, error)
	PreOr, PostOr   func(self any, other Value) (bool, error)
	PreNot          func(self any) (Value, error)
	PreNeg          func(self any) (Value, error)
	Display         func(self any) string
}

// Language holds one embedding configuration: the host's registered
// sigils, named builtins, Custom-type capabilities, and evaluation
// limits. A single Language may Parse many independent Scripts.
type Language struct {
	reg         *extensions.Registry
	maxCallDepth int
	trace       bool
}

// Option configures a Language at construction time.
type Option func(*Language)

// WithTrace enables the evaluator's execution trace (reserved for
// debugging CLI output; the library itself never writes to stdout).
func WithTrace(on bool) Option {
	return func(l *Language) { l.trace = on }
}

// WithMaxCallDepth bounds how deeply function/lambda application may
// nest before evaluation aborts with a MaxCallDepth error, protecting the
// host process from unbounded recursion in untrusted scripts. A limit
// <= 0 disables the check.
func WithMaxCallDepth(n int) Option {
	return func(l *Language) { l.maxCallDepth = n }
}

// New returns a Language with no sigils, builtins or capabilities
// registered and a default call-depth limit of 10000.
func New(opts ...Option) *Language {
	l := &Language{reg: extensions.NewRegistry(), maxCallDepth: 10000}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Trace reports whether execution tracing is enabled.
func (l *Language) Trace() bool { return l.trace }

// AddBinOp registers fn as sigil's binary-operator implementation. It is
// first-writer-wins: registering the same sigil twice (as either a binary
// or unary operator) silently keeps the first registration and reports no
// error. Only an invalid sigil character is rejected.
func (l *Language) AddBinOp(sigil rune, fn func(left, right Value) (Value, error)) error {
	if !extensions.IsSigil(sigil) {
		return fmt.Errorf("weave: %q is not one of the reserved custom-operator sigils", sigil)
	}
	if _, exists := l.reg.BinaryOps[sigil]; exists {
		return nil
	}
	if _, exists := l.reg.UnaryOps[sigil]; exists {
		return nil
	}
	l.reg.BinaryOps[sigil] = func(left, right runtime.Value) (runtime.Value, error) {
		v, err := fn(fromRuntime(left), fromRuntime(right))
		if err != nil {
			return nil, err
		}
		return toRuntime(v), nil
	}
	return nil
}

// AddUnaryOp registers fn as sigil's prefix-operator implementation. Like
// AddBinOp, it is first-writer-wins across both operator kinds and a
// repeat registration is a silent no-op.
func (l *Language) AddUnaryOp(sigil rune, fn func(v Value) (Value, error)) error {
	if !extensions.IsSigil(sigil) {
		return fmt.Errorf("weave: %q is not one of the reserved custom-operator sigils", sigil)
	}
	if _, exists := l.reg.BinaryOps[sigil]; exists {
		return nil
	}
	if _, exists := l.reg.UnaryOps[sigil]; exists {
		return nil
	}
	l.reg.UnaryOps[sigil] = func(v runtime.Value) (runtime.Value, error) {
		res, err := fn(fromRuntime(v))
		if err != nil {
			return nil, err
		}
		return toRuntime(res), nil
	}
	return nil
}

// AddBuiltin registers fn as a named, single-argument host builtin,
// callable from weave source exactly like list/get/len/map/filter/any/
// all/fold. A name that collides with one of those fixed combinators is
// rejected, since they always take priority and can never be shadowed; a
// name already registered on this Language by an earlier AddBuiltin call
// is first-writer-wins and silently keeps the earlier registration.
func (l *Language) AddBuiltin(name string, fn func(arg Value) (Value, error)) error {
	if _, exists := builtins.Table[name]; exists {
		return fmt.Errorf("weave: %q is a reserved built-in combinator name", name)
	}
	if _, exists := l.reg.Builtins[name]; exists {
		return nil
	}
	l.reg.Builtins[name] = func(arg runtime.Value) (runtime.Value, error) {
		v, err := fn(fromRuntime(arg))
		if err != nil {
			return nil, err
		}
		return toRuntime(v), nil
	}
	return nil
}

// SetCapabilities installs caps as this Language's dispatch table for its
// Custom value type, replacing whatever was set before.
func (l *Language) SetCapabilities(caps Capabilities) {
	l.reg.Caps = toExtensionCaps(caps)
}
