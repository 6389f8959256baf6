// Package extensions holds the host extension registry: custom sigil
// operators, custom named builtins, and the custom-type capability
// surface, all supplied by the embedding host and consulted only by
// internal/interp/evaluator.
package extensions

import "github.com/weave-lang/weave/internal/interp/runtime"

// BinaryFunc implements a host-registered binary sigil operator.
type BinaryFunc func(left, right runtime.Value) (runtime.Value, error)

// UnaryFunc implements a host-registered unary sigil operator.
type UnaryFunc func(v runtime.Value) (runtime.Value, error)

// BuiltinFunc implements a host-registered named builtin function.
type BuiltinFunc func(arg runtime.Value) (runtime.Value, error)

// Registry holds every host extension registered on a Language. Entries
// are first-writer-wins: a second registration under the same key is
// silently ignored by the caller (see pkg/weave) before it ever reaches
// here.
type Registry struct {
	BinaryOps map[rune]BinaryFunc
	UnaryOps  map[rune]UnaryFunc
	Builtins  map[string]BuiltinFunc
	Caps      *Capabilities
}

// legalSigils is the fixed set of runes the grammar reserves for
// host-defined operators (§6.1). A Language may register any subset.
var legalSigils = map[rune]bool{
	'@': true, '^': true, '&': true, '$': true,
	'§': true, '?': true, '\\': true, '~': true,
}

// SigilSet returns a copy of the full set of legal custom-operator sigils.
func SigilSet() map[rune]bool {
	out := make(map[rune]bool, len(legalSigils))
	for r := range legalSigils {
		out[r] = true
	}
	return out
}

// IsSigil reports whether r is one of the grammar's reserved
// custom-operator sigils.
func IsSigil(r rune) bool { return legalSigils[r] }

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		BinaryOps: make(map[rune]BinaryFunc),
		UnaryOps:  make(map[rune]UnaryFunc),
		Builtins:  make(map[string]BuiltinFunc),
	}
}

// Sigils returns the set of all registered sigils (both unary and
// binary), for the parser's semantic validation pass.
func (r *Registry) Sigils() map[rune]bool {
	s := make(map[rune]bool, len(r.BinaryOps)+len(r.UnaryOps))
	for c := range r.BinaryOps {
		s[c] = true
	}
	for c := range r.UnaryOps {
		s[c] = true
	}
	return s
}

// Capabilities is the dual-sided dispatch table a host provides for its
// Custom value type. Every field is optional; a nil field means that
// operation is not defined from that side, so dispatch falls through to
// the other side, and finally to TypeMismatch if neither is defined.
// Field names mirror the pre_*/post_* callback protocol: pre_<op> is
// invoked when the Custom value is the left operand (c ⊕ p), post_<op>
// when it is the right operand (p ⊕ c).
type Capabilities struct {
	PreAdd, PostAdd   func(self any, other runtime.Value) (runtime.Value, error)
	PreSub, PostSub   func(self any, other runtime.Value) (runtime.Value, error)
	PreMul, PostMul   func(self any, other runtime.Value) (runtime.Value, error)
	PreDiv, PostDiv   func(self any, other runtime.Value) (runtime.Value, error)
	PreMod, PostMod   func(self any, other runtime.Value) (runtime.Value, error)
	PreEq, PostEq     func(self any, other runtime.Value) (bool, error)
	PreNeq, PostNeq   func(self any, other runtime.Value) (bool, error)
	PreLt, PostLt     func(self any, other runtime.Value) (bool, error)
	PreGt, PostGt     func(self any, other runtime.Value) (bool, error)
	PreLeq, PostLeq   func(self any, other runtime.Value) (bool, error)
	PreGeq, PostGeq   func(self any, other runtime.Value) (bool, error)
	PreAnd, PostAnd   func(self any, other runtime.Value) (bool, error)
	PreOr, PostOr     func(self any, other runtime.Value) (bool, error)
	PreNot            func(self any) (runtime.Value, error)
	PreNeg            func(self any) (runtime.Value, error)
	Display           func(self any) string
}
