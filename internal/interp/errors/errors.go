// Package errors defines the evaluator's error variant: a typed kind plus
// an optional span that is stamped in by the innermost evaluator frame
// that observed the failure and never overwritten afterward (first-span
// wins), mirroring the located/unlocated error split described by the
// host-facing contract in pkg/weave.
package errors

import (
	"fmt"

	"github.com/weave-lang/weave/internal/ast"
)

// Kind identifies the category of an evaluation failure.
type Kind int

const (
	UnknownFunction Kind = iota
	Unbound
	TypeMismatch
	Arithmetic
	IndexOutOfRange
	WrongArity
	NotComparable
	NotPrintable
	NoMatch
	DuplicateBinding
	GuardNotBool
	CustomHookRejected

	// MaxCallDepth is not part of the specification's error catalog; it is
	// a deliberate, documented addition (see DESIGN.md) so an embedding
	// host's WithMaxCallDepth limit surfaces as an ordinary EvalError
	// instead of letting unbounded recursion crash the process with a
	// Go stack overflow, which cannot be recovered from.
	MaxCallDepth
)

func (k Kind) String() string {
	switch k {
	case UnknownFunction:
		return "UnknownFunction"
	case Unbound:
		return "Unbound"
	case TypeMismatch:
		return "TypeMismatch"
	case Arithmetic:
		return "Arithmetic"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	case WrongArity:
		return "WrongArity"
	case NotComparable:
		return "NotComparable"
	case NotPrintable:
		return "NotPrintable"
	case NoMatch:
		return "NoMatch"
	case DuplicateBinding:
		return "DuplicateBinding"
	case GuardNotBool:
		return "GuardNotBool"
	case CustomHookRejected:
		return "CustomHookRejected"
	case MaxCallDepth:
		return "MaxCallDepth"
	default:
		return "Error"
	}
}

// EvalError is the single error type every evaluator operation returns.
// UnknownFunc, like every constructor here, returns an unlocated error;
// the evaluator stamps it with the span of the expression that named the
// missing function. The façade reports its own by-name lookup failure as
// a separate, unlocated RuntimeError.
type EvalError struct {
	Kind    Kind
	Message string
	Span    ast.Span
	HasSpan bool
}

func (e *EvalError) Error() string {
	if e.HasSpan {
		return fmt.Sprintf("%s: %s (at byte %d-%d)", e.Kind, e.Message, e.Span.Start.Offset, e.Span.End.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an unlocated error of the given kind.
func New(kind Kind, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Stamp attaches span to err if err has no span yet (first-span-wins). It
// is a no-op on nil and on errors that already carry a span, and always
// returns err so callers can write `return nil, Stamp(err, node.Span())`.
func Stamp(err *EvalError, span ast.Span) *EvalError {
	if err == nil || err.HasSpan {
		return err
	}
	err.Span = span
	err.HasSpan = true
	return err
}

func UnboundErr(name string) *EvalError {
	return New(Unbound, "cannot find value %q", name)
}

func UnknownFunc(name string) *EvalError {
	return New(UnknownFunction, "no function named %q", name)
}

func TypeMismatchErr(op string, lhs, rhs string) *EvalError {
	return New(TypeMismatch, "operator %s not defined for %s and %s", op, lhs, rhs)
}

func DuplicateBindingErr(name string) *EvalError {
	return New(DuplicateBinding, "variable %q bound more than once in the same pattern", name)
}

func NoMatchErr(function string) *EvalError {
	return New(NoMatch, "no clause of %q matched the argument", function)
}

func GuardNotBoolErr(got string) *EvalError {
	return New(GuardNotBool, "guard expression evaluated to %s, expected Bool", got)
}

func NotPrintableErr(kind string) *EvalError {
	return New(NotPrintable, "%s value cannot be converted to a string", kind)
}

func NotComparableErr(kind string) *EvalError {
	return New(NotComparable, "%s values cannot be compared", kind)
}

func IndexOutOfRangeErr(i, length int) *EvalError {
	return New(IndexOutOfRange, "index %d out of range for list of length %d", i, length)
}

func WrongArityErr(builtin string, got int) *EvalError {
	return New(WrongArity, "%s received %d argument(s)", builtin, got)
}

func ArithmeticErr(format string, args ...any) *EvalError {
	return New(Arithmetic, format, args...)
}

func CustomHookRejectedErr(msg string) *EvalError {
	return New(CustomHookRejected, "%s", msg)
}

func MaxCallDepthErr(limit int) *EvalError {
	return New(MaxCallDepth, "call depth exceeded the configured limit of %d", limit)
}
