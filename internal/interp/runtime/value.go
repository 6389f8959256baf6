// Package runtime holds the evaluator's internal value representation and
// environment (frame) chain. It deliberately carries the three variants
// the host-facing pkg/weave.Value never exposes, Function, Lambda and
// Builtin, since only the evaluator needs to manipulate them.
package runtime

import (
	"fmt"
	"strings"

	"github.com/weave-lang/weave/internal/ast"
)

// Value is implemented by every runtime value variant.
type Value interface {
	// Kind returns a short, stable, human-readable type name used in
	// error messages (e.g. "Int", "Custom").
	Kind() string
	valueNode()
}

// Int is a 32-bit signed integer value.
type Int struct{ V int32 }

func (Int) Kind() string { return "Int" }
func (Int) valueNode()   {}

// Bool is a boolean value. Unlike most of the language, Bool has no
// surface literal form: true/false resolve through frame lookup (see
// Frame.Lookup), and this is the value those names produce.
type Bool struct{ V bool }

func (Bool) Kind() string { return "Bool" }
func (Bool) valueNode()   {}

// String is a UTF-8 string value.
type String struct{ V string }

func (String) Kind() string { return "String" }
func (String) valueNode()   {}

// Tuple is an ordered, fixed-arity product of values. A 1-tuple is
// pattern- and equality-transparent with its sole element at every
// nesting level (see Unwrap1).
type Tuple struct{ Elems []Value }

func (Tuple) Kind() string { return "Tuple" }
func (Tuple) valueNode()   {}

// List is an ordered, homogeneous-or-not sequence of values.
type List struct{ Elems []Value }

func (List) Kind() string { return "List" }
func (List) valueNode()   {}

// Function is a reference to one of the program's top-level functions,
// produced when a Var resolves to a function name. Functions are always
// looked up fresh from the Program by name; they are never captured by
// closures (see the evaluator's Var resolution).
type Function struct {
	Name    string
	Clauses []ast.Clause
}

func (Function) Kind() string { return "Function" }
func (Function) valueNode()   {}

// Lambda is a single-clause closure: a clause paired with the frame
// present at the lambda expression's construction site.
type Lambda struct {
	Clause ast.Clause
	Env    *Frame
}

func (Lambda) Kind() string { return "Lambda" }
func (Lambda) valueNode()   {}

// Builtin is one of the fixed list combinators (list, get, len, map,
// filter, any, all, fold) or a host-registered named builtin.
type Builtin struct {
	Name string
}

func (Builtin) Kind() string { return "Builtin" }
func (Builtin) valueNode()   {}

// Custom wraps a host-provided value, reachable by the evaluator only
// through the capability callbacks in internal/interp/extensions.
type Custom struct {
	V any
}

func (Custom) Kind() string { return "Custom" }
func (Custom) valueNode()   {}

// Unwrap1 recursively unwraps 1-element tuples: Tuple([v]) unwraps to
// Unwrap1(v), at every nesting level, per the language's 1-tuple
// transparency rule. Any other value (including multi-element tuples) is
// returned unchanged.
func Unwrap1(v Value) Value {
	for {
		t, ok := v.(Tuple)
		if !ok || len(t.Elems) != 1 {
			return v
		}
		v = t.Elems[0]
	}
}

// Display renders v as the language's print form. Function, Lambda and
// Builtin have no print form: Display returns ok=false for them (also when
// nested in a Tuple or List), and callers report that as NotPrintable.
// customDisplay renders a Custom value's wrapped
// host payload; it comes from the active Language's Capabilities.Display
// callback and may be nil if the host never registered one, in which case
// any Custom value is treated as not printable.
func Display(v Value, customDisplay func(any) (string, bool)) (string, bool) {
	switch vv := v.(type) {
	case Int:
		return fmt.Sprintf("%d", vv.V), true
	case Bool:
		if vv.V {
			return "true", true
		}
		return "false", true
	case String:
		return vv.V, true
	case Tuple:
		return displayTuple(vv, customDisplay)
	case List:
		return displayList(vv, customDisplay)
	case Custom:
		if customDisplay != nil {
			return customDisplay(vv.V)
		}
		return "", false
	default:
		return "", false
	}
}

func displayTuple(t Tuple, customDisplay func(any) (string, bool)) (string, bool) {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		s, ok := Display(e, customDisplay)
		if !ok {
			return "", false
		}
		parts[i] = s
	}
	return "(" + strings.Join(parts, ", ") + ")", true
}

func displayList(l List, customDisplay func(any) (string, bool)) (string, bool) {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		s, ok := Display(e, customDisplay)
		if !ok {
			return "", false
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", true
}
