package runtime

import (
	evalerrors "github.com/weave-lang/weave/internal/interp/errors"
)

// Frame is a single-assignment set of name -> Value bindings with an
// optional parent, forming the lookup chain described by the language's
// environment model. A Frame is built fresh by the pattern matcher for
// each clause attempt. A top-level function's frame has no Parent (other
// top-level functions resolve through the Program, not the frame chain);
// a Lambda's frame gets the Lambda's captured frame as Parent.
type Frame struct {
	bindings map[string]Value
	Parent   *Frame
}

// NewFrame returns an empty frame with no parent.
func NewFrame() *Frame {
	return &Frame{bindings: make(map[string]Value)}
}

// Define binds name to v in this frame only. It is an error to bind the
// same name twice in the same frame (linearity / non-duplicate-binding
// invariant): callers matching a single pattern must route every bind
// through the same fresh Frame so this check catches duplicate pattern
// variables.
func Define(f *Frame, name string, v Value) *evalerrors.EvalError {
	if _, exists := f.bindings[name]; exists {
		return evalerrors.DuplicateBindingErr(name)
	}
	f.bindings[name] = v
	return nil
}

// SetParent attaches parent as f's lookup parent. Lambda application
// calls it on the fresh frame before matching the clause's pattern; the
// match's own bindings always shadow the parent chain.
func (f *Frame) SetParent(parent *Frame) { f.Parent = parent }

// reserved holds the two names resolved specially rather than through any
// frame's bindings map, per the language's "reserved booleans" design:
// true/false are ordinary identifiers lexically, resolved by lookup.
var reserved = map[string]Value{
	"true":  Bool{V: true},
	"false": Bool{V: false},
}

// Lookup resolves name by checking the reserved words first, then this
// frame's own bindings, then recursing into Parent. It returns ok=false
// if name is bound nowhere in the chain.
func (f *Frame) Lookup(name string) (Value, bool) {
	if v, ok := reserved[name]; ok {
		return v, true
	}
	for fr := f; fr != nil; fr = fr.Parent {
		if v, ok := fr.bindings[name]; ok {
			return v, true
		}
	}
	return nil, false
}
