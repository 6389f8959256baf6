package extensions

import (
	"errors"
	"testing"

	"github.com/weave-lang/weave/internal/interp/runtime"
)

func TestNewRegistryStartsEmpty(t *testing.T) {
	r := NewRegistry()
	if len(r.Sigils()) != 0 {
		t.Errorf("Sigils() = %v, want empty", r.Sigils())
	}
	if r.Caps != nil {
		t.Error("Caps should start nil until a host sets Capabilities")
	}
}

func TestSigilsUnionsUnaryAndBinary(t *testing.T) {
	r := NewRegistry()
	r.BinaryOps['@'] = func(l, rr runtime.Value) (runtime.Value, error) { return l, nil }
	r.UnaryOps['^'] = func(v runtime.Value) (runtime.Value, error) { return v, nil }

	got := r.Sigils()
	if !got['@'] || !got['^'] {
		t.Errorf("Sigils() = %v, want both @ and ^", got)
	}
	if len(got) != 2 {
		t.Errorf("Sigils() = %v, want exactly 2 entries", got)
	}
}

func TestSigilSetMatchesGrammarsReservedRunes(t *testing.T) {
	want := []rune{'@', '^', '&', '$', '§', '?', '\\', '~'}
	got := SigilSet()
	if len(got) != len(want) {
		t.Fatalf("SigilSet() has %d entries, want %d", len(got), len(want))
	}
	for _, r := range want {
		if !got[r] {
			t.Errorf("SigilSet() missing %q", r)
		}
	}
}

func TestIsSigilRejectsOrdinaryOperators(t *testing.T) {
	for _, r := range []rune{'@', '~'} {
		if !IsSigil(r) {
			t.Errorf("IsSigil(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'+', '-', '*', 'a'} {
		if IsSigil(r) {
			t.Errorf("IsSigil(%q) = true, want false", r)
		}
	}
}

func TestSigilSetReturnsACopy(t *testing.T) {
	a := SigilSet()
	a['+'] = true
	b := SigilSet()
	if b['+'] {
		t.Error("mutating one SigilSet() result leaked into another")
	}
}

func TestCapabilitiesDualSidedDispatchShape(t *testing.T) {
	// Exercises the pre_*/post_* pairing with a fake custom type, confirming
	// a host can wire both sides of a binary operator independently.
	type point struct{ x int }

	caps := &Capabilities{
		PreAdd: func(self any, other runtime.Value) (runtime.Value, error) {
			p := self.(point)
			n, ok := other.(runtime.Int)
			if !ok {
				return nil, errors.New("not an int")
			}
			return runtime.Custom{V: point{x: p.x + int(n.V)}}, nil
		},
		PostAdd: func(self any, other runtime.Value) (runtime.Value, error) {
			return nil, errors.New("post_add should not be reached when the custom value is the left operand")
		},
	}

	v, err := caps.PreAdd(point{x: 1}, runtime.Int{V: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := v.(runtime.Custom)
	if !ok || c.V.(point).x != 3 {
		t.Errorf("PreAdd result = %v, want point{3}", v)
	}
}

func TestCapabilitiesUnsetFieldsAreNil(t *testing.T) {
	caps := &Capabilities{}
	if caps.PreEq != nil || caps.PostEq != nil || caps.Display != nil {
		t.Error("a zero-value Capabilities should leave every hook nil so dispatch falls through")
	}
}
