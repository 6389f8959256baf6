package errors

import (
	"testing"

	"github.com/weave-lang/weave/internal/ast"
)

func span(startOffset, endOffset int) ast.Span {
	return ast.Span{
		Start: ast.Position{Line: 1, Column: startOffset, Offset: startOffset},
		End:   ast.Position{Line: 1, Column: endOffset, Offset: endOffset},
	}
}

func TestStampSetsSpanOnUnlocatedError(t *testing.T) {
	err := UnboundErr("x")
	if err.HasSpan {
		t.Fatal("freshly constructed error should have no span")
	}
	Stamp(err, span(3, 4))
	if !err.HasSpan {
		t.Fatal("Stamp should set HasSpan")
	}
	if err.Span.Start.Offset != 3 || err.Span.End.Offset != 4 {
		t.Errorf("Span = %+v, want offsets 3-4", err.Span)
	}
}

func TestStampFirstSpanWins(t *testing.T) {
	err := NoMatchErr("f")
	Stamp(err, span(10, 20))
	Stamp(err, span(0, 1))
	if err.Span.Start.Offset != 10 || err.Span.End.Offset != 20 {
		t.Errorf("second Stamp call overwrote the first: Span = %+v", err.Span)
	}
}

func TestStampIsNilSafe(t *testing.T) {
	var err *EvalError
	if got := Stamp(err, span(0, 1)); got != nil {
		t.Errorf("Stamp(nil, ...) = %v, want nil", got)
	}
}

func TestUnknownFunctionStartsUnlocated(t *testing.T) {
	// UnknownFunc builds the error without a location; a Span is added
	// only when the evaluator later calls Stamp on it.
	err := UnknownFunc("nope")
	if err.HasSpan {
		t.Error("UnknownFunction should start unlocated")
	}
	if err.Kind != UnknownFunction {
		t.Errorf("Kind = %v, want UnknownFunction", err.Kind)
	}
}

func TestKindStringCoversEveryConstant(t *testing.T) {
	kinds := []Kind{
		UnknownFunction, Unbound, TypeMismatch, Arithmetic, IndexOutOfRange,
		WrongArity, NotComparable, NotPrintable, NoMatch, DuplicateBinding,
		GuardNotBool, CustomHookRejected, MaxCallDepth,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if s == "Error" {
			t.Errorf("Kind %d has no String() case", k)
		}
		if seen[s] {
			t.Errorf("Kind %v shares its String() with another kind", k)
		}
		seen[s] = true
	}
}

func TestErrorMessageFormatting(t *testing.T) {
	unlocated := UnboundErr("x")
	if got := unlocated.Error(); got != `Unbound: cannot find value "x"` {
		t.Errorf("Error() = %q", got)
	}

	located := TypeMismatchErr("+", "Int", "String")
	Stamp(located, span(5, 8))
	want := `TypeMismatch: operator + not defined for Int and String (at byte 5-8)`
	if got := located.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestMaxCallDepthErr(t *testing.T) {
	err := MaxCallDepthErr(1000)
	if err.Kind != MaxCallDepth {
		t.Errorf("Kind = %v, want MaxCallDepth", err.Kind)
	}
}
