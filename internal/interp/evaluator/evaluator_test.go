package evaluator_test

import (
	"strings"
	"testing"

	"github.com/weave-lang/weave/internal/interp/evaluator"
	"github.com/weave-lang/weave/internal/interp/extensions"
	"github.com/weave-lang/weave/internal/interp/runtime"
	"github.com/weave-lang/weave/internal/parser"
)

func evalMain(t *testing.T, source string, arg runtime.Value) (runtime.Value, error) {
	t.Helper()
	reg := extensions.NewRegistry()
	p := parser.New(source, reg.Sigils())
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	fn := program.Function("main")
	if fn == nil {
		t.Fatal("no #main function")
	}
	ev := evaluator.New(program, reg, 10000)
	fnVal := runtime.Function{Name: fn.Name, Clauses: fn.Clauses}
	v, err := ev.Apply(fnVal, arg, 1, fn.Span())
	if err != nil {
		return nil, err
	}
	return v, nil
}

func TestArithmeticAndClauseDispatch(t *testing.T) {
	source := `
#fact
  0 -> 1;
#fact
  n -> n * fact(n - 1);
#main
  n -> fact(n);
`
	v, err := evalMain(t, source, runtime.Int{V: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.(runtime.Int)
	if !ok || i.V != 120 {
		t.Errorf("fact(5) = %v, want 120", v)
	}
}

func TestGuardConjunction(t *testing.T) {
	source := `
#classify
  n -> "fizzbuzz" | n % 3 == 0 | n % 5 == 0;
#classify
  n -> "other";
#main
  n -> classify(n);
`
	v, err := evalMain(t, source, runtime.Int{V: 15})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(runtime.String); !ok || s.V != "fizzbuzz" {
		t.Errorf("classify(15) = %v, want fizzbuzz", v)
	}

	v, err = evalMain(t, source, runtime.Int{V: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(runtime.String); !ok || s.V != "other" {
		t.Errorf("classify(7) = %v, want other", v)
	}
}

func TestClosureCapturesConstructionSite(t *testing.T) {
	// adder(x) returns a lambda that captures x; calling the lambda later
	// must still see that x, not whatever is bound at the call site.
	source := `
#adder
  x -> |y => x + y|;
#main
  n -> adder(n)(10);
`
	v, err := evalMain(t, source, runtime.Int{V: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(runtime.Int); !ok || i.V != 13 {
		t.Errorf("adder(3)(10) = %v, want 13", v)
	}
}

func TestOneTupleTransparency(t *testing.T) {
	// A 1-tuple pattern (x) unifies with a bare Int argument.
	source := `
#identity
  (x) -> x;
#main
  n -> identity(n);
`
	v, err := evalMain(t, source, runtime.Int{V: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(runtime.Int); !ok || i.V != 7 {
		t.Errorf("identity(7) = %v, want 7", v)
	}
}

func TestDuplicateBindingIsFatal(t *testing.T) {
	source := `
#bad
  (x, x) -> x;
#main
  n -> bad(n);
`
	_, err := evalMain(t, source, runtime.Tuple{Elems: []runtime.Value{runtime.Int{V: 1}, runtime.Int{V: 1}}})
	if err == nil {
		t.Fatal("expected a DuplicateBinding error")
	}
}

func TestPatternSiblingBindingNotVisibleToLiteralSubPattern(t *testing.T) {
	// The second tuple slot's literal sub-pattern `x + 1` must resolve `x`
	// against the caller's environment, not the first slot's own binding:
	// a top-level clause has no enclosing scope, so this is Unbound.
	source := `
#bad
  (x, x + 1) -> "matched";
#main
  n -> bad(n);
`
	_, err := evalMain(t, source, runtime.Tuple{Elems: []runtime.Value{runtime.Int{V: 5}, runtime.Int{V: 6}}})
	if err == nil {
		t.Fatal("expected an Unbound error, got a match")
	}
}

func TestStringPlusAnyCoercesRightOperand(t *testing.T) {
	source := `
#main
  n -> "x" + n;
`
	v, err := evalMain(t, source, runtime.Int{V: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(runtime.String); !ok || s.V != "x5" {
		t.Errorf(`"x" + 5 = %v, want "x5"`, v)
	}
}

func TestStringTimesIntRepeats(t *testing.T) {
	source := `
#main
  n -> "ab" * n;
`
	v, err := evalMain(t, source, runtime.Int{V: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(runtime.String); !ok || s.V != "ababab" {
		t.Errorf(`"ab" * 3 = %v, want "ababab"`, v)
	}
}

func TestStringTimesNegativeIntIsTypeMismatch(t *testing.T) {
	source := `
#main
  n -> "ab" * n;
`
	_, err := evalMain(t, source, runtime.Int{V: -1})
	if err == nil {
		t.Fatal("expected a TypeMismatch error for a negative repeat count")
	}
}

func TestNoMatchingClause(t *testing.T) {
	source := `
#only_zero
  0 -> 1;
#main
  n -> only_zero(n);
`
	_, err := evalMain(t, source, runtime.Int{V: 1})
	if err == nil {
		t.Fatal("expected a NoMatch error")
	}
}

func TestListCombinators(t *testing.T) {
	source := `
#double
  x -> x * 2;
#main
  l -> fold((map((l, double)), 0, |a, b => a + b|));
`
	v, err := evalMain(t, source, runtime.List{Elems: []runtime.Value{
		runtime.Int{V: 1}, runtime.Int{V: 2}, runtime.Int{V: 3},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(runtime.Int); !ok || i.V != 12 {
		t.Errorf("fold(map([1,2,3], double), 0, +) = %v, want 12", v)
	}
}

func TestFStringInterpolation(t *testing.T) {
	source := `
#greet
  name -> f"Hello, {name}!"f;
#main
  n -> greet(n);
`
	v, err := evalMain(t, source, runtime.String{V: "Alfie"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(runtime.String); !ok || s.V != "Hello, Alfie!" {
		t.Errorf("greet(Alfie) = %v, want \"Hello, Alfie!\"", v)
	}
}

func TestTraceDoesNotAffectResult(t *testing.T) {
	source := `
#classify
  n -> "fizz" | n % 3 == 0;
#classify
  n -> "other";
`
	reg := extensions.NewRegistry()
	p := parser.New(source, reg.Sigils())
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	fn := program.Function("classify")
	ev := evaluator.New(program, reg, 10000)
	ev.Trace = true
	fnVal := runtime.Function{Name: fn.Name, Clauses: fn.Clauses}
	v, err := ev.Apply(fnVal, runtime.Int{V: 9}, 1, fn.Span())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, ok := v.(runtime.String); !ok || s.V != "fizz" {
		t.Errorf("classify(9) with trace on = %v, want fizz", v)
	}
}

func TestTypeMismatchReportsBothOperands(t *testing.T) {
	source := `
#bad
  p -> p + "x";
#main
  n -> bad(n);
`
	_, err := evalMain(t, source, runtime.Int{V: 1})
	if err == nil {
		t.Fatal("expected a TypeMismatch error")
	}
	if msg := err.Error(); !strings.Contains(msg, "Int") || !strings.Contains(msg, "String") {
		t.Errorf("TypeMismatch message %q does not name both operand kinds", msg)
	}
}
