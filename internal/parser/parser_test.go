package parser

import (
	"testing"

	"github.com/weave-lang/weave/internal/ast"
)

func parse(t *testing.T, source string, sigils map[rune]bool) (*ast.Program, []*Error) {
	t.Helper()
	p := New(source, sigils)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

func TestParseSimpleFunction(t *testing.T) {
	prog, errs := parse(t, `#id x -> x;`, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if prog.Function("id") == nil {
		t.Fatal("expected function #id")
	}
}

func TestParseMultiClause(t *testing.T) {
	source := `
#fact
  0 -> 1;
#fact
  n -> n * fact(n - 1);
`
	_, errs := parse(t, source, nil)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
}

func TestParseImplicitWildcardClause(t *testing.T) {
	// A clause with no pattern/'->' prefix is an implicit wildcard.
	source := `#always 42;`
	p := New(source, nil)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	fn := prog.Function("always")
	if fn == nil || len(fn.Clauses) != 1 {
		t.Fatal("expected one clause")
	}
	if fn.Clauses[0].Param != nil {
		t.Error("clause with no pattern prefix should have a nil Param")
	}
}

func TestUnregisteredSigilIsUserReject(t *testing.T) {
	source := `#combine a @ b -> a;`
	_, errs := parse(t, source, nil)
	if len(errs) == 0 {
		t.Fatal("expected a UserReject error for an unregistered sigil")
	}
	if errs[0].Sub != UserReject {
		t.Errorf("Sub = %v, want UserReject", errs[0].Sub)
	}
}

func TestRegisteredSigilParsesCleanly(t *testing.T) {
	source := `#combine a @ b -> a;`
	_, errs := parse(t, source, map[rune]bool{'@': true})
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors with sigil registered: %v", errs)
	}
}

func TestUnexpectedEOFReported(t *testing.T) {
	source := `#broken x ->`
	_, errs := parse(t, source, nil)
	if len(errs) == 0 {
		t.Fatal("expected a parse error for truncated clause body")
	}
}

func TestMultiArgCallDesugarsToTuple(t *testing.T) {
	source := `#sum3 add3((1, 2, 3));`
	p := New(source, nil)
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	_ = prog
}

func TestFStringWithHole(t *testing.T) {
	source := `#greet name -> f"Hello, {name}!"f;`
	p := New(source, nil)
	p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
}
