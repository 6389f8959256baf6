// Package ast defines the syntax tree produced by internal/parser and
// consumed by internal/interp/evaluator.
package ast

// Position is a single point in source text. Column is a 0-based byte
// offset from the start of the line, matching the host-facing location
// convention; Offset is a 0-based byte offset from the start of the file.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span is a byte-range into the source text a node was parsed from. Errors
// attach the Span of the innermost expression in which they occurred; as
// the error propagates outward only the first (innermost) Span is kept.
type Span struct {
	Start Position
	End   Position
}

// Join returns the smallest span covering both a and b.
func Join(a, b Span) Span {
	s := a
	if b.Start.Offset < s.Start.Offset {
		s.Start = b.Start
	}
	if b.End.Offset > s.End.Offset {
		s.End = b.End
	}
	return s
}

// Node is implemented by every expression node.
type Node interface {
	Span() Span
}

// Expr is any evaluable expression node.
//
// Patterns are not a distinct node kind: the grammar defines `pattern :=
// expr`, and the pattern matcher in internal/interp/evaluator inspects an
// Expr's dynamic type directly (Var binds, TupleExpr destructures
// positionally, anything else is evaluated and compared by equality).
type Expr interface {
	Node
	exprNode()
}

type base struct {
	Sp Span
}

func (b base) Span() Span { return b.Sp }

// IntLit is an integer literal, e.g. 42. A leading '-' is not part of the
// literal: -7 parses as a Neg Unary around IntLit 7.
type IntLit struct {
	base
	Value int32
}

func (*IntLit) exprNode() {}

// StringLit is a plain, non-interpolated string literal.
type StringLit struct {
	base
	Value string
}

func (*StringLit) exprNode() {}

// InterpString is an f-string: literal text chunks interleaved with
// embedded expressions, concatenated left to right after each expression
// is coerced to a string. len(Literals) == len(Exprs)+1.
type InterpString struct {
	base
	Literals []string
	Exprs    []Expr
}

func (*InterpString) exprNode() {}

// Var is an identifier reference: a local binding, a top-level function
// name, or one of the reserved words true/false. As a pattern, Var binds
// the matched value under Name in the result frame.
type Var struct {
	base
	Name string
}

func (*Var) exprNode() {}

// TupleExpr is a parenthesized, comma-separated expression list of arity
// two or more. A single parenthesized expression without a trailing comma
// is not a tuple; the parser unwraps it to its sole element. As a pattern,
// TupleExpr destructures a Tuple value positionally; arity mismatch is a
// no-match, not an error.
type TupleExpr struct {
	base
	Elems []Expr
}

func (*TupleExpr) exprNode() {}

// UnaryOp identifies a built-in prefix operator.
type UnaryOp int

const (
	Not UnaryOp = iota
	Neg
)

// Unary is a built-in unary operator application: !x or -x.
type Unary struct {
	base
	Op   UnaryOp
	Expr Expr
}

func (*Unary) exprNode() {}

// BinaryOp identifies a built-in infix operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Neq
	Lt
	Gt
	Leq
	Geq
	And
	Or
)

// Binary is a built-in binary operator application.
type Binary struct {
	base
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*Binary) exprNode() {}

// CustomUnary is a host-registered sigil applied as a prefix operator.
type CustomUnary struct {
	base
	Sigil rune
	Expr  Expr
}

func (*CustomUnary) exprNode() {}

// CustomBinary is a host-registered sigil applied as an infix operator.
type CustomBinary struct {
	base
	Sigil rune
	Left  Expr
	Right Expr
}

func (*CustomBinary) exprNode() {}

// Call applies a callee to a single argument. Multi-argument call syntax
// f(a, b, c) is desugared by the parser into f((a, b, c)).
type Call struct {
	base
	Callee Expr
	Arg    Expr
}

func (*Call) exprNode() {}

// Lambda is a single-clause anonymous function literal. It captures the
// frame present at the point the Lambda expression is evaluated (its
// construction site), never the call site. Multi-parameter lambda syntax
// |x, y => e| is desugared by the parser into a single TupleExpr
// parameter pattern.
type Lambda struct {
	base
	Param Expr
	Body  Expr
}

func (*Lambda) exprNode() {}

// Clause is one pattern-matched, optionally guarded arm of a Function.
// Param is nil when the clause omits its pattern, which means an implicit
// wildcard that matches any argument and binds nothing. Guard is nil when
// the clause has no guards; multiple '| expr' guards are folded into a
// single And-chain by the parser.
type Clause struct {
	Param Expr
	Guard Expr
	Body  Expr
	Sp    Span
}

func (c *Clause) Span() Span { return c.Sp }

// Function is a top-level, named, ordered list of clauses. Clauses are
// tried in source order; the first whose pattern matches and whose guard
// (if present) evaluates true is used.
type Function struct {
	Name    string
	Clauses []Clause
	Sp      Span
}

func (f *Function) Span() Span { return f.Sp }

// Program is a parsed weave source file: an ordered list of top-level
// function definitions.
type Program struct {
	Functions []*Function
}

// Function looks up a top-level function by name, or returns nil.
func (p *Program) Function(name string) *Function {
	for _, f := range p.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}
