package parser

import (
	"fmt"

	"github.com/weave-lang/weave/internal/ast"
	"github.com/weave-lang/weave/internal/lexer"
)

// Parser is a hand-written recursive-descent parser driven directly off
// internal/lexer's token stream. It has no separate concrete grammar
// pass: each parse* method builds internal/ast nodes straight away.
//
// Custom sigils are lexed uniformly as SIGIL tokens regardless of which
// sigils a given weave.Language has actually registered; Sigils carries
// the currently-registered set so the parser can reject an unregistered
// sigil with a UserReject error at the point it is used, satisfying the
// host-extension coupling without rebuilding the grammar per Language.
type Parser struct {
	l      *lexer.Lexer
	source string
	sigils map[rune]bool // registered sigils, both unary and binary
	cur    lexer.Token
	peek   lexer.Token
	// prevEnd is the End position of the token just consumed by the most
	// recent next() call; node spans close over prevEnd after their last
	// constituent token has been consumed.
	prevEnd lexer.Position
	errors  []*Error
}

// New creates a Parser over source, consulting registeredSigils to decide
// whether a given sigil use is legal.
func New(source string, registeredSigils map[rune]bool) *Parser {
	p := &Parser{l: lexer.New(source), source: source, sigils: registeredSigils}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.prevEnd = p.cur.End
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func toASTPos(pos lexer.Position) ast.Position {
	return ast.Position{Line: pos.Line, Column: pos.Column, Offset: pos.Offset}
}

// spanFrom builds a Span from start to the end of the most recently
// consumed token (i.e. the last token belonging to the node in progress).
func (p *Parser) spanFrom(start lexer.Position) ast.Span {
	return ast.Span{Start: toASTPos(start), End: toASTPos(p.prevEnd)}
}

func (p *Parser) errorf(sub Sub, tok lexer.Token, format string, args ...any) {
	if sub == UnrecognizedToken {
		switch tok.Type {
		case lexer.EOF:
			sub = UnexpectedEOF
		case lexer.ILLEGAL:
			sub = InvalidToken
		}
	}
	p.errors = append(p.errors, &Error{
		Sub:     sub,
		Message: fmt.Sprintf(format, args...),
		Source:  p.source,
		Start:   tok.Start,
		End:     tok.End,
	})
}

// ParseProgram parses the whole source as a sequence of function
// definitions. Remaining parser.Errors() describe any failures; a
// non-empty Program may still be returned alongside them for partial
// inspection, but the caller (pkg/weave) treats any errors as fatal.
// Several '#name' blocks with the same name form one Function whose
// clauses are those of every block, in source order.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Type != lexer.EOF {
		if p.cur.Type != lexer.HASH {
			p.errorf(ExtraToken, p.cur, "expected '#' to start a function, got %s", p.cur.Type)
			p.next()
			continue
		}
		fn := p.parseFunction()
		if fn != nil {
			if prev := prog.Function(fn.Name); prev != nil {
				prev.Clauses = append(prev.Clauses, fn.Clauses...)
				continue
			}
			prog.Functions = append(prog.Functions, fn)
		}
	}
	return prog
}

// Errors returns every parse failure accumulated during ParseProgram.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) parseFunction() *ast.Function {
	start := p.cur.Start
	p.next() // consume '#'

	if p.cur.Type != lexer.IDENT {
		p.errorf(UnrecognizedToken, p.cur, "expected function name after '#', got %s", p.cur.Type)
		return nil
	}
	name := p.cur.Literal
	p.next()

	fn := &ast.Function{Name: name}
	for {
		clause := p.parseClause()
		if clause != nil {
			fn.Clauses = append(fn.Clauses, *clause)
		}
		if p.cur.Type != lexer.SEMI {
			p.errorf(UnrecognizedToken, p.cur, "expected ';' after clause, got %s", p.cur.Type)
			break
		}
		p.next() // consume ';'
		if p.cur.Type == lexer.HASH || p.cur.Type == lexer.EOF {
			break
		}
	}
	fn.Sp = p.spanFrom(start)
	return fn
}

// parseClause parses `(pattern '->')? expr ('|' expr)*`. When the
// pattern/'->' prefix is absent, Param is nil (implicit wildcard: matches
// any argument, binds nothing).
func (p *Parser) parseClause() *ast.Clause {
	start := p.cur.Start
	first := p.parseExpr()
	if first == nil {
		return nil
	}

	clause := &ast.Clause{}
	if p.cur.Type == lexer.ARROW {
		p.next()
		clause.Param = first
		body := p.parseExpr()
		if body == nil {
			return nil
		}
		clause.Body = body
	} else {
		clause.Body = first
	}

	for p.cur.Type == lexer.PIPE {
		p.next()
		g := p.parseExpr()
		if g == nil {
			break
		}
		if clause.Guard == nil {
			clause.Guard = g
		} else {
			and := &ast.Binary{Op: ast.And, Left: clause.Guard, Right: g}
			and.Sp = ast.Join(clause.Guard.Span(), g.Span())
			clause.Guard = and
		}
	}

	clause.Sp = p.spanFrom(start)
	return clause
}
