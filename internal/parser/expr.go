package parser

import (
	"strconv"

	"github.com/weave-lang/weave/internal/ast"
	"github.com/weave-lang/weave/internal/lexer"
)

// parseExpr is the entry point for any expr production (bodies, guards,
// patterns, call arguments, f-string holes). It implements the
// precedence cascade from low to high:
//
//	orAnd (|| &&) -> cmp (== != < > <= >=) -> addSub (+ -) ->
//	mulDivMod (* / %) -> customBinary -> unary (! - custom-unary) ->
//	call -> atom
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOrAnd()
}

func (p *Parser) parseOrAnd() ast.Expr {
	left := p.parseCmp()
	if left == nil {
		return nil
	}
	for p.cur.Type == lexer.OROR || p.cur.Type == lexer.ANDAND {
		op := ast.Or
		if p.cur.Type == lexer.ANDAND {
			op = ast.And
		}
		p.next()
		right := p.parseCmp()
		if right == nil {
			return nil
		}
		left = mkBinary(op, left, right)
	}
	return left
}

func (p *Parser) parseCmp() ast.Expr {
	left := p.parseAddSub()
	if left == nil {
		return nil
	}
	for {
		var op ast.BinaryOp
		switch p.cur.Type {
		case lexer.EQ:
			op = ast.Eq
		case lexer.NEQ:
			op = ast.Neq
		case lexer.LT:
			op = ast.Lt
		case lexer.GT:
			op = ast.Gt
		case lexer.LEQ:
			op = ast.Leq
		case lexer.GEQ:
			op = ast.Geq
		default:
			return left
		}
		p.next()
		right := p.parseAddSub()
		if right == nil {
			return nil
		}
		left = mkBinary(op, left, right)
	}
}

func (p *Parser) parseAddSub() ast.Expr {
	left := p.parseMulDivMod()
	if left == nil {
		return nil
	}
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		op := ast.Add
		if p.cur.Type == lexer.MINUS {
			op = ast.Sub
		}
		p.next()
		right := p.parseMulDivMod()
		if right == nil {
			return nil
		}
		left = mkBinary(op, left, right)
	}
	return left
}

func (p *Parser) parseMulDivMod() ast.Expr {
	left := p.parseCustomBinary()
	if left == nil {
		return nil
	}
	for p.cur.Type == lexer.STAR || p.cur.Type == lexer.SLASH || p.cur.Type == lexer.PERCENT {
		var op ast.BinaryOp
		switch p.cur.Type {
		case lexer.STAR:
			op = ast.Mul
		case lexer.SLASH:
			op = ast.Div
		case lexer.PERCENT:
			op = ast.Mod
		}
		p.next()
		right := p.parseCustomBinary()
		if right == nil {
			return nil
		}
		left = mkBinary(op, left, right)
	}
	return left
}

func (p *Parser) parseCustomBinary() ast.Expr {
	left := p.parseUnary()
	if left == nil {
		return nil
	}
	for p.cur.Type == lexer.SIGIL {
		sigilTok := p.cur
		r := []rune(sigilTok.Literal)[0]
		if !p.sigils[r] {
			p.errorf(UserReject, sigilTok, "sigil %q is not registered as a binary operator", r)
		}
		p.next()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		node := &ast.CustomBinary{Sigil: r, Left: left, Right: right}
		node.Sp = ast.Join(left.Span(), right.Span())
		left = node
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.cur.Type {
	case lexer.BANG:
		start := p.cur.Start
		p.next()
		inner := p.parseUnary()
		if inner == nil {
			return nil
		}
		n := &ast.Unary{Op: ast.Not, Expr: inner}
		n.Sp = p.spanFrom(start)
		return n
	case lexer.MINUS:
		start := p.cur.Start
		p.next()
		inner := p.parseUnary()
		if inner == nil {
			return nil
		}
		n := &ast.Unary{Op: ast.Neg, Expr: inner}
		n.Sp = p.spanFrom(start)
		return n
	case lexer.SIGIL:
		start := p.cur.Start
		sigilTok := p.cur
		r := []rune(sigilTok.Literal)[0]
		if !p.sigils[r] {
			p.errorf(UserReject, sigilTok, "sigil %q is not registered as a unary operator", r)
		}
		p.next()
		inner := p.parseUnary()
		if inner == nil {
			return nil
		}
		n := &ast.CustomUnary{Sigil: r, Expr: inner}
		n.Sp = p.spanFrom(start)
		return n
	default:
		return p.parseCall()
	}
}

// parseCall parses an atom, then any number of immediately-following
// parenthesized argument lists as chained calls: f(a)(b) curries. A
// multi-element argument list f(a, b, c) desugars to f((a, b, c)).
func (p *Parser) parseCall() ast.Expr {
	start := p.cur.Start
	callee := p.parseAtom()
	if callee == nil {
		return nil
	}
	for p.cur.Type == lexer.LPAREN {
		arg := p.parseArgList()
		if arg == nil {
			return nil
		}
		n := &ast.Call{Callee: callee, Arg: arg}
		n.Sp = p.spanFrom(start)
		callee = n
	}
	return callee
}

// parseArgList parses '(' expr (',' expr)* ')', desugaring multiple
// elements into a single TupleExpr argument.
func (p *Parser) parseArgList() ast.Expr {
	start := p.cur.Start
	p.next() // consume '('
	if p.cur.Type == lexer.RPAREN {
		p.next()
		n := &ast.TupleExpr{}
		n.Sp = p.spanFrom(start)
		return n
	}
	var elems []ast.Expr
	first := p.parseExpr()
	if first == nil {
		return nil
	}
	elems = append(elems, first)
	for p.cur.Type == lexer.COMMA {
		p.next()
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
	if p.cur.Type != lexer.RPAREN {
		p.errorf(UnrecognizedToken, p.cur, "expected ')' to close argument list, got %s", p.cur.Type)
		return nil
	}
	p.next() // consume ')'
	if len(elems) == 1 {
		return elems[0]
	}
	n := &ast.TupleExpr{Elems: elems}
	n.Sp = p.spanFrom(start)
	return n
}

// parseAtom handles: integer | string | f-string | name |
// '(' expr (',' expr)* ')' | lambda.
func (p *Parser) parseAtom() ast.Expr {
	start := p.cur.Start
	switch p.cur.Type {
	case lexer.INT:
		n := p.parseIntLit(start)
		return n
	case lexer.STRING:
		v := p.cur.Literal
		p.next()
		n := &ast.StringLit{Value: v}
		n.Sp = p.spanFrom(start)
		return n
	case lexer.FSTRING_START, lexer.FSTRING_MID, lexer.FSTRING_END:
		return p.parseFString(start)
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		n := &ast.Var{Name: name}
		n.Sp = p.spanFrom(start)
		return n
	case lexer.LPAREN:
		return p.parseParenOrTuple(start)
	case lexer.PIPE:
		return p.parseLambda(start)
	default:
		p.errorf(UnrecognizedToken, p.cur, "unexpected token %s in expression", p.cur.Type)
		return nil
	}
}

func (p *Parser) parseIntLit(start lexer.Position) ast.Expr {
	lit := p.cur.Literal
	v, err := strconv.ParseInt(lit, 10, 32)
	if err != nil {
		p.errorf(InvalidToken, p.cur, "invalid integer literal %q", lit)
	}
	p.next()
	n := &ast.IntLit{Value: int32(v)}
	n.Sp = p.spanFrom(start)
	return n
}

func (p *Parser) parseParenOrTuple(start lexer.Position) ast.Expr {
	p.next() // consume '('
	if p.cur.Type == lexer.RPAREN {
		p.next()
		n := &ast.TupleExpr{}
		n.Sp = p.spanFrom(start)
		return n
	}
	first := p.parseExpr()
	if first == nil {
		return nil
	}
	if p.cur.Type == lexer.COMMA {
		elems := []ast.Expr{first}
		for p.cur.Type == lexer.COMMA {
			p.next()
			e := p.parseExpr()
			if e == nil {
				return nil
			}
			elems = append(elems, e)
		}
		if p.cur.Type != lexer.RPAREN {
			p.errorf(UnrecognizedToken, p.cur, "expected ')' to close tuple, got %s", p.cur.Type)
			return nil
		}
		p.next()
		n := &ast.TupleExpr{Elems: elems}
		n.Sp = p.spanFrom(start)
		return n
	}
	if p.cur.Type != lexer.RPAREN {
		p.errorf(UnrecognizedToken, p.cur, "expected ')', got %s", p.cur.Type)
		return nil
	}
	p.next()
	return first
}

// parseLambda parses '|' pattern (',' pattern)* '=>' expr '|', desugaring
// multiple parameters into a single TupleExpr pattern.
func (p *Parser) parseLambda(start lexer.Position) ast.Expr {
	p.next() // consume opening '|'
	var params []ast.Expr
	first := p.parseExpr()
	if first == nil {
		return nil
	}
	params = append(params, first)
	for p.cur.Type == lexer.COMMA {
		p.next()
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		params = append(params, e)
	}
	if p.cur.Type != lexer.FATARROW {
		p.errorf(UnrecognizedToken, p.cur, "expected '=>' in lambda, got %s", p.cur.Type)
		return nil
	}
	p.next() // consume '=>'
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	if p.cur.Type != lexer.PIPE {
		p.errorf(UnrecognizedToken, p.cur, "expected closing '|' in lambda, got %s", p.cur.Type)
		return nil
	}
	p.next() // consume closing '|'

	var param ast.Expr
	if len(params) == 1 {
		param = params[0]
	} else {
		t := &ast.TupleExpr{Elems: params}
		t.Sp = ast.Join(params[0].Span(), params[len(params)-1].Span())
		param = t
	}
	n := &ast.Lambda{Param: param, Body: body}
	n.Sp = p.spanFrom(start)
	return n
}

// parseFString consumes a run of FSTRING_START/MID chunks interleaved
// with expression holes, terminating at FSTRING_END. A hole-free
// f-string (a single FSTRING_END chunk) lowers directly to a StringLit.
func (p *Parser) parseFString(start lexer.Position) ast.Expr {
	var literals []string
	var exprs []ast.Expr

	for {
		chunk := p.cur
		literals = append(literals, chunk.Literal)
		isEnd := chunk.Type == lexer.FSTRING_END
		p.next()
		if isEnd {
			break
		}
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		exprs = append(exprs, e)
		if p.cur.Type != lexer.FSTRING_EXPR_END {
			p.errorf(UnrecognizedToken, p.cur, "expected '}' to close interpolation, got %s", p.cur.Type)
			return nil
		}
		p.next()
	}

	if len(exprs) == 0 {
		n := &ast.StringLit{Value: literals[0]}
		n.Sp = p.spanFrom(start)
		return n
	}
	n := &ast.InterpString{Literals: literals, Exprs: exprs}
	n.Sp = p.spanFrom(start)
	return n
}

func mkBinary(op ast.BinaryOp, left, right ast.Expr) ast.Expr {
	n := &ast.Binary{Op: op, Left: left, Right: right}
	n.Sp = ast.Join(left.Span(), right.Span())
	return n
}
