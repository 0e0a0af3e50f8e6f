package strat

// Expression grammar (spec §6):
//
//	expr        := expr_or
//	expr_or     := expr_and ('|' expr_and)*
//	expr_and    := expr_not ('&' expr_not)*
//	expr_not    := '!' expr_not | expr_rel
//	expr_rel    := expr_add ( ('<'|'='|'>') expr_add )?
//	expr_add    := expr_mul ( ('+'|'-') expr_mul )*
//	expr_mul    := expr_un  ( ('*'|'%') expr_un  )*
//	expr_un     := NUMBER | IDENT | '(' expr_or ')'

func (p *parser) parseExprOr() (*Expr, error) {
	left, err := p.parseExprAnd()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if t.kind != tokPipe {
			return left, nil
		}
		p.lex.next()
		right, err := p.parseExprAnd()
		if err != nil {
			return nil, err
		}
		left = &Expr{Kind: ExprOr, L: left, R: right}
	}
}

func (p *parser) parseExprAnd() (*Expr, error) {
	left, err := p.parseExprNot()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		if t.kind != tokAmp {
			return left, nil
		}
		p.lex.next()
		right, err := p.parseExprNot()
		if err != nil {
			return nil, err
		}
		left = &Expr{Kind: ExprAnd, L: left, R: right}
	}
}

func (p *parser) parseExprNot() (*Expr, error) {
	t, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	if t.kind == tokBang {
		p.lex.next()
		inner, err := p.parseExprNot()
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprNot, L: inner}, nil
	}
	return p.parseExprRel()
}

func (p *parser) parseExprRel() (*Expr, error) {
	left, err := p.parseExprAdd()
	if err != nil {
		return nil, err
	}
	t, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	var kind ExprKind
	switch t.kind {
	case tokLess:
		kind = ExprLess
	case tokEqEq:
		kind = ExprEqual
	case tokGreater:
		kind = ExprGreater
	default:
		return left, nil
	}
	p.lex.next()
	right, err := p.parseExprAdd()
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: kind, L: left, R: right}, nil
}

func (p *parser) parseExprAdd() (*Expr, error) {
	left, err := p.parseExprMul()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		var kind ExprKind
		switch t.kind {
		case tokPlus:
			kind = ExprAdd
		case tokMinus:
			kind = ExprSub
		default:
			return left, nil
		}
		p.lex.next()
		right, err := p.parseExprMul()
		if err != nil {
			return nil, err
		}
		left = &Expr{Kind: kind, L: left, R: right}
	}
}

func (p *parser) parseExprMul() (*Expr, error) {
	left, err := p.parseExprUn()
	if err != nil {
		return nil, err
	}
	for {
		t, err := p.lex.peek()
		if err != nil {
			return nil, err
		}
		var kind ExprKind
		switch t.kind {
		case tokStar:
			kind = ExprMul
		case tokPercent:
			kind = ExprMod
		default:
			return left, nil
		}
		p.lex.next()
		right, err := p.parseExprUn()
		if err != nil {
			return nil, err
		}
		left = &Expr{Kind: kind, L: left, R: right}
	}
}

func (p *parser) parseExprUn() (*Expr, error) {
	t, err := p.lex.peek()
	if err != nil {
		return nil, err
	}
	switch t.kind {
	case tokNumber:
		p.lex.next()
		return &Expr{Kind: ExprNum, Num: t.num}, nil
	case tokWord:
		p.lex.next()
		return &Expr{Kind: ExprIdent, Ident: normalizeWord(t.text)}, nil
	case tokLParen:
		p.lex.next()
		inner, err := p.parseExprOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errf(t, "expected number, identifier, or '(', got %q", t.text)
	}
}

// AttrLookup resolves a named graph property (e.g. "vert", "load",
// "edge", "levl") to its current numeric value for a specific Active.
type AttrLookup func(name string) (float64, bool)

// Eval evaluates a test expression against attrs, returning a C-style
// truthy/falsy double: nonzero (1 for logical operators) is true.
func Eval(e *Expr, attrs AttrLookup) (float64, error) {
	switch e.Kind {
	case ExprNum:
		return e.Num, nil
	case ExprIdent:
		v, ok := attrs(e.Ident)
		if !ok {
			return 0, &ParseError{Msg: "unknown attribute \"" + e.Ident + "\""}
		}
		return v, nil
	case ExprNot:
		v, err := Eval(e.L, attrs)
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return 1, nil
		}
		return 0, nil
	case ExprOr, ExprAnd:
		l, err := Eval(e.L, attrs)
		if err != nil {
			return 0, err
		}
		r, err := Eval(e.R, attrs)
		if err != nil {
			return 0, err
		}
		if e.Kind == ExprOr {
			if l != 0 || r != 0 {
				return 1, nil
			}
			return 0, nil
		}
		if l != 0 && r != 0 {
			return 1, nil
		}
		return 0, nil
	case ExprLess, ExprEqual, ExprGreater:
		l, err := Eval(e.L, attrs)
		if err != nil {
			return 0, err
		}
		r, err := Eval(e.R, attrs)
		if err != nil {
			return 0, err
		}
		var ok bool
		switch e.Kind {
		case ExprLess:
			ok = l < r
		case ExprEqual:
			ok = l == r
		case ExprGreater:
			ok = l > r
		}
		if ok {
			return 1, nil
		}
		return 0, nil
	case ExprAdd, ExprSub, ExprMul, ExprMod:
		l, err := Eval(e.L, attrs)
		if err != nil {
			return 0, err
		}
		r, err := Eval(e.R, attrs)
		if err != nil {
			return 0, err
		}
		switch e.Kind {
		case ExprAdd:
			return l + r, nil
		case ExprSub:
			return l - r, nil
		case ExprMul:
			return l * r, nil
		case ExprMod:
			if r == 0 {
				return 0, &ParseError{Msg: "modulo by zero in test expression"}
			}
			li, ri := int64(l), int64(r)
			return float64(li % ri), nil
		}
	}
	return 0, &ParseError{Msg: "malformed expression node"}
}
