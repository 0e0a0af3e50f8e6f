package strat

import "fmt"

// ParseError reports a strategy-string syntax or type error with its
// source position (spec §7 "StrategyParse — syntax or type error in a
// strategy string, with line/column").
type ParseError struct {
	Line, Column int
	Msg          string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("strategy parse error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// Kind discriminates the five Strat node shapes of spec §3.
type Kind int

const (
	KindEmpty Kind = iota
	KindConcat
	KindCond
	KindSelect
	KindMethod
)

// Strat is the tagged recursive strategy-tree value of spec §3: "Empty |
// Concat(s1, s2) | Cond(test, s1, s2?) | Select(s1, s2) | Method(id,
// params)".
type Strat struct {
	Kind Kind

	// Concat / Select / Cond branches.
	S1, S2 *Strat

	// Cond only: the boolean test, and whether S2 was present in source
	// (an absent else-branch behaves as Empty but round-trips without
	// printing a redundant "Empty" token).
	Test     *Expr
	HasElse  bool

	// Method only.
	MethodName string
	Params     *Params
}

// Params holds a method's parsed key=value arguments. Each value slot is
// populated in exactly one of the four maps depending on the token the
// parser consumed for it, generalizing the single 64-128 byte C param
// struct of spec §4.1 into typed Go maps a method implementation reads by
// name.
type Params struct {
	Nums    map[string]float64
	Strings map[string]string
	Cases   map[string]string // bareword enum-like constants, e.g. type=h
	Strats  map[string]*Strat
}

func newParams() *Params {
	return &Params{
		Nums:    map[string]float64{},
		Strings: map[string]string{},
		Cases:   map[string]string{},
		Strats:  map[string]*Strat{},
	}
}

// Num returns a numeric parameter, falling back to def if absent.
func (p *Params) Num(name string, def float64) float64 {
	if p == nil {
		return def
	}
	if v, ok := p.Nums[name]; ok {
		return v
	}
	return def
}

// Case returns a bareword-constant parameter, falling back to def if
// absent.
func (p *Params) Case(name, def string) string {
	if p == nil {
		return def
	}
	if v, ok := p.Cases[name]; ok {
		return v
	}
	return def
}

// String returns a quoted-string parameter, falling back to def if
// absent.
func (p *Params) String(name, def string) string {
	if p == nil {
		return def
	}
	if v, ok := p.Strings[name]; ok {
		return v
	}
	return def
}

// Strat returns a nested-strategy parameter, or nil if absent. A
// parameter value that was a single bare method name with no parameter
// list of its own (e.g. "low=h") is stored under Cases rather than
// Strats, since the parser cannot otherwise distinguish it from a CASE
// constant like "type=h" — Strat resolves that ambiguity in the
// sub-strategy direction, wrapping the bareword back into a trivial
// method node.
func (p *Params) Strat(name string) *Strat {
	if p == nil {
		return nil
	}
	if s, ok := p.Strats[name]; ok {
		return s
	}
	if c, ok := p.Cases[name]; ok {
		return &Strat{Kind: KindMethod, MethodName: c}
	}
	return nil
}

// ExprKind discriminates test-expression node shapes.
type ExprKind int

const (
	ExprNum ExprKind = iota
	ExprIdent
	ExprOr
	ExprAnd
	ExprNot
	ExprLess
	ExprEqual
	ExprGreater
	ExprAdd
	ExprSub
	ExprMul
	ExprMod
)

// Expr is the test-expression tree of spec §6: "a pure expression over
// graph attributes and numeric constants with operators | & ! = < > + - * %".
type Expr struct {
	Kind  ExprKind
	Num   float64
	Ident string
	L, R  *Expr // R is unused for ExprNum/ExprIdent/ExprNot (L only)
}
