package scotch

import "github.com/yourusername/scotch/internal/strat"

// Strat, Params, and the parser/interpreter are implemented in
// internal/strat so that internal/coarsen, internal/refine, and
// internal/leaf can reference them without importing this root package.
// These are re-exports of the same types.
type Strat = strat.Strat

type StratParams = strat.Params

// ParseStrategy compiles a strategy string per spec §4.1/§6's grammar.
func ParseStrategy(s string) (*Strat, error) {
	return strat.Parse(s)
}

// StratError reports a strategy-string syntax or type error with its
// source position.
type StratError = strat.ParseError
