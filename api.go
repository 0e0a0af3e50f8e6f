package scotch

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/arch"
	"github.com/yourusername/scotch/internal/coarsen"
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/errs"
	"github.com/yourusername/scotch/internal/leaf"
	"github.com/yourusername/scotch/internal/mapping"
	"github.com/yourusername/scotch/internal/nesteddissect"
	"github.com/yourusername/scotch/internal/refine"
	"github.com/yourusername/scotch/internal/strat"
)

// Top-level entry points (spec §2 "graphPart, graphMap, graphOrder"):
// each allocates a problem-specific active object over g, then hands it
// together with a compiled strategy tree to the interpreter.

// GraphPart partitions g into nparts roughly equal-weight parts,
// minimizing dilation-weighted edge cut, per spec §1's "special case of
// mapping onto a complete graph of k equally weighted targets". An empty
// strategy uses DefaultMapStrategy. Returns a part assignment array
// parallel to g's 0-based vertex indices, each entry in [0, nparts).
func GraphPart(g *Graph, nparts int, strategyStr string, opts ...Option) ([]int32, error) {
	if nparts < 1 {
		return nil, errs.New(errs.CodeInvalidInput, "nparts must be >= 1")
	}
	m, err := GraphMap(g, arch.NewComplete(nparts), strategyStr, opts...)
	if err != nil {
		return nil, err
	}
	return m.Parttab, nil
}

// GraphMap assigns each vertex of g to a domain of target architecture a
// so as to minimize dilation-weighted commload within a's per-domain
// weight tolerance (spec §1 "static mapping"). An empty strategy uses
// DefaultMapStrategy.
func GraphMap(g *Graph, a Arch, strategyStr string, opts ...Option) (*Mapping, error) {
	if g == nil {
		return nil, errs.New(errs.CodeInvalidInput, "graph must not be nil")
	}
	s, registry, _, err := prepare(strategyStr, DefaultMapStrategy, opts)
	if err != nil {
		return nil, err
	}

	m := mapping.New(g, a)
	k := active.NewKgraph(g, m)
	if err := strat.Apply(s, k, registry); err != nil {
		return nil, errs.Wrap(errs.CodeStrategyRuntime, "graph mapping failed", err)
	}
	return k.Mapping, nil
}

// GraphOrder computes a fill-reducing nested-dissection vertex ordering
// of g (spec §1 "sparse matrix reordering", §4.5). SepStrategy selects
// the vertex-separation strategy applied at each level of the recursion;
// an empty string uses DefaultSeparateStrategy. minVertices bounds the
// base case below which a residual is ordered directly with
// leaf.MinimumDegree rather than separated further; 0 picks a built-in
// default.
func GraphOrder(g *Graph, sepStrategyStr string, minVertices int, opts ...Option) (*Order, error) {
	if g == nil {
		return nil, errs.New(errs.CodeInvalidInput, "graph must not be nil")
	}
	s, registry, c, err := prepare(sepStrategyStr, DefaultSeparateStrategy, opts)
	if err != nil {
		return nil, err
	}
	if minVertices <= 0 {
		minVertices = 16
	}

	o := nesteddissect.Build(c, g, nesteddissect.Config{
		SepStrat:    s,
		Registry:    registry,
		MinVertices: minVertices,
		LeafOrder:   leaf.MinimumDegree,
	})
	return o, nil
}

// prepare parses strategyStr (or falls back to fallback()), assembles
// the shared method registry bound to a fresh Context built from opts,
// and returns all three together with the Context itself (GraphOrder
// needs it directly for the separation recursion).
func prepare(strategyStr string, fallback func() string, opts []Option) (*Strat, strat.Registry, *ctx.Context, error) {
	if strategyStr == "" {
		strategyStr = fallback()
	}
	s, err := strat.Parse(strategyStr)
	if err != nil {
		return nil, nil, nil, errs.Wrap(errs.CodeStrategyParse, "failed to parse strategy", err)
	}
	c := ctx.New(opts...)
	return s, buildRegistry(c), c, nil
}

// buildRegistry assembles every coarsen/refine/leaf method under the
// lowercase name it is addressed by from a strategy string. Names match
// case-insensitively but exactly: an abbreviated or longer name is not
// resolved to a registered one by prefix. "m" dispatches
// to the Bgraph/Vgraph/Kgraph instantiation of the multilevel method
// body matching whichever active object it is actually applied to, so
// one strategy grammar covers partitioning, separation, and mapping.
func buildRegistry(c *ctx.Context) strat.Registry {
	registry := strat.Registry{}

	bipart := coarsen.BipartMethod(c, registry)
	separate := coarsen.SeparateMethod(c, registry)
	mapMethod := coarsen.MapMethod(c, registry)
	registry["m"] = func(a strat.Active, params *strat.Params) error {
		switch a.(type) {
		case *active.Bgraph:
			return bipart(a, params)
		case *active.Vgraph:
			return separate(a, params)
		case *active.Kgraph:
			return mapMethod(a, params)
		default:
			return errs.New(errs.CodeStrategyRuntime, "multilevel method applied to an unsupported active object")
		}
	}

	// Bipartition leaves and refinement.
	registry["h"] = leaf.GreedyGrowMethod(c)
	registry["ex"] = leaf.ExhaustiveMethod(c)
	registry["zr"] = leaf.ZeroMethod()
	registry["f"] = refine.FMBipartMethod()
	registry["dif"] = refine.DiffusionMethod()

	// Separator leaves and refinement.
	registry["gp"] = leaf.GreedySeparatorMethod(c)
	registry["thin"] = leaf.ThinMethod()
	registry["fs"] = refine.FMSeparatorMethod()

	// Mapping leaves and refinement.
	registry["drb"] = leaf.DualRecursiveBipartitionMethod(c)
	registry["kfm"] = leaf.KWayFMMethod()

	return registry
}

// DefaultMapStrategy returns the strategy string applied when GraphMap
// or GraphPart receives an empty one: multilevel coarsening down to 100
// vertices, a dual-recursive-bipartition base case, and a k-way FM
// uncoarsening refinement (spec §6 "defaults are chosen so a safe,
// well-balanced mapping strategy is produced when the user passes an
// empty strategy string").
func DefaultMapStrategy() string {
	return "m{vert=100,low=drb,asc=kfm}"
}

// DefaultSeparateStrategy returns the strategy string applied when
// GraphOrder receives an empty one: multilevel coarsening down to 100
// vertices, a greedy vertex-separator base case, and an FM separator
// refinement followed by the thin post-pass at each level.
func DefaultSeparateStrategy() string {
	return "m{vert=100,low=gp,asc=fs thin}"
}

// DefaultBipartStrategy returns the strategy string a caller wiring a
// custom graph-bipartition-only pipeline (not through GraphPart) would
// pass: multilevel coarsening down to 100 vertices, a greedy-growing base
// case, and an FM uncoarsening refinement.
func DefaultBipartStrategy() string {
	return "m{vert=100,low=h,asc=f}"
}
