// Package nesteddissect builds the separator tree of spec.md §4.5:
// repeatedly separate the current residual graph into two sides and a
// separator, recurse into each side's induced subgraph, and order the
// separator directly, bottoming out on a leaf ordering method once a
// residual is small enough to order without further separation.
package nesteddissect

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/leaf"
	"github.com/yourusername/scotch/internal/order"
	"github.com/yourusername/scotch/internal/strat"
)

// Config bundles the knobs the recursion needs at every level.
type Config struct {
	// SepStrat is the strategy applied to each level's Vgraph to produce
	// its three-way split. A nil strategy (or one that fails, or that
	// degenerates to an empty side) falls through to LeafOrder directly,
	// per spec §7 "graceful fallback, not an error".
	SepStrat *strat.Strat
	Registry strat.Registry

	// MinVertices is the base-case threshold below which a residual is
	// ordered directly rather than separated further.
	MinVertices int

	// LeafOrder computes the base-case permutation over a residual
	// graph's own 0-based vertex indices. Defaults to leaf.MinimumDegree.
	LeafOrder func(g *graph.Graph) []int32
}

// Build runs the recursion over g and returns the resulting Order, whose
// Baseval matches g's.
func Build(c *ctx.Context, g *graph.Graph, cfg Config) *order.Order {
	if cfg.LeafOrder == nil {
		cfg.LeafOrder = leaf.MinimumDegree
	}
	labels := make([]int32, g.NumVertices())
	for i := range labels {
		labels[i] = int32(i + g.Baseval)
	}
	root := buildNode(c, g, labels, cfg)
	return &order.Order{Baseval: g.Baseval, Root: root}
}

// buildNode separates g (whose 0-based vertex i corresponds to the
// externally-visible label labels[i]) and recurses, or orders it
// directly at the base case.
func buildNode(c *ctx.Context, g *graph.Graph, labels []int32, cfg Config) *order.Cblk {
	n := g.NumVertices()
	if n <= cfg.MinVertices || cfg.SepStrat == nil {
		return leafNode(g, labels, cfg)
	}

	v := active.NewVgraph(g)
	if err := strat.Apply(cfg.SepStrat, v, cfg.Registry); err != nil {
		return leafNode(g, labels, cfg)
	}

	var part0, part1, sep []int32
	for i, p := range v.Parttab {
		switch p {
		case 0:
			part0 = append(part0, int32(i))
		case 1:
			part1 = append(part1, int32(i))
		default:
			sep = append(sep, int32(i))
		}
	}
	if len(part0) == 0 || len(part1) == 0 {
		return leafNode(g, labels, cfg)
	}

	g0 := graph.Induced(g, part0)
	g1 := graph.Induced(g, part1)
	labels0 := relabel(labels, g0.Vlbltab)
	labels1 := relabel(labels, g1.Vlbltab)
	sepLabels := relabel(labels, sep)

	left, right := c.Split()
	leftNode := buildNode(left, g0, labels0, cfg)
	rightNode := buildNode(right, g1, labels1, cfg)

	gsep := graph.Induced(g, sep)
	sepPerm := cfg.LeafOrder(gsep)
	sepNode := &order.Cblk{VertLo: 0, VertHi: len(sepLabels), Leaf: relabel(sepLabels, sepPerm)}

	return &order.Cblk{
		VertLo: 0,
		VertHi: n,
		Left:   leftNode,
		Right:  rightNode,
		Sep:    sepNode,
	}
}

func leafNode(g *graph.Graph, labels []int32, cfg Config) *order.Cblk {
	perm := cfg.LeafOrder(g)
	return &order.Cblk{VertLo: 0, VertHi: len(labels), Leaf: relabel(labels, perm)}
}

// relabel maps each 0-based index in idx through labels, translating a
// permutation or member set expressed in g's local numbering into the
// caller's own externally-visible labels.
func relabel(labels []int32, idx []int32) []int32 {
	out := make([]int32, len(idx))
	for i, v := range idx {
		out[i] = labels[v]
	}
	return out
}
