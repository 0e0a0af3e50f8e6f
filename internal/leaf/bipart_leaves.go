// Package leaf implements the base-case solvers of spec.md §4.4: the
// methods a multilevel recursion bottoms out into once a graph is small
// enough to solve directly, for each of the four problem families
// (bipartition, separation, ordering, mapping).
//
// Grounded on spec §4.4's leaf family list directly; no example repo
// implements graph leaf solvers, so the package follows internal/coarsen
// and internal/refine's convention of plain functions registered as
// strat.Method closures.
package leaf

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/errs"
	"github.com/yourusername/scotch/internal/strat"
)

// GreedyGrowMethod returns the "gg" bipartition leaf (spec §4.4 "greedy
// graph growing from a random seed vertex"): starting with every vertex
// in part 1 except a single random seed in part 0, repeatedly moves the
// part-1 neighbor of part 0 with the highest degree into part 0 until
// compload0 reaches Compload0min.
func GreedyGrowMethod(c *ctx.Context) strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		b, ok := a.(*active.Bgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "greedy-grow method applied to a non-Bgraph active object")
		}
		greedyGrow(c, b)
		return nil
	}
}

func greedyGrow(c *ctx.Context, b *active.Bgraph) {
	g := b.Graph
	n := g.NumVertices()
	if n == 0 {
		return
	}
	for i := range b.Parttab {
		b.Parttab[i] = 1
	}
	seed := int32(c.RNG().IntN(n))
	b.Parttab[seed] = 0
	b.Refresh()

	frontier := map[int32]bool{seed: true}
	for b.Compload0 < b.Compload0min {
		var best int32 = -1
		var bestDeg = -1
		for v := range frontier {
			start, end := g.EdgeRange(int(v))
			for e := start; e < end; e++ {
				j := g.Edgetab[e]
				if b.Parttab[j] != 1 {
					continue
				}
				deg := g.Degree(int(j))
				if deg > bestDeg {
					best, bestDeg = j, deg
				}
			}
		}
		if best == -1 {
			break
		}
		b.Parttab[best] = 0
		frontier[best] = true
		b.Refresh()
	}
}

// ExhaustiveMethod returns the "ex" bipartition leaf (spec §4.4
// "exhaustive small-graph search"): tries every 2^n assignment for graphs
// small enough to enumerate (n <= 20) and keeps the legal assignment with
// lowest commload; falls back to GreedyGrowMethod above that threshold.
func ExhaustiveMethod(c *ctx.Context) strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		b, ok := a.(*active.Bgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "exhaustive method applied to a non-Bgraph active object")
		}
		const maxExhaustive = 20
		n := b.Graph.NumVertices()
		if n > maxExhaustive {
			greedyGrow(c, b)
			return nil
		}
		exhaustiveBipart(b)
		return nil
	}
}

func exhaustiveBipart(b *active.Bgraph) {
	n := b.Graph.NumVertices()
	var bestMask uint32
	bestCommload := int64(-1)
	found := false

	for mask := uint32(0); mask < uint32(1)<<uint(n); mask++ {
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				b.Parttab[i] = 1
			} else {
				b.Parttab[i] = 0
			}
		}
		b.Refresh()
		if !b.WithinEnvelope() {
			continue
		}
		if !found || b.Commload < bestCommload {
			found = true
			bestCommload = b.Commload
			bestMask = mask
		}
	}

	if !found {
		// No assignment satisfied the envelope: leave the all-zero
		// zero-method fallback in place.
		for i := range b.Parttab {
			b.Parttab[i] = 0
		}
		b.Refresh()
		return
	}
	for i := 0; i < n; i++ {
		if bestMask&(1<<uint(i)) != 0 {
			b.Parttab[i] = 1
		} else {
			b.Parttab[i] = 0
		}
	}
	b.Refresh()
}

// ZeroMethod returns the "zr" trivial bipartition leaf (spec §4.4 "a
// trivial all in part 0 zero method used for cut-off / empty cases").
func ZeroMethod() strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		b, ok := a.(*active.Bgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "zero method applied to a non-Bgraph active object")
		}
		for i := range b.Parttab {
			b.Parttab[i] = 0
		}
		b.Refresh()
		return nil
	}
}
