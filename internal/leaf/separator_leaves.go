package leaf

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/errs"
	"github.com/yourusername/scotch/internal/strat"
)

// GreedySeparatorMethod returns the "gp" separator leaf (spec §4.4
// "greedy node separator"): grows a part-0/part-1 split from a random
// seed vertex as GreedyGrowMethod does, then converts every vertex
// straddling the cut into the separator (part 2).
func GreedySeparatorMethod(c *ctx.Context) strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		v, ok := a.(*active.Vgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "greedy-separator method applied to a non-Vgraph active object")
		}
		greedySeparator(c, v)
		return nil
	}
}

func greedySeparator(c *ctx.Context, v *active.Vgraph) {
	g := v.Graph
	n := g.NumVertices()
	if n == 0 {
		return
	}
	for i := range v.Parttab {
		v.Parttab[i] = 1
	}
	seed := int32(c.RNG().IntN(n))
	v.Parttab[seed] = 0
	half := g.Velosum / 2
	frontier := map[int32]bool{seed: true}
	load0 := g.VertexLoad(int(seed))
	for load0 < half {
		var best int32 = -1
		for cand := range frontier {
			start, end := g.EdgeRange(int(cand))
			for e := start; e < end; e++ {
				j := g.Edgetab[e]
				if v.Parttab[j] == 1 {
					best = j
					break
				}
			}
			if best != -1 {
				break
			}
		}
		if best == -1 {
			break
		}
		v.Parttab[best] = 0
		frontier[best] = true
		load0 += g.VertexLoad(int(best))
	}

	for i := 0; i < n; i++ {
		if v.Parttab[i] != 0 {
			continue
		}
		start, end := g.EdgeRange(i)
		for e := start; e < end; e++ {
			if v.Parttab[g.Edgetab[e]] == 1 {
				v.Parttab[i] = 2
				break
			}
		}
	}
	v.Refresh()
}

// ThinMethod returns the "thin" post-pass (spec §4.4 "'thin' post-pass
// that removes separator vertices both of whose sides have only one
// colour represented"): a separator vertex whose neighbors are entirely
// in one of part 0/1 (plus possibly other separator vertices) is demoted
// back into that part, since it is not actually needed to keep the two
// sides disjoint.
func ThinMethod() strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		v, ok := a.(*active.Vgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "thin method applied to a non-Vgraph active object")
		}
		thinSeparator(v)
		return nil
	}
}

func thinSeparator(v *active.Vgraph) {
	g := v.Graph
	changed := true
	for changed {
		changed = false
		for _, i := range append([]int32(nil), v.Frontab...) {
			seen0, seen1 := false, false
			start, end := g.EdgeRange(int(i))
			for e := start; e < end; e++ {
				switch v.Parttab[g.Edgetab[e]] {
				case 0:
					seen0 = true
				case 1:
					seen1 = true
				}
			}
			switch {
			case seen0 && !seen1:
				v.Move(i, 0)
				changed = true
			case seen1 && !seen0:
				v.Move(i, 1)
				changed = true
			}
		}
		if changed {
			v.Refresh()
		}
	}
}
