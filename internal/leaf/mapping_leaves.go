package leaf

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/arch"
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/errs"
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/mapping"
	"github.com/yourusername/scotch/internal/strat"
)

// DualRecursiveBipartitionMethod returns the "drb" mapping leaf (spec
// §4.4 "recursive bipartitioning of the target architecture paired with
// recursive bipartitioning of the graph"): it walks the architecture's
// domain-bipartition tree, splitting the vertex set at each step in
// proportion to the two children's DomWght, until a domain can no longer
// be bipartitioned, then assigns every vertex in the remaining subset to
// that leaf domain.
func DualRecursiveBipartitionMethod(c *ctx.Context) strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		k, ok := a.(*active.Kgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "dual recursive bipartition method applied to a non-Kgraph active object")
		}
		dualRecursiveBipartition(c, k)
		return nil
	}
}

type dualTask struct {
	verts []int32
	dom   arch.Dom
}

func dualRecursiveBipartition(c *ctx.Context, k *active.Kgraph) {
	g := k.Graph
	n := g.NumVertices()
	a := k.Mapping.Arch
	root := a.DomFrst()

	vertices := make([]int32, n)
	for i := range vertices {
		vertices[i] = int32(i)
	}

	k.Mapping.Domntab = k.Mapping.Domntab[:0]
	domIndex := map[arch.Dom]int32{}
	assign := func(verts []int32, dom arch.Dom) {
		idx, ok := domIndex[dom]
		if !ok {
			idx = int32(len(k.Mapping.Domntab))
			k.Mapping.Domntab = append(k.Mapping.Domntab, dom)
			domIndex[dom] = idx
		}
		for _, v := range verts {
			k.Mapping.Parttab[v] = idx
		}
	}

	queue := []dualTask{{verts: vertices, dom: root}}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		if a.DomSize(t.dom) <= 1 || len(t.verts) <= 1 {
			assign(t.verts, t.dom)
			continue
		}
		d0, d1, err := a.DomBipart(t.dom)
		if err != nil {
			assign(t.verts, t.dom)
			continue
		}
		left, right := splitVerticesByWeight(c, g, t.verts, a.DomWght(d0), a.DomWght(d1))
		queue = append(queue, dualTask{verts: left, dom: d0}, dualTask{verts: right, dom: d1})
	}
	k.Refresh()
}

// splitVerticesByWeight grows a connected subset of verts from a random
// seed, by edge-adjacency within the subset, until it holds a share of
// verts proportional to w0/(w0+w1); the remainder becomes the second
// half. Falls back to picking arbitrary remaining vertices when the
// induced subgraph is disconnected.
func splitVerticesByWeight(c *ctx.Context, g *graph.Graph, verts []int32, w0, w1 int64) (left, right []int32) {
	if len(verts) == 0 {
		return nil, nil
	}
	member := make(map[int32]bool, len(verts))
	for _, v := range verts {
		member[v] = true
	}
	total := w0 + w1
	if total <= 0 {
		total = 1
	}
	target := int(float64(len(verts)) * float64(w0) / float64(total))
	if target < 1 {
		target = 1
	}
	if len(verts) > 1 && target >= len(verts) {
		target = len(verts) - 1
	}

	seed := verts[c.RNG().IntN(len(verts))]
	inLeft := map[int32]bool{seed: true}
	frontier := []int32{seed}
	for len(inLeft) < target {
		var next []int32
		for _, v := range frontier {
			start, end := g.EdgeRange(int(v))
			for e := start; e < end; e++ {
				j := g.Edgetab[e]
				if member[j] && !inLeft[j] {
					inLeft[j] = true
					next = append(next, j)
					if len(inLeft) >= target {
						break
					}
				}
			}
			if len(inLeft) >= target {
				break
			}
		}
		if len(next) == 0 {
			for _, v := range verts {
				if !inLeft[v] {
					inLeft[v] = true
					next = append(next, v)
					break
				}
			}
			if len(next) == 0 {
				break
			}
		}
		frontier = next
	}

	for _, v := range verts {
		if inLeft[v] {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}
	return left, right
}

// KWayFMMethod returns the direct k-way refinement method of spec §4.4
// ("FM over arbitrary many buckets") applied as the `asc` phase above
// mapping leaves: each frontier vertex considers the domains its
// neighbors sit in and moves to the one that most reduces its local
// contribution to commload, if any strictly reduces it.
func KWayFMMethod() strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		k, ok := a.(*active.Kgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "k-way FM method applied to a non-Kgraph active object")
		}
		passnbr := int(params.Num("pass", 10))
		kwayFM(k, passnbr)
		return nil
	}
}

func kwayFM(k *active.Kgraph, passnbr int) {
	g := k.Graph
	m := k.Mapping
	for pass := 0; pass < passnbr; pass++ {
		moved := false
		for _, v := range append([]int32(nil), m.Frontab...) {
			best, gain := bestNeighborDomain(g, m, v)
			if gain > 0 {
				m.Parttab[v] = best
				moved = true
			}
		}
		k.Refresh()
		if !moved {
			break
		}
	}
}

// bestNeighborDomain scores each neighboring domain of v by how much v's
// dilation-weighted edge load would drop if v moved there, returning the
// best-scoring domain and that gain (v's current domain and 0 when no
// move lowers it).
func bestNeighborDomain(g *graph.Graph, m *mapping.Mapping, v int32) (int32, int64) {
	start, end := g.EdgeRange(int(v))
	current := m.Parttab[v]
	scores := map[int32]int64{}
	for e := start; e < end; e++ {
		j := g.Edgetab[e]
		dj := m.Parttab[j]
		if dj == current {
			continue
		}
		load := g.EdgeLoad(e)
		du := m.Domntab[current]
		dv := m.Domntab[dj]
		dist := int64(m.Arch.DomDist(du, dv))
		scores[dj] += load * dist
	}
	var best int32 = current
	var bestScore int64
	for d := range scores {
		// Net gain: v's edge cost from its current domain minus its edge
		// cost from d, over all of v's edges.
		var gain int64
		for e := start; e < end; e++ {
			dj := m.Domntab[m.Parttab[g.Edgetab[e]]]
			gain += g.EdgeLoad(e) * int64(m.Arch.DomDist(m.Domntab[current], dj)-m.Arch.DomDist(m.Domntab[d], dj))
		}
		if gain > bestScore {
			best, bestScore = d, gain
		}
	}
	return best, bestScore
}
