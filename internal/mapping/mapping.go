// Package mapping implements the Mapping object of spec.md §3: "a
// domntab of architecture domains plus parttab[i] indexing into it",
// shared by internal/active's Kgraph and re-exported by the root package
// for public API use.
package mapping

import (
	"github.com/yourusername/scotch/internal/arch"
	"github.com/yourusername/scotch/internal/graph"
)

// Mapping assigns each vertex of a Graph to a domain of a target
// architecture (spec §3). It is the shared state threaded through k-way
// active graph refinement (internal/active.Kgraph).
type Mapping struct {
	Arch arch.Arch

	Domntab []arch.Dom // the domains terminals/parts may be mapped onto
	Parttab []int32    // Parttab[i] indexes into Domntab for vertex i

	// Pfixtax optionally pins vertices to a terminal: Pfixtax[i] >= 0
	// locks vertex i to that terminal, -1 means free (spec §3).
	Pfixtax []int32

	// Cached aggregate state, recomputed by Refresh.
	Comploadrat float64   // average load ratio across domains
	Comploaddlt []float64 // per-domain load imbalance (load - average)
	Fronnbr     int
	Frontab     []int32 // boundary vertices: >=1 neighbor in a different domain
	Commload    int64
	Commloadavg float64
}

// New builds an initial (unmapped) Mapping over g for architecture a,
// with every vertex assigned to Domntab[0] (the architecture's root
// domain) until a solver assigns terminals.
func New(g *graph.Graph, a arch.Arch) *Mapping {
	root := a.DomFrst()
	parttab := make([]int32, g.NumVertices())
	return &Mapping{
		Arch:    a,
		Domntab: []arch.Dom{root},
		Parttab: parttab,
	}
}

// Refresh recomputes Fronnbr, Frontab, Commload, Comploaddlt, and
// Comploadrat from the current Parttab against g. Any direct mutation of
// Parttab must be followed by Refresh before the cached fields are
// trusted again (spec §4.2 step 6: "rebuild derived state from scratch —
// do not trust projected boundary sets").
func (m *Mapping) Refresh(g *graph.Graph) {
	n := g.NumVertices()
	domLoad := make([]int64, len(m.Domntab))
	frontab := make([]int32, 0)

	var commload int64
	for i := 0; i < n; i++ {
		domLoad[m.Parttab[i]] += g.VertexLoad(i)
		start, end := g.EdgeRange(i)
		isBoundary := false
		for e := start; e < end; e++ {
			j := g.Edgetab[e]
			if m.Parttab[i] != m.Parttab[j] {
				isBoundary = true
				du := m.Domntab[m.Parttab[i]]
				dv := m.Domntab[m.Parttab[j]]
				commload += g.EdgeLoad(e) * int64(m.Arch.DomDist(du, dv))
			}
		}
		if isBoundary {
			frontab = append(frontab, int32(i))
		}
	}
	m.Frontab = frontab
	m.Fronnbr = len(frontab)
	m.Commload = commload / 2
	m.Commloadavg = float64(m.Commload)

	var totalWght int64
	for _, d := range m.Domntab {
		totalWght += m.Arch.DomWght(d)
	}
	comploaddlt := make([]float64, len(m.Domntab))
	if totalWght > 0 {
		avg := float64(g.Velosum) / float64(totalWght)
		m.Comploadrat = avg
		for p, d := range m.Domntab {
			target := avg * float64(m.Arch.DomWght(d))
			comploaddlt[p] = float64(domLoad[p]) - target
		}
	}
	m.Comploaddlt = comploaddlt
}

// CommLoad returns the dilation-weighted communication cost of the
// current mapping (spec §8 "Commload consistency").
func (m *Mapping) CommLoad() int64 { return m.Commload }
