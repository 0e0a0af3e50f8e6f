package active

import (
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/strat"
)

// Vgraph is the vertex-separator active object: three parts, 2 being the
// separator (spec §3 "Vertex-separator graph").
type Vgraph struct {
	Graph *graph.Graph

	Parttab []int32 // {0, 1, 2}; 2 = separator
	Frontab []int32 // the separator vertices

	Compload [3]int64
	Compsize [3]int

	// Comploaddlt is the dual-weight imbalance w1*l0 - w0*l1 (spec §3).
	Comploaddlt float64
	Wght        [2]float64 // w0, w1: target relative weight of parts 0 and 1
}

// NewVgraph builds a Vgraph with every vertex initially in part 0.
func NewVgraph(g *graph.Graph) *Vgraph {
	v := &Vgraph{
		Graph:   g,
		Parttab: make([]int32, g.NumVertices()),
		Wght:    [2]float64{1, 1},
	}
	v.Refresh()
	return v
}

// Refresh recomputes Compload, Compsize, Frontab, and Comploaddlt from
// scratch (spec §4.2 step 6, §8 "Frontier exactness").
func (v *Vgraph) Refresh() {
	g := v.Graph
	n := g.NumVertices()
	var compload [3]int64
	var compsize [3]int
	frontab := make([]int32, 0)

	for i := 0; i < n; i++ {
		p := v.Parttab[i]
		compload[p] += g.VertexLoad(i)
		compsize[p]++
		if p == 2 {
			frontab = append(frontab, int32(i))
		}
	}
	v.Compload = compload
	v.Compsize = compsize
	v.Frontab = frontab
	v.Comploaddlt = v.Wght[1]*float64(compload[0]) - v.Wght[0]*float64(compload[1])
}

// Move reassigns vertex i to part p in place (p in {0,1,2}).
func (v *Vgraph) Move(i int32, p int32) {
	old := v.Parttab[i]
	load := v.Graph.VertexLoad(int(i))
	v.Compload[old] -= load
	v.Compsize[old]--
	v.Compload[p] += load
	v.Compsize[p]++
	v.Parttab[i] = p
	v.Comploaddlt = v.Wght[1]*float64(v.Compload[0]) - v.Wght[0]*float64(v.Compload[1])
}

func (v *Vgraph) Attr(name string) (float64, bool) {
	switch name {
	case "vert":
		return float64(v.Graph.NumVertices()), true
	case "edge":
		return float64(v.Graph.NumEdges()), true
	case "load":
		return float64(v.Graph.Velosum), true
	case "fronnbr":
		return float64(len(v.Frontab)), true
	default:
		return 0, false
	}
}

type vgraphSnapshot struct {
	parttab     []int32
	compload    [3]int64
	compsize    [3]int
	comploaddlt float64
}

func (v *Vgraph) Snapshot() any {
	return vgraphSnapshot{
		parttab:     append([]int32(nil), v.Parttab...),
		compload:    v.Compload,
		compsize:    v.Compsize,
		comploaddlt: v.Comploaddlt,
	}
}

func (v *Vgraph) Restore(snap any) {
	s := snap.(vgraphSnapshot)
	v.Parttab = s.parttab
	v.Compload = s.compload
	v.Compsize = s.compsize
	v.Comploaddlt = s.comploaddlt
}

// Objective implements the Vgraph row of spec §4.1's selection table:
// "fronnbr (separator size)" primary, "|comploaddlt|" secondary.
func (v *Vgraph) Objective() (primary, secondary float64) {
	primary = float64(len(v.Frontab))
	secondary = v.Comploaddlt
	if secondary < 0 {
		secondary = -secondary
	}
	return primary, secondary
}

var _ strat.Active = (*Vgraph)(nil)
