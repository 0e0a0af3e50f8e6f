package active

import (
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/mapping"
	"github.com/yourusername/scotch/internal/strat"
)

// Kgraph is the k-way active graph: a graph plus a Mapping (spec §3
// "K-way active graph"). Optional Pfixtax marks fixed vertices.
type Kgraph struct {
	Graph   *graph.Graph
	Mapping *mapping.Mapping
}

// NewKgraph builds a Kgraph from g and an already-constructed Mapping.
func NewKgraph(g *graph.Graph, m *mapping.Mapping) *Kgraph {
	k := &Kgraph{Graph: g, Mapping: m}
	k.Refresh()
	return k
}

// Refresh rebuilds the Mapping's cached fields from scratch.
func (k *Kgraph) Refresh() {
	k.Mapping.Refresh(k.Graph)
}

func (k *Kgraph) Attr(name string) (float64, bool) {
	switch name {
	case "vert":
		return float64(k.Graph.NumVertices()), true
	case "edge":
		return float64(k.Graph.NumEdges()), true
	case "load":
		return float64(k.Graph.Velosum), true
	case "commload":
		return float64(k.Mapping.Commload), true
	case "fronnbr":
		return float64(k.Mapping.Fronnbr), true
	default:
		return 0, false
	}
}

type kgraphSnapshot struct {
	parttab     []int32
	domntab     int // length only; domains themselves are immutable once assigned
	commload    int64
	fronnbr     int
	comploaddlt []float64
}

func (k *Kgraph) Snapshot() any {
	return kgraphSnapshot{
		parttab:     append([]int32(nil), k.Mapping.Parttab...),
		domntab:     len(k.Mapping.Domntab),
		commload:    k.Mapping.Commload,
		fronnbr:     k.Mapping.Fronnbr,
		comploaddlt: append([]float64(nil), k.Mapping.Comploaddlt...),
	}
}

func (k *Kgraph) Restore(snap any) {
	s := snap.(kgraphSnapshot)
	k.Mapping.Parttab = s.parttab
	k.Mapping.Commload = s.commload
	k.Mapping.Fronnbr = s.fronnbr
	k.Mapping.Comploaddlt = s.comploaddlt
}

// Objective implements the Kgraph row of spec §4.1's selection table:
// "commload" primary, "total |comploaddlt[p]|" secondary.
func (k *Kgraph) Objective() (primary, secondary float64) {
	primary = float64(k.Mapping.Commload)
	var total float64
	for _, d := range k.Mapping.Comploaddlt {
		if d < 0 {
			d = -d
		}
		total += d
	}
	return primary, total
}

var _ strat.Active = (*Kgraph)(nil)
