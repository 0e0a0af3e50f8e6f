package coarsen

import "github.com/yourusername/scotch/internal/graph"

// Multinode records the one or two fine vertices a coarse vertex
// represents (spec §4.2 step 4 "multtab"). Second == First for a
// self-mated (unpaired) fine vertex.
type Multinode struct {
	First, Second int32
}

// Build constructs the coarse graph implied by matetab/coarvertnbr (spec
// §4.2 step 4): each multinode becomes one coarse vertex whose load is
// the sum of its constituents' loads; coarse edges are the aggregated,
// load-summed image of fine edges between distinct multinodes; edges
// internal to a multinode would become self-loops and are dropped, so the
// total vertex load is conserved and the total edge load shrinks by the
// load of the internal edges. The returned multtab is indexed by coarse
// vertex and retained for Project.
func Build(g *graph.Graph, matetab []int32, coarvertnbr int) (coarse *graph.Graph, multtab []Multinode) {
	n := g.NumVertices()
	coarseOf := make([]int32, n)
	multtab = make([]Multinode, 0, coarvertnbr)

	for i := 0; i < n; i++ {
		mate := int(matetab[i])
		if mate < i {
			continue // already assigned when its mate was visited
		}
		ci := int32(len(multtab))
		coarseOf[i] = ci
		coarseOf[mate] = ci
		multtab = append(multtab, Multinode{First: int32(i), Second: int32(mate)})
	}

	velotab := make([]int32, coarvertnbr)
	// edgeAgg[c] maps a coarse neighbor to its accumulated edge load, kept
	// per coarse vertex while its row is being built and reset between
	// rows (spec §4.2 step 4 "coarse edges are aggregated").
	edgeAgg := make(map[int32]int64, 8)
	verttab := make([]int32, coarvertnbr+1)
	var edgetab []int32
	var edlotab []int32

	for ci, mn := range multtab {
		for k := range edgeAgg {
			delete(edgeAgg, k)
		}
		var selfLoad int64
		for _, fi := range distinctPair(mn) {
			selfLoad += g.VertexLoad(int(fi))
			start, end := g.EdgeRange(int(fi))
			for e := start; e < end; e++ {
				j := g.Edgetab[e]
				load := g.EdgeLoad(e)
				cj := coarseOf[j]
				if cj == int32(ci) {
					// Internal edge: dropped rather than becoming a
					// self-loop; its load is not added to the coarse
					// vertex's load, so vertex-load conservation holds.
					continue
				}
				edgeAgg[cj] += load
			}
		}
		velotab[ci] = int32(selfLoad)

		verttab[ci] = int32(len(edgetab))
		for cj, load := range edgeAgg {
			edgetab = append(edgetab, cj)
			edlotab = append(edlotab, int32(load))
		}
	}
	verttab[coarvertnbr] = int32(len(edgetab))

	coarse = &graph.Graph{
		Verttab: verttab,
		Vendtab: verttab[1:],
		Edgetab: edgetab,
		Velotab: velotab,
		Edlotab: edlotab,
		VertOwn: graph.Owned,
		EdgeOwn: graph.Owned,
	}
	coarse.Refresh()
	return coarse, multtab
}

func distinctPair(mn Multinode) []int32 {
	if mn.First == mn.Second {
		return []int32{mn.First}
	}
	return []int32{mn.First, mn.Second}
}

// ProjectInt32 copies each coarse vertex's int32 result (part index,
// domain index, ordering range id, ...) to both of its fine endpoints
// (spec §4.2 step 6). Callers must rebuild any derived state (frontab,
// loads, commload) from scratch afterward rather than trust the
// projected boundary sets.
func ProjectInt32(multtab []Multinode, coarseVal []int32, fineVal []int32) {
	for ci, mn := range multtab {
		v := coarseVal[ci]
		fineVal[mn.First] = v
		fineVal[mn.Second] = v
	}
}
