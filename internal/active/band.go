package active

import "github.com/yourusername/scotch/internal/graph"

// BuildBandBgraph restricts b to the vertices within graph-distance
// distmax of its current frontier, plus two anchor vertices (one per
// part) absorbing every edge to the non-band region with summed loads
// (spec §4.2 "Band restriction"). It returns the band Bgraph and an
// Apply function that copies a refined band partition back onto b
// vertex-by-vertex and fully recomputes b's cached counters.
//
// Per the Open Question resolution (spec §9): rather than incrementally
// patch commload/compload for anchor contributions, the full counters
// are always recomputed from scratch against the original graph after
// the band result is copied back — exactly what
// kgraph_map_bd.c's own comment describes ("communication costs have to
// be recomputed from scratch") and what this avoids is double-counting
// the anchors' synthetic edges.
func BuildBandBgraph(b *Bgraph, distmax int) (band *Bgraph, apply func()) {
	g := b.Graph
	n := g.NumVertices()
	dist := bfsMultiSource(g, b.Frontab, distmax)

	// bandOf[i] is the 0-based index within the band graph of fine
	// vertex i, or -1 if i is outside the band.
	bandOf := make([]int32, n)
	for i := range bandOf {
		bandOf[i] = -1
	}
	var members []int32
	for i := 0; i < n; i++ {
		if dist[i] >= 0 {
			bandOf[i] = int32(len(members))
			members = append(members, int32(i))
		}
	}

	anchorIdx := [2]int32{int32(len(members)), int32(len(members)) + 1}

	verttab := make([]int32, len(members)+2+1)
	var edgetab []int32
	var velotab []int32
	var edlotab []int32
	var anchorLoad [2]int64

	for bi, fi := range members {
		verttab[bi] = int32(len(edgetab))
		start, end := g.EdgeRange(int(fi))
		for e := start; e < end; e++ {
			j := g.Edgetab[e]
			load := g.EdgeLoad(e)
			if bandOf[j] >= 0 {
				edgetab = append(edgetab, bandOf[j])
				edlotab = append(edlotab, int32(load))
			} else {
				// Edge leaves the band: route it to the anchor of j's
				// part instead, accumulating load on the anchor vertex.
				part := b.Parttab[j]
				edgetab = append(edgetab, anchorIdx[part])
				edlotab = append(edlotab, int32(load))
				anchorLoad[part] += load
			}
		}
		velotab = append(velotab, int32(g.VertexLoad(int(fi))))
	}

	// Anchors connect back to every band vertex that had an edge routed
	// to them, with the same load, so the band graph stays symmetric.
	anchorEdges := [2][]int32{}
	anchorLoads := [2][]int32{}
	for bi, fi := range members {
		start, end := g.EdgeRange(int(fi))
		for e := start; e < end; e++ {
			j := g.Edgetab[e]
			if bandOf[j] < 0 {
				part := b.Parttab[j]
				anchorEdges[part] = append(anchorEdges[part], int32(bi))
				anchorLoads[part] = append(anchorLoads[part], int32(g.EdgeLoad(e)))
			}
		}
	}
	for p := 0; p < 2; p++ {
		verttab[anchorIdx[p]] = int32(len(edgetab))
		edgetab = append(edgetab, anchorEdges[p]...)
		edlotab = append(edlotab, anchorLoads[p]...)
		velotab = append(velotab, int32(anchorLoad[p]))
	}
	verttab[len(verttab)-1] = int32(len(edgetab))

	bandGraph := &graph.Graph{
		Verttab: verttab,
		Vendtab: verttab[1:],
		Edgetab: edgetab,
		Velotab: velotab,
		Edlotab: edlotab,
		VertOwn: graph.Owned,
		EdgeOwn: graph.Owned,
	}
	bandGraph.Refresh()

	bandPart := make([]int32, len(members)+2)
	for bi, fi := range members {
		bandPart[bi] = b.Parttab[fi]
	}
	bandPart[anchorIdx[0]] = 0
	bandPart[anchorIdx[1]] = 1

	band = &Bgraph{
		Graph:    bandGraph,
		Parttab:  bandPart,
		Domndist: b.Domndist,
	}
	band.Domnwght = b.Domnwght
	band.setEnvelope(0) // caller typically reassigns envelope bounds explicitly
	band.Compload0min = b.Compload0min
	band.Compload0max = b.Compload0max
	band.Compload0avg = b.Compload0avg
	band.Refresh()

	apply = func() {
		for bi, fi := range members {
			b.Parttab[fi] = band.Parttab[bi]
		}
		b.Refresh()
	}
	return band, apply
}

// bfsMultiSource returns, for each vertex, its graph distance to the
// nearest vertex in sources (capped at distmax), or -1 if farther than
// distmax (or unreachable).
func bfsMultiSource(g *graph.Graph, sources []int32, distmax int) []int {
	n := g.NumVertices()
	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	queue := make([]int32, 0, len(sources))
	for _, s := range sources {
		if dist[s] < 0 {
			dist[s] = 0
			queue = append(queue, s)
		}
	}
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		d := dist[v]
		if d >= distmax {
			continue
		}
		start, end := g.EdgeRange(int(v))
		for e := start; e < end; e++ {
			j := g.Edgetab[e]
			if dist[j] < 0 {
				dist[j] = d + 1
				queue = append(queue, j)
			}
		}
	}
	return dist
}
