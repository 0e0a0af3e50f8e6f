package leaf

import "github.com/yourusername/scotch/internal/graph"

// MinimumDegree computes a fill-reducing elimination order over g (spec
// §4.4 "minimum-degree / minimum-fill ordering on the uncovered
// residual"): repeatedly eliminates the remaining vertex of lowest
// current degree, connecting its surviving neighbors into a clique (the
// classical minimum-degree elimination-graph update) before continuing.
// Returns a permutation of g's 0-based vertex indices, g.NumVertices()
// long, in elimination order.
func MinimumDegree(g *graph.Graph) []int32 {
	n := g.NumVertices()
	adj := make([]map[int32]struct{}, n)
	for i := 0; i < n; i++ {
		start, end := g.EdgeRange(i)
		set := make(map[int32]struct{}, end-start)
		for e := start; e < end; e++ {
			set[g.Edgetab[e]] = struct{}{}
		}
		adj[i] = set
	}
	eliminated := make([]bool, n)
	order := make([]int32, 0, n)

	for step := 0; step < n; step++ {
		best := int32(-1)
		bestDeg := -1
		for i := 0; i < n; i++ {
			if eliminated[i] {
				continue
			}
			d := len(adj[i])
			if best == -1 || d < bestDeg || (d == bestDeg && int32(i) < best) {
				best, bestDeg = int32(i), d
			}
		}
		if best == -1 {
			break
		}
		eliminated[best] = true
		order = append(order, best)

		neighbors := make([]int32, 0, len(adj[best]))
		for j := range adj[best] {
			if !eliminated[j] {
				neighbors = append(neighbors, j)
			}
		}
		for _, j := range neighbors {
			delete(adj[j], best)
			for _, k := range neighbors {
				if j != k {
					adj[j][k] = struct{}{}
				}
			}
		}
	}
	return order
}

// NaturalOrder returns the identity permutation (spec §4.4 "fallback
// 'simple' ordering that just emits vertices in natural order").
func NaturalOrder(g *graph.Graph) []int32 {
	n := g.NumVertices()
	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	return order
}
