// Package coarsen implements the matching and coarse-graph construction
// steps of the multilevel driver (spec.md §4.2 steps 2 and 4), shared by
// every instantiation (mapping, bipartitioning, nested-dissection
// ordering) of the coarsen/solve/uncoarsen recursion in internal/active.
//
// Grounded on spec §4.2 directly; no example repo in the retrieval pack
// implements graph coarsening, so the package shape (plain functions over
// internal/graph.Graph, no interfaces) follows internal/graph's own style
// rather than a borrowed one.
package coarsen

import (
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/rng"
)

// Policy selects the matching heuristic of spec §4.2's `type` parameter.
type Policy int

const (
	// HeavyEdge matches each unmatched vertex with the unmatched neighbor
	// reachable by the heaviest-load edge.
	HeavyEdge Policy = iota
	// Supernode matches adjacent vertices sharing an identical adjacency
	// signature (same neighbor set apart from each other), collapsing
	// structurally redundant vertices.
	Supernode
	// Network scores candidates by the number of common neighbors already
	// matched into the same multinode, favoring locality.
	Network
)

// Match walks g's vertices in a randomized-but-deterministic order (spec
// §4.2 step 2) and pairs each unmatched vertex with the best unmatched
// neighbor under policy. Isolated or otherwise unpaired vertices mate with
// themselves. The returned matetab satisfies matetab[matetab[i]] == i for
// every i, and coarvertnbr counts the resulting multinodes.
func Match(g *graph.Graph, policy Policy, r *rng.Source) (matetab []int32, coarvertnbr int) {
	n := g.NumVertices()
	matetab = make([]int32, n)
	matched := make([]bool, n)
	for i := range matetab {
		matetab[i] = -1
	}

	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	r.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, vi := range order {
		v := int(vi)
		if matched[v] {
			continue
		}
		best, ok := bestCandidate(g, v, matched, policy)
		if !ok {
			// No unmatched neighbor: self-mate as the fallback (spec
			// §4.2 step 2, "isolated vertices mate with themselves").
			matetab[v] = int32(v)
			matched[v] = true
			coarvertnbr++
			continue
		}
		matetab[v] = int32(best)
		matetab[best] = int32(v)
		matched[v] = true
		matched[best] = true
		coarvertnbr++
	}
	return matetab, coarvertnbr
}

func bestCandidate(g *graph.Graph, v int, matched []bool, policy Policy) (int, bool) {
	switch policy {
	case Supernode:
		return bestSupernode(g, v, matched)
	case Network:
		return bestNetwork(g, v, matched)
	default:
		return bestHeavyEdge(g, v, matched)
	}
}

// bestHeavyEdge picks the unmatched neighbor reached by the
// heaviest-load edge, breaking ties by lowest vertex index for
// determinism.
func bestHeavyEdge(g *graph.Graph, v int, matched []bool) (int, bool) {
	start, end := g.EdgeRange(v)
	best := -1
	var bestLoad int64 = -1
	for e := start; e < end; e++ {
		j := int(g.Edgetab[e])
		if j == v || matched[j] {
			continue
		}
		load := g.EdgeLoad(e)
		if load > bestLoad || (load == bestLoad && (best == -1 || j < best)) {
			best = j
			bestLoad = load
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// bestSupernode picks the unmatched neighbor j whose neighbor set, apart
// from v, is identical to v's apart from j (same adjacency signature), so
// structurally redundant vertices collapse together. Falls back to the
// heavy-edge heuristic if no exact match exists among v's unmatched
// neighbors.
func bestSupernode(g *graph.Graph, v int, matched []bool) (int, bool) {
	sig := neighborSet(g, v)
	start, end := g.EdgeRange(v)
	for e := start; e < end; e++ {
		j := int(g.Edgetab[e])
		if j == v || matched[j] {
			continue
		}
		// N(j) minus v plus j equals N(v) exactly when N(v)\{j} == N(j)\{v}.
		nj := neighborSet(g, j)
		delete(nj, int32(v))
		nj[int32(j)] = struct{}{}
		if sameSignature(sig, nj) {
			return j, true
		}
	}
	return bestHeavyEdge(g, v, matched)
}

func neighborSet(g *graph.Graph, v int) map[int32]struct{} {
	start, end := g.EdgeRange(v)
	set := make(map[int32]struct{}, end-start)
	for e := start; e < end; e++ {
		set[g.Edgetab[e]] = struct{}{}
	}
	return set
}

func sameSignature(a, b map[int32]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// bestNetwork scores unmatched neighbors by their count of common
// neighbors with v (shared local structure), breaking ties by edge load
// then lowest vertex index.
func bestNetwork(g *graph.Graph, v int, matched []bool) (int, bool) {
	sig := neighborSet(g, v)
	start, end := g.EdgeRange(v)
	best := -1
	bestScore := -1
	var bestLoad int64 = -1
	for e := start; e < end; e++ {
		j := int(g.Edgetab[e])
		if j == v || matched[j] {
			continue
		}
		score := commonNeighbors(sig, g, j)
		load := g.EdgeLoad(e)
		if score > bestScore || (score == bestScore && load > bestLoad) ||
			(score == bestScore && load == bestLoad && (best == -1 || j < best)) {
			best, bestScore, bestLoad = j, score, load
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func commonNeighbors(sig map[int32]struct{}, g *graph.Graph, j int) int {
	start, end := g.EdgeRange(j)
	count := 0
	for e := start; e < end; e++ {
		if _, ok := sig[g.Edgetab[e]]; ok {
			count++
		}
	}
	return count
}
