package scotch

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scotch/internal/arch"
	"github.com/yourusername/scotch/internal/coarsen"
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/rng"
)

// square4 is the 4-cycle 0-1, 1-3, 3-2, 2-0.
const square4 = "0 4 8 0 000\n" +
	"2 1 2\n" +
	"2 0 3\n" +
	"2 0 3\n" +
	"2 1 2\n"

// path6 is the 6-vertex path 0-1-2-3-4-5.
const path6 = "0 6 10 0 000\n" +
	"1 1\n" +
	"2 0 2\n" +
	"2 1 3\n" +
	"2 2 4\n" +
	"2 3 5\n" +
	"1 4\n"

// star6 is the star K_{1,5}: center 0, leaves 1..5.
const star6 = "0 6 10 0 000\n" +
	"5 1 2 3 4 5\n" +
	"1 0\n" +
	"1 0\n" +
	"1 0\n" +
	"1 0\n" +
	"1 0\n"

func mustReadGraph(t *testing.T, src string) *Graph {
	t.Helper()
	g, err := ReadGraphFile(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

// TestGraphPartOnSquareGridCutsExactlyTwoEdges exercises seed scenario 1:
// partitioning a 2x2 grid (a 4-cycle) into 2 parts admits two distinct
// optimal splits, both with edge cut 2.
func TestGraphPartOnSquareGridCutsExactlyTwoEdges(t *testing.T) {
	g := mustReadGraph(t, square4)
	part, err := GraphPart(g, 2, "")
	require.NoError(t, err)
	require.Len(t, part, 4)

	counts := map[int32]int{}
	for _, p := range part {
		counts[p]++
	}
	assert.Len(t, counts, 2, "expected exactly two distinct parts")
	for _, n := range counts {
		assert.Equal(t, 2, n, "a 4-cycle split into 2 parts must balance 2/2")
	}

	cut := CalculateEdgeCut(g, part)
	assert.Equal(t, int64(2), cut)
}

// TestGraphOrderOnPathProducesValidPermutation exercises seed scenario 2:
// nested-dissection ordering of a path graph must yield a valid
// permutation of its vertices, however the separator recursion chooses
// to split it.
func TestGraphOrderOnPathProducesValidPermutation(t *testing.T) {
	g := mustReadGraph(t, path6)
	o, err := GraphOrder(g, "", 2)
	require.NoError(t, err)
	require.NoError(t, o.Check())

	perm := o.Permutation()
	require.Len(t, perm, 6)
	seen := make([]bool, 6)
	for _, v := range perm {
		require.GreaterOrEqual(t, v, int32(0))
		require.Less(t, v, int32(6))
		assert.False(t, seen[v], "vertex %d appears twice in the ordering", v)
		seen[v] = true
	}
}

// TestGraphPartOnStarCutsThreeOrFive exercises seed scenario 3: a star
// K_{1,5} partitioned into 2 parts either isolates the center (cut = 5,
// every leaf edge crosses) or groups the center with two leaves against
// the remaining three (cut = 3); no other balanced split is possible.
func TestGraphPartOnStarCutsThreeOrFive(t *testing.T) {
	g := mustReadGraph(t, star6)
	part, err := GraphPart(g, 2, "")
	require.NoError(t, err)
	require.Len(t, part, 6)

	cut := CalculateEdgeCut(g, part)
	assert.Contains(t, []int64{3, 5}, cut, "unexpected edge cut %d for a star bipartition", cut)
}

// TestStrategyParseExercisesCoarsenLeafAndRefine exercises seed scenario
// 4: the strategy string from spec's worked example must parse, and
// applying it to a connected graph of at least 20 vertices must succeed
// end to end (coarsening down through "h", refined on the way back up by
// "f").
func TestStrategyParseExercisesCoarsenLeafAndRefine(t *testing.T) {
	strategyStr := "m{vert=10,low=h{pass=5},asc=f{move=20,bal=0.05}}"
	s, err := ParseStrategy(strategyStr)
	require.NoError(t, err)
	require.NotNil(t, s)

	g := buildCycleGraph(t, 24)
	part, err := GraphPart(g, 2, strategyStr)
	require.NoError(t, err)
	assert.Len(t, part, 24)
}

// TestArchDistanceOnCompleteAndHypercube exercises seed scenario 5:
// architecture distance on a complete graph of 4 terminals is uniformly
// 1 between distinct terminals, while on a 2-dimensional hypercube (4
// terminals) it is the Hamming distance between terminal indices.
func TestArchDistanceOnCompleteAndHypercube(t *testing.T) {
	k4 := arch.NewComplete(4)
	t0, err := k4.DomTerm(0)
	require.NoError(t, err)
	t1, err := k4.DomTerm(1)
	require.NoError(t, err)
	t2, err := k4.DomTerm(2)
	require.NoError(t, err)
	assert.Equal(t, 1, k4.DomDist(t0, t1))
	assert.Equal(t, 1, k4.DomDist(t0, t2))
	assert.Equal(t, 0, k4.DomDist(t0, t0))

	hc := arch.NewHypercube(2)
	h0, err := hc.DomTerm(0) // 00
	require.NoError(t, err)
	h1, err := hc.DomTerm(1) // 01
	require.NoError(t, err)
	h2, err := hc.DomTerm(2) // 10
	require.NoError(t, err)
	h3, err := hc.DomTerm(3) // 11
	require.NoError(t, err)

	assert.Equal(t, 1, hc.DomDist(h0, h1), "terminals differing in one bit are distance 1 apart")
	assert.Equal(t, 1, hc.DomDist(h0, h2), "terminals differing in one bit are distance 1 apart")
	assert.Equal(t, 2, hc.DomDist(h0, h3), "terminals differing in both bits are distance 2 apart")
	assert.Equal(t, 1, hc.DomDist(h1, h3))
}

// TestMultilevelCoarseningRatioIsMonotone exercises seed scenario 6: on
// a synthetic mesh of at least 1000 vertices, default-parameter
// coarsening never lets a single level's vertex count grow past rat
// (0.8) of the prior level's, and reaches the vert=100 base-case
// threshold within the number of levels the ratio bound allows.
func TestMultilevelCoarseningRatioIsMonotone(t *testing.T) {
	const (
		gridSide = 32 // 1024 vertices
		vertStop = 100
		rat      = 0.8
	)
	g := buildGridGraph(gridSide, gridSide)
	require.Equal(t, gridSide*gridSide, g.NumVertices())

	source := rng.New(7)
	levels := 0
	n := g.NumVertices()
	for n > vertStop {
		matetab, coarvertnbr := coarsen.Match(g, coarsen.HeavyEdge, source)
		ratio := float64(coarvertnbr) / float64(n)
		require.LessOrEqualf(t, ratio, rat, "level %d: coarsening ratio %.3f exceeds %.2f", levels, ratio, rat)
		require.Less(t, coarvertnbr, n, "coarsening must strictly reduce vertex count on a mesh this size")

		coarse, _ := coarsen.Build(g, matetab, coarvertnbr)
		g = coarse
		n = g.NumVertices()
		levels++
		require.Less(t, levels, 1000, "coarsening failed to converge")
	}

	maxLevels := int(math.Ceil(math.Log(float64(gridSide*gridSide)/float64(vertStop)) / math.Log(1/rat)))
	assert.LessOrEqualf(t, levels, maxLevels, "took %d levels, expected at most %d", levels, maxLevels)
}

// buildCycleGraph returns an n-vertex cycle graph, unit loads, baseval 0.
func buildCycleGraph(t *testing.T, n int) *Graph {
	t.Helper()
	require.GreaterOrEqual(t, n, 3)
	verttab := make([]int32, n+1)
	edgetab := make([]int32, 0, 2*n)
	for v := 0; v < n; v++ {
		verttab[v] = int32(len(edgetab))
		prev := int32((v - 1 + n) % n)
		next := int32((v + 1) % n)
		edgetab = append(edgetab, prev, next)
	}
	verttab[n] = int32(len(edgetab))
	return NewGraph(verttab, edgetab)
}

// buildGridGraph returns a width x height 4-neighbor lattice graph, unit
// loads, baseval 0, vertex (x,y) numbered y*width+x.
func buildGridGraph(width, height int) *graph.Graph {
	n := width * height
	verttab := make([]int32, n+1)
	edgetab := make([]int32, 0, 4*n)
	idx := func(x, y int) int32 { return int32(y*width + x) }
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			verttab[idx(x, y)] = int32(len(edgetab))
			if x > 0 {
				edgetab = append(edgetab, idx(x-1, y))
			}
			if x < width-1 {
				edgetab = append(edgetab, idx(x+1, y))
			}
			if y > 0 {
				edgetab = append(edgetab, idx(x, y-1))
			}
			if y < height-1 {
				edgetab = append(edgetab, idx(x, y+1))
			}
		}
	}
	verttab[n] = int32(len(edgetab))
	return graph.NewGraph(verttab, edgetab)
}
