package coarsen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/rng"
)

// square4 is a 4-cycle: 0-1, 1-3, 3-2, 2-0, unit loads, baseval 0.
const square4 = "0 4 8 0 000\n" +
	"2 1 2\n" +
	"2 0 3\n" +
	"2 0 3\n" +
	"2 1 2\n"

func mustGraph(t *testing.T, src string) *graph.Graph {
	t.Helper()
	g, err := graph.ReadGraphFile(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func TestMatchProducesValidInvolution(t *testing.T) {
	g := mustGraph(t, square4)
	matetab, coarvertnbr := Match(g, HeavyEdge, rng.New(1))
	for i, m := range matetab {
		require.Equal(t, int32(i), matetab[m], "matetab must be an involution")
	}
	assert.Equal(t, 2, coarvertnbr)
}

func TestMatchIsolatedVertexSelfMates(t *testing.T) {
	// Two isolated vertices, no edges at all.
	src := "0 2 0 0 000\n0\n0\n"
	g := mustGraph(t, src)
	matetab, coarvertnbr := Match(g, HeavyEdge, rng.New(7))
	assert.Equal(t, int32(0), matetab[0])
	assert.Equal(t, int32(1), matetab[1])
	assert.Equal(t, 2, coarvertnbr)
}

func TestBuildPreservesTotalVertexLoad(t *testing.T) {
	g := mustGraph(t, square4)
	matetab, coarvertnbr := Match(g, HeavyEdge, rng.New(3))
	coarse, multtab := Build(g, matetab, coarvertnbr)

	assert.Len(t, multtab, coarvertnbr)
	var fineTotal, coarseTotal int64
	for i := 0; i < g.NumVertices(); i++ {
		fineTotal += g.VertexLoad(i)
	}
	for i := 0; i < coarse.NumVertices(); i++ {
		coarseTotal += coarse.VertexLoad(i)
	}
	assert.Equal(t, fineTotal, coarseTotal)
}

func TestBuildCoarseGraphStaysSymmetric(t *testing.T) {
	g := mustGraph(t, square4)
	matetab, coarvertnbr := Match(g, HeavyEdge, rng.New(5))
	coarse, _ := Build(g, matetab, coarvertnbr)
	assert.NoError(t, coarse.Check())
}

func TestProjectInt32CopiesToBothEndpoints(t *testing.T) {
	multtab := []Multinode{{First: 0, Second: 2}, {First: 1, Second: 3}}
	coarseVal := []int32{5, 9}
	fineVal := make([]int32, 4)
	ProjectInt32(multtab, coarseVal, fineVal)
	assert.Equal(t, []int32{5, 9, 5, 9}, fineVal)
}

func TestMatchSupernodePolicyGroupsIdenticalNeighbors(t *testing.T) {
	// 0 and 1 both connect only to 2 and 3: identical signatures.
	src := "0 4 8 0 000\n" +
		"2 2 3\n" +
		"2 2 3\n" +
		"2 0 1\n" +
		"2 0 1\n"
	g := mustGraph(t, src)
	matetab, coarvertnbr := Match(g, Supernode, rng.New(2))
	assert.Equal(t, 2, coarvertnbr)
	for i, m := range matetab {
		assert.Equal(t, int32(i), matetab[m])
	}
}
