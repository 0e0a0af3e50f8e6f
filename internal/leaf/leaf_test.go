package leaf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/arch"
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/mapping"
	"github.com/yourusername/scotch/internal/strat"
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

func TestGreedyGrowProducesLegalBipartition(t *testing.T) {
	g := mustGraph(t, square4)
	b := active.NewBgraph(g, 0.5)
	c := ctx.New(ctx.WithSeed(1))
	require.NoError(t, GreedyGrowMethod(c)(b, nil))
	seen0, seen1 := false, false
	for _, p := range b.Parttab {
		if p == 0 {
			seen0 = true
		} else {
			seen1 = true
		}
	}
	assert.True(t, seen0 && seen1)
}

func TestExhaustiveFindsOptimalOnSmallGraph(t *testing.T) {
	g := mustGraph(t, square4)
	b := active.NewBgraph(g, 0.5)
	c := ctx.New(ctx.WithSeed(2))
	require.NoError(t, ExhaustiveMethod(c)(b, nil))
	assert.True(t, b.WithinEnvelope())
	assert.LessOrEqual(t, b.Commload, int64(4))
}

func TestZeroMethodAssignsAllToPartZero(t *testing.T) {
	g := mustGraph(t, square4)
	b := active.NewBgraph(g, 0.5)
	require.NoError(t, ZeroMethod()(b, nil))
	for _, p := range b.Parttab {
		assert.Equal(t, int32(0), p)
	}
}

func TestGreedySeparatorProducesNonEmptySeparator(t *testing.T) {
	g := mustGraph(t, square4)
	v := active.NewVgraph(g)
	c := ctx.New(ctx.WithSeed(3))
	require.NoError(t, GreedySeparatorMethod(c)(v, nil))
	assert.NotEmpty(t, v.Frontab)
}

func TestThinRemovesSinglesidedSeparatorVertices(t *testing.T) {
	g := mustGraph(t, square4)
	v := active.NewVgraph(g)
	// Vertex 1's only neighbors (0, 3) both sit in part 0: it does not
	// need to be in the separator.
	v.Parttab = []int32{0, 2, 1, 0}
	v.Refresh()
	require.NoError(t, ThinMethod()(v, nil))
	assert.Equal(t, int32(0), v.Parttab[1])
}

func TestMinimumDegreeProducesFullPermutation(t *testing.T) {
	g := mustGraph(t, square4)
	perm := MinimumDegree(g)
	assert.ElementsMatch(t, []int32{0, 1, 2, 3}, perm)
}

func TestNaturalOrderIsIdentity(t *testing.T) {
	g := mustGraph(t, square4)
	perm := NaturalOrder(g)
	assert.Equal(t, []int32{0, 1, 2, 3}, perm)
}

func TestDualRecursiveBipartitionAssignsEveryVertex(t *testing.T) {
	g := mustGraph(t, square4)
	a := arch.NewComplete(4)
	m := mapping.New(g, a)
	k := active.NewKgraph(g, m)
	c := ctx.New(ctx.WithSeed(4))

	require.NoError(t, DualRecursiveBipartitionMethod(c)(k, nil))
	for _, p := range k.Mapping.Parttab {
		assert.True(t, int(p) >= 0 && int(p) < len(k.Mapping.Domntab))
	}
}

func TestKWayFMRejectsNonKgraph(t *testing.T) {
	g := mustGraph(t, square4)
	b := active.NewBgraph(g, 0.5)
	err := KWayFMMethod()(b, &strat.Params{})
	assert.Error(t, err)
}
