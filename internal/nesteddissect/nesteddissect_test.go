package nesteddissect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/graph"
	"github.com/yourusername/scotch/internal/leaf"
	"github.com/yourusername/scotch/internal/strat"
)

// path6 is a 6-vertex path: 0-1-2-3-4-5, unit loads, baseval 0.
const path6 = "0 6 10 0 000\n" +
	"1 1\n" +
	"2 0 2\n" +
	"2 1 3\n" +
	"2 2 4\n" +
	"2 3 5\n" +
	"1 4\n"

func mustGraph(t *testing.T, src string) *graph.Graph {
	t.Helper()
	g, err := graph.ReadGraphFile(strings.NewReader(src))
	require.NoError(t, err)
	return g
}

func TestBuildWithoutSeparationOrdersDirectly(t *testing.T) {
	g := mustGraph(t, path6)
	c := ctx.New(ctx.WithSeed(1))
	o := Build(c, g, Config{MinVertices: 100})
	require.NoError(t, o.Check())
	assert.True(t, o.Root.IsLeaf())
}

func TestBuildWithSeparationProducesValidPermutation(t *testing.T) {
	g := mustGraph(t, path6)
	c := ctx.New(ctx.WithSeed(2))
	registry := strat.Registry{
		"gp":   leaf.GreedySeparatorMethod(c),
		"thin": leaf.ThinMethod(),
	}
	sepStrat, err := strat.Parse("gp thin")
	require.NoError(t, err)

	o := Build(c, g, Config{
		SepStrat:    sepStrat,
		Registry:    registry,
		MinVertices: 1,
	})
	require.NoError(t, o.Check())
	assert.False(t, o.Root.IsLeaf())
}

func TestBuildFallsBackToLeafOnDegenerateSeparation(t *testing.T) {
	g := mustGraph(t, path6)
	c := ctx.New(ctx.WithSeed(3))
	registry := strat.Registry{"zr": leaf.ZeroMethod()}
	sepStrat, err := strat.Parse("zr")
	require.NoError(t, err)

	o := Build(c, g, Config{
		SepStrat:    sepStrat,
		Registry:    registry,
		MinVertices: 1,
	})
	require.NoError(t, o.Check())
	assert.True(t, o.Root.IsLeaf())
}
