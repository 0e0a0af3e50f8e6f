package refine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/graph"
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

func TestFMBipartNeverWorsensCommload(t *testing.T) {
	g := mustGraph(t, square4)
	b := active.NewBgraph(g, 0.5)
	b.Parttab = []int32{0, 1, 0, 1}
	b.Refresh()
	start := b.Commload

	err := FMBipartMethod()(b, &strat.Params{Nums: map[string]float64{"pass": 5, "move": 4}})
	require.NoError(t, err)
	assert.LessOrEqual(t, b.Commload, start)
	assert.True(t, b.WithinEnvelope())
}

func TestFMBipartRejectsNonBgraph(t *testing.T) {
	g := mustGraph(t, square4)
	v := active.NewVgraph(g)
	err := FMBipartMethod()(v, nil)
	assert.Error(t, err)
}

func TestFMSeparatorShrinksOrHoldsSeparator(t *testing.T) {
	g := mustGraph(t, square4)
	v := active.NewVgraph(g)
	v.Parttab = []int32{0, 2, 1, 2}
	v.Refresh()
	start := len(v.Frontab)

	err := FMSeparatorMethod()(v, &strat.Params{Nums: map[string]float64{"pass": 3, "move": 4}})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(v.Frontab), start)
}

func TestDiffusionProducesValidBipartition(t *testing.T) {
	g := mustGraph(t, square4)
	b := active.NewBgraph(g, 0.5)
	b.Parttab = []int32{0, 0, 1, 1}
	b.Refresh()

	err := DiffusionMethod()(b, &strat.Params{Nums: map[string]float64{"pass": 10}})
	require.NoError(t, err)
	for _, p := range b.Parttab {
		assert.True(t, p == 0 || p == 1)
	}
}
