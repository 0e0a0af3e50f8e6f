package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square4 is a 4-cycle: 0-1, 1-3, 3-2, 2-0, unit loads, baseval 0.
const square4 = "0 4 8 0 000\n" +
	"2 1 2\n" +
	"2 0 3\n" +
	"2 0 3\n" +
	"2 1 2\n"

func TestReadGraphFileBasic(t *testing.T) {
	g, err := ReadGraphFile(strings.NewReader(square4))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumVertices())
	assert.Equal(t, 4, g.NumEdges())
	assert.Equal(t, []int32{1, 2}, g.Neighbors(0))
}

func TestReadGraphFileRejectsSelfLoop(t *testing.T) {
	src := "0 1 1 0 000\n1 0\n"
	_, err := ReadGraphFile(strings.NewReader(src))
	assert.Error(t, err)
}

func TestReadGraphFileRejectsAsymmetricEdge(t *testing.T) {
	src := "0 2 2 0 010\n1 1 5\n1 0 9\n"
	_, err := ReadGraphFile(strings.NewReader(src))
	assert.Error(t, err)
}

func TestReadGraphFileWithBasevalOne(t *testing.T) {
	src := "0 4 8 1 000\n" +
		"2 2 3\n" +
		"2 1 4\n" +
		"2 1 4\n" +
		"2 2 3\n"
	g, err := ReadGraphFile(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []int32{2, 3}, g.Neighbors(1))
}

func TestWriteGraphFileRoundTrips(t *testing.T) {
	g, err := ReadGraphFile(strings.NewReader(square4))
	require.NoError(t, err)
	var buf strings.Builder
	require.NoError(t, WriteGraphFile(&buf, g))
	g2, err := ReadGraphFile(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, g.NumVertices(), g2.NumVertices())
	assert.Equal(t, g.NumEdges(), g2.NumEdges())
	for i := 0; i < g.NumVertices(); i++ {
		assert.ElementsMatch(t, g.Neighbors(i), g2.Neighbors(i))
	}
}

func TestCalculateEdgeCutSquare(t *testing.T) {
	g, err := ReadGraphFile(strings.NewReader(square4))
	require.NoError(t, err)
	part := []int32{0, 1, 0, 1}
	assert.Equal(t, int64(2), CalculateEdgeCut(g, part))

	part2 := []int32{0, 0, 1, 1}
	assert.Equal(t, int64(2), CalculateEdgeCut(g, part2))
}

func TestCheckPassesForWellFormedGraph(t *testing.T) {
	g, err := ReadGraphFile(strings.NewReader(square4))
	require.NoError(t, err)
	assert.NoError(t, g.Check())
}

func TestRefreshComputesDegrmaxAndSums(t *testing.T) {
	g, err := ReadGraphFile(strings.NewReader(square4))
	require.NoError(t, err)
	assert.Equal(t, int64(2), g.Degrmax)
	assert.Equal(t, int64(4), g.Velosum)
	assert.Equal(t, int64(4), g.Edlosum)
}

func TestPartitionBalance(t *testing.T) {
	g, err := ReadGraphFile(strings.NewReader(square4))
	require.NoError(t, err)
	part := []int32{0, 0, 1, 1}
	min, max, avg := CalculatePartitionBalance(g, part, 2)
	assert.Equal(t, 2.0, min)
	assert.Equal(t, 2.0, max)
	assert.Equal(t, 2.0, avg)
}

func TestNewGraphFromCompactCSR(t *testing.T) {
	verttab := []int32{0, 1, 2, 3, 4}
	edgetab := []int32{1, 0, 3, 2}
	g := NewGraph(verttab, edgetab)
	assert.Equal(t, 4, g.NumVertices())
	assert.Equal(t, []int32{1}, g.Neighbors(0))
}
