package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndBestReturnsHighestGain(t *testing.T) {
	tb := NewTable(10)
	tb.Insert(1, 3)
	tb.Insert(2, 7)
	tb.Insert(3, -2)
	v, g, ok := tb.Best()
	require.True(t, ok)
	assert.Equal(t, int32(2), v)
	assert.Equal(t, 7, g)
}

func TestRemoveLowersHighPointer(t *testing.T) {
	tb := NewTable(10)
	tb.Insert(1, 5)
	tb.Insert(2, 9)
	tb.Remove(2)
	v, g, ok := tb.Best()
	require.True(t, ok)
	assert.Equal(t, int32(1), v)
	assert.Equal(t, 5, g)
}

func TestEmptyTableBestIsFalse(t *testing.T) {
	tb := NewTable(5)
	_, _, ok := tb.Best()
	assert.False(t, ok)
}

func TestUpdateChangesGain(t *testing.T) {
	tb := NewTable(5)
	tb.Insert(1, 1)
	tb.Update(1, 4)
	assert.Equal(t, 4, tb.Gain(1))
	v, g, ok := tb.Best()
	require.True(t, ok)
	assert.Equal(t, int32(1), v)
	assert.Equal(t, 4, g)
}

func TestClampsOutOfRangeGains(t *testing.T) {
	tb := NewTable(3)
	tb.Insert(1, 100)
	tb.Insert(2, -100)
	v, g, ok := tb.Best()
	require.True(t, ok)
	assert.Equal(t, int32(1), v)
	assert.Equal(t, 3, g)
}

func TestLenAndContains(t *testing.T) {
	tb := NewTable(5)
	assert.Equal(t, 0, tb.Len())
	tb.Insert(42, 2)
	assert.True(t, tb.Contains(42))
	assert.Equal(t, 1, tb.Len())
	tb.Remove(42)
	assert.False(t, tb.Contains(42))
}

func TestMultipleVerticesSameBucketFIFO(t *testing.T) {
	tb := NewTable(5)
	tb.Insert(1, 2)
	tb.Insert(2, 2)
	v, _, ok := tb.Best()
	require.True(t, ok)
	assert.Equal(t, int32(2), v) // most recently inserted head of bucket
	tb.Remove(2)
	v2, _, ok := tb.Best()
	require.True(t, ok)
	assert.Equal(t, int32(1), v2)
}
