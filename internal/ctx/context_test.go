package ctx

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadLaunchRunsOnEveryWorker(t *testing.T) {
	c := New(WithWorkers(4))
	var count int32
	err := c.ThreadLaunch(context.Background(), func(worker int) error {
		assert.GreaterOrEqual(t, worker, 0)
		assert.Less(t, worker, 4)
		atomic.AddInt32(&count, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(4), count)
}

func TestThreadLaunchPropagatesFirstError(t *testing.T) {
	c := New(WithWorkers(4))
	sentinel := errors.New("boom")
	err := c.ThreadLaunch(context.Background(), func(worker int) error {
		if worker == 2 {
			return sentinel
		}
		return nil
	})
	require.ErrorIs(t, err, sentinel)
}

func TestThreadLaunchSplitRunsBothHalves(t *testing.T) {
	c := New(WithWorkers(4))
	seen := make([]bool, 2)
	err := c.ThreadLaunchSplit(context.Background(), func(half int, sub *Context) error {
		seen[half] = true
		assert.GreaterOrEqual(t, sub.Workers(), 1)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, seen[0])
	assert.True(t, seen[1])
}

func TestThreadReduceIsDeterministicAcrossRuns(t *testing.T) {
	c := New(WithWorkers(8))
	sum := func() int {
		v, err := ThreadReduce(c, context.Background(), 0,
			func(worker int) (int, error) { return worker + 1, nil },
			func(a, b int) int { return a + b },
		)
		require.NoError(t, err)
		return v
	}
	a := sum()
	b := sum()
	assert.Equal(t, a, b)
	assert.Equal(t, 36, a) // 1+2+...+8
}

func TestThreadScanInclusivePrefix(t *testing.T) {
	c := New(WithWorkers(5))
	result, err := ThreadScan(c, context.Background(), 0,
		func(worker int) (int, error) { return worker + 1, nil },
		func(a, b int) int { return a + b },
	)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 6, 10, 15}, result)
}

func TestDataScanCoversRangeExactlyOnce(t *testing.T) {
	c := New(WithWorkers(3))
	ranges := c.DataScan(1, 10) // based at 1, 10 vertices: [1, 11)
	seen := make(map[int]bool)
	for _, r := range ranges {
		for v := r[0]; v < r[1]; v++ {
			assert.False(t, seen[v], "vertex %d covered twice", v)
			seen[v] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestCloneProducesIndependentDeterministicStream(t *testing.T) {
	c := New(WithSeed(42))
	a := c.Clone(0)
	b := c.Clone(0)
	assert.Equal(t, a.RNG().Uint64(), b.RNG().Uint64())
}

func TestSetOptionRejectedAfterCommit(t *testing.T) {
	c := New()
	c.RNG() // commits the context
	ok := c.SetOption(WithWorkers(99))
	assert.False(t, ok)
}

func TestAbortFlag(t *testing.T) {
	var a Abort
	assert.False(t, a.IsSet())
	a.Set()
	assert.True(t, a.IsSet())
}
