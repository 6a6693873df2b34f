package worker_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexicanum/internal/worker"
)

func TestExecuteKeepsInputOrder(t *testing.T) {
	pool := worker.NewPool(4, func(ctx context.Context, n int) (string, error) {
		return strconv.Itoa(n * 2), nil
	})

	results := pool.Execute(context.Background(), []int{1, 2, 3, 4, 5})
	require.Len(t, results, 5)
	for i, task := range results {
		assert.Equal(t, i+1, task.Input)
		assert.Equal(t, strconv.Itoa((i+1)*2), task.Result)
		assert.NoError(t, task.Err)
	}
}

func TestExecuteCollectsPerInputErrors(t *testing.T) {
	wantErr := errors.New("bad input")
	pool := worker.NewPool(2, func(ctx context.Context, n int) (int, error) {
		if n%2 == 0 {
			return 0, wantErr
		}
		return n, nil
	})

	results := pool.Execute(context.Background(), []int{1, 2, 3})
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, wantErr)
	assert.NoError(t, results[2].Err)
}

func TestZeroWorkersStillRuns(t *testing.T) {
	pool := worker.NewPool(0, func(ctx context.Context, n int) (int, error) {
		return n + 1, nil
	})
	results := pool.Execute(context.Background(), []int{10})
	require.Len(t, results, 1)
	assert.Equal(t, 11, results[0].Result)
}

func TestPartitionSeparatesFailures(t *testing.T) {
	wantErr := errors.New("unreadable")
	pool := worker.NewPool(2, func(ctx context.Context, n int) (int, error) {
		if n < 0 {
			return 0, wantErr
		}
		return n * 10, nil
	})

	done, failed := worker.Partition(pool.Execute(context.Background(), []int{1, -1, 2, -2, 3}))
	require.Len(t, done, 3)
	require.Len(t, failed, 2)

	assert.Equal(t, []int{1, 2, 3}, []int{done[0].Input, done[1].Input, done[2].Input})
	assert.Equal(t, 10, done[0].Result)
	assert.True(t, done[0].OK())
	assert.Equal(t, []int{-1, -2}, []int{failed[0].Input, failed[1].Input})
	assert.ErrorIs(t, failed[0].Err, wantErr)
	assert.False(t, failed[0].OK())
}

func TestBatch(t *testing.T) {
	batches := worker.Batch([]int{1, 2, 3, 4, 5}, 2)
	require.Len(t, batches, 3)
	assert.Equal(t, []int{1, 2}, batches[0])
	assert.Equal(t, []int{3, 4}, batches[1])
	assert.Equal(t, []int{5}, batches[2])

	assert.Nil(t, worker.Batch([]int(nil), 2))
}
