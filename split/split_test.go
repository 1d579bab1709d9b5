package split

import (
	"math"
	"strconv"
	"testing"

	"github.com/poiesic/dataprep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDataset(n int) *core.Dataset {
	ds := &core.Dataset{Header: []string{"id", "value"}}
	for i := range n {
		ds.Rows = append(ds.Rows, []string{strconv.Itoa(i), strconv.Itoa(i * i)})
	}
	return ds
}

func TestTestSize(t *testing.T) {
	tests := []struct {
		n        int
		fraction float64
		want     int
	}{
		{n: 10, fraction: 0.2, want: 2},
		{n: 15, fraction: 0.2, want: 3},
		{n: 11, fraction: 0.2, want: 3},
		{n: 1000, fraction: 0.2, want: 200},
		{n: 5, fraction: 0.2, want: 1},
		{n: 2, fraction: 0.5, want: 1},
		{n: 7, fraction: 0.25, want: 2},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.n), func(t *testing.T) {
			got, err := TestSize(tt.n, tt.fraction)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTestSize_Errors(t *testing.T) {
	t.Run("fraction out of range", func(t *testing.T) {
		for _, f := range []float64{0, 1, -0.1, 1.5, math.NaN()} {
			_, err := TestSize(10, f)
			assert.ErrorIs(t, err, ErrInvalidFraction, "fraction %v", f)
		}
	})

	t.Run("no rows", func(t *testing.T) {
		_, err := TestSize(0, 0.2)
		assert.ErrorIs(t, err, ErrEmptySubset)
	})

	t.Run("single row leaves empty train", func(t *testing.T) {
		_, err := TestSize(1, 0.2)
		assert.ErrorIs(t, err, ErrEmptySubset)
	})
}

func TestPermutation(t *testing.T) {
	t.Run("deterministic for a seed", func(t *testing.T) {
		assert.Equal(t, Permutation(100, 42), Permutation(100, 42))
	})

	t.Run("different seeds differ", func(t *testing.T) {
		assert.NotEqual(t, Permutation(100, 42), Permutation(100, 43))
	})

	t.Run("is a permutation", func(t *testing.T) {
		perm := Permutation(50, 7)
		seen := make(map[int]bool, len(perm))
		for _, v := range perm {
			require.True(t, v >= 0 && v < 50)
			require.False(t, seen[v], "duplicate index %d", v)
			seen[v] = true
		}
		assert.Len(t, seen, 50)
	})
}

func TestTrainTest(t *testing.T) {
	ds := makeDataset(100)

	train, test, err := TrainTest(ds, DefaultOptions())
	require.NoError(t, err)

	t.Run("row counts", func(t *testing.T) {
		assert.Equal(t, 80, train.Len())
		assert.Equal(t, 20, test.Len())
	})

	t.Run("headers preserved", func(t *testing.T) {
		assert.Equal(t, ds.Header, train.Header)
		assert.Equal(t, ds.Header, test.Header)
	})

	t.Run("disjoint and complete", func(t *testing.T) {
		seen := make(map[string]int)
		for _, row := range train.Rows {
			seen[row[0]]++
		}
		for _, row := range test.Rows {
			seen[row[0]]++
		}
		require.Len(t, seen, 100)
		for id, count := range seen {
			assert.Equal(t, 1, count, "row %s appears %d times", id, count)
		}
	})

	t.Run("rows are shuffled", func(t *testing.T) {
		assert.NotEqual(t, ds.Rows[:80], train.Rows)
	})

	t.Run("input untouched", func(t *testing.T) {
		assert.Equal(t, makeDataset(100), ds)
	})
}

func TestTrainTest_Deterministic(t *testing.T) {
	ds := makeDataset(57)

	train1, test1, err := TrainTest(ds, DefaultOptions())
	require.NoError(t, err)
	train2, test2, err := TrainTest(ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, train1, train2)
	assert.Equal(t, test1, test2)

	opts := DefaultOptions()
	opts.Seed = 7
	train3, _, err := TrainTest(ds, opts)
	require.NoError(t, err)
	assert.NotEqual(t, train1.Rows, train3.Rows)
}

func TestTrainTest_NoShuffle(t *testing.T) {
	ds := makeDataset(10)
	opts := DefaultOptions()
	opts.Shuffle = false

	train, test, err := TrainTest(ds, opts)
	require.NoError(t, err)

	assert.Equal(t, ds.Rows[:8], train.Rows)
	assert.Equal(t, ds.Rows[8:], test.Rows)
}

func TestTrainTest_Errors(t *testing.T) {
	t.Run("invalid dataset", func(t *testing.T) {
		_, _, err := TrainTest(&core.Dataset{}, DefaultOptions())
		assert.ErrorIs(t, err, core.ErrEmptyHeader)
	})

	t.Run("too few rows", func(t *testing.T) {
		_, _, err := TrainTest(makeDataset(1), DefaultOptions())
		assert.ErrorIs(t, err, ErrEmptySubset)
	})

	t.Run("invalid fraction", func(t *testing.T) {
		opts := DefaultOptions()
		opts.TestFraction = 1.2
		_, _, err := TrainTest(makeDataset(10), opts)
		assert.ErrorIs(t, err, ErrInvalidFraction)
	})
}
