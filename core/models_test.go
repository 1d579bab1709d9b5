package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	d1 := Digest([]byte("a,b\n1,2\n"))
	d2 := Digest([]byte("a,b\n1,2\n"))
	d3 := Digest([]byte("a,b\n1,3\n"))

	assert.Len(t, d1, 64, "256-bit digest should be 64 hex characters")
	assert.Equal(t, d1, d2)
	assert.NotEqual(t, d1, d3)
}

func newTestDataset() *Dataset {
	return &Dataset{
		Header: []string{"id", "name"},
		Rows: [][]string{
			{"0", "zero"},
			{"1", "one"},
			{"2", "two"},
			{"3", "three"},
		},
	}
}

func TestDataset_Shape(t *testing.T) {
	ds := newTestDataset()
	rows, cols := ds.Shape()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 4, ds.Len())
}

func TestDataset_Head(t *testing.T) {
	ds := newTestDataset()

	t.Run("fewer than available", func(t *testing.T) {
		head := ds.Head(2)
		assert.Equal(t, ds.Header, head.Header)
		assert.Equal(t, [][]string{{"0", "zero"}, {"1", "one"}}, head.Rows)
	})

	t.Run("more than available", func(t *testing.T) {
		head := ds.Head(10)
		assert.Equal(t, 4, head.Len())
	})

	t.Run("negative", func(t *testing.T) {
		head := ds.Head(-1)
		assert.Equal(t, 0, head.Len())
	})

	t.Run("append to head does not touch source", func(t *testing.T) {
		head := ds.Head(1)
		head.Rows = append(head.Rows, []string{"9", "nine"})
		assert.Equal(t, []string{"1", "one"}, ds.Rows[1])
	})
}

func TestDataset_Subset(t *testing.T) {
	ds := newTestDataset()

	t.Run("keeps index order", func(t *testing.T) {
		sub, err := ds.Subset([]int{3, 0})
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"3", "three"}, {"0", "zero"}}, sub.Rows)
		assert.Equal(t, ds.Header, sub.Header)
	})

	t.Run("header is copied", func(t *testing.T) {
		sub, err := ds.Subset([]int{1})
		require.NoError(t, err)
		sub.Header[0] = "changed"
		assert.Equal(t, "id", ds.Header[0])
	})

	t.Run("empty indices", func(t *testing.T) {
		sub, err := ds.Subset(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, sub.Len())
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := ds.Subset([]int{4})
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = ds.Subset([]int{-1})
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}

func TestRun_Duration(t *testing.T) {
	start := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	run := &Run{StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond)}
	assert.Equal(t, 1500*time.Millisecond, run.Duration())
}
