package storage

import (
	"bytes"
	"testing"
	"time"

	"github.com/poiesic/dataprep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		id, err := UnmarshalID(MarshalID(core.ID(18446744073709551615)))
		require.NoError(t, err)
		assert.Equal(t, core.ID(18446744073709551615), id)
	})

	t.Run("byte order follows numeric order", func(t *testing.T) {
		assert.Equal(t, -1, bytes.Compare(MarshalID(255), MarshalID(256)))
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := UnmarshalID([]byte{1, 2, 3})
		assert.ErrorIs(t, err, ErrTruncatedData)
	})
}

func TestMarshalRun(t *testing.T) {
	started := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
	run := &core.Run{
		Id:           7,
		Source:       "notebook/data/StudentsPerformance.csv",
		SourceDigest: core.Digest([]byte("a,b\n")),
		RawPath:      "artifacts/data.csv",
		TrainPath:    "artifacts/train.csv",
		TestPath:     "artifacts/test.csv",
		Rows:         1000,
		Columns:      8,
		TrainRows:    800,
		TestRows:     200,
		Seed:         42,
		TestFraction: 0.2,
		Shuffled:     true,
		StartedAt:    started,
		FinishedAt:   started.Add(120 * time.Millisecond),
		InsertedAt:   started.Add(121 * time.Millisecond),
	}

	data, err := MarshalRun(run)
	require.NoError(t, err)

	got, err := UnmarshalRun(data)
	require.NoError(t, err)
	assert.Equal(t, run.Source, got.Source)
	assert.Equal(t, run.TestFraction, got.TestFraction)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, run.Duration(), got.Duration())
	assert.Equal(t, *run, *got)
}

func TestUnmarshalRun_Corrupt(t *testing.T) {
	_, err := UnmarshalRun([]byte("{not json"))
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
