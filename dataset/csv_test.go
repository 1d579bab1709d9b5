package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/dataprep/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentsCSV = `gender,race/ethnicity,math score
female,group B,72
female,group C,69
male,group A,47
`

func TestRead(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		ds, err := Read(strings.NewReader(studentsCSV))
		require.NoError(t, err)

		assert.Equal(t, []string{"gender", "race/ethnicity", "math score"}, ds.Header)
		require.Equal(t, 3, ds.Len())
		assert.Equal(t, []string{"male", "group A", "47"}, ds.Rows[2])
	})

	t.Run("strips byte order mark", func(t *testing.T) {
		ds, err := Read(strings.NewReader("\ufeff\"id\",name\n1,a\n"))
		require.NoError(t, err)
		assert.Equal(t, "id", ds.Header[0])
	})

	t.Run("skips blank lines", func(t *testing.T) {
		ds, err := Read(strings.NewReader("id\n\n1\n\n2\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Len())
	})

	t.Run("crlf line endings", func(t *testing.T) {
		ds, err := Read(strings.NewReader("id,name\r\n1,a\r\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "a"}, ds.Rows[0])
	})

	t.Run("quoted fields keep delimiters", func(t *testing.T) {
		ds, err := Read(strings.NewReader("id,note\n1,\"a, b\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "a, b", ds.Rows[0][1])
	})

	t.Run("header only", func(t *testing.T) {
		ds, err := Read(strings.NewReader("a,b\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Read(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := Read(strings.NewReader("a,b\n1,2\n3\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, csv.ErrFieldCount)
	})

	t.Run("bad quoting", func(t *testing.T) {
		_, err := Read(strings.NewReader("a,b\n1,\"unterminated\n"))
		require.Error(t, err)
	})
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite(t *testing.T) {
	t.Run("round trips source text", func(t *testing.T) {
		ds, err := ReadBytes([]byte(studentsCSV))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, ds))
		assert.Equal(t, studentsCSV, buf.String())
	})

	t.Run("quotes fields that need it", func(t *testing.T) {
		ds := &core.Dataset{
			Header: []string{"id", "note"},
			Rows:   [][]string{{"1", "a, b"}},
		}
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, ds))
		assert.Equal(t, "id,note\n1,\"a, b\"\n", buf.String())
	})

	t.Run("nil dataset", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, Write(&buf, nil), ErrNilDataset)
	})

	t.Run("invalid dataset", func(t *testing.T) {
		var buf bytes.Buffer
		err := Write(&buf, &core.Dataset{Header: []string{"a"}, Rows: [][]string{{"1", "2"}}})
		assert.ErrorIs(t, err, core.ErrRowWidth)
	})
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	ds := &core.Dataset{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1", "2"}},
	}

	t.Run("creates file", func(t *testing.T) {
		require.NoError(t, WriteFile(path, ds))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n", string(data))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		other := &core.Dataset{Header: []string{"c"}, Rows: [][]string{{"3"}}}
		require.NoError(t, WriteFile(path, other))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "c\n3\n", string(data))
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.csv", entries[0].Name())
	})

	t.Run("missing directory", func(t *testing.T) {
		err := WriteFile(filepath.Join(dir, "nope", "out.csv"), ds)
		assert.Error(t, err)
	})

	t.Run("invalid dataset leaves target untouched", func(t *testing.T) {
		bad := &core.Dataset{Header: []string{"a"}, Rows: [][]string{{"1", "2"}}}
		require.Error(t, WriteFile(path, bad))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "c\n3\n", string(data))
	})
}
