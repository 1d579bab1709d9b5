// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/poiesic/dataprep/core"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses delimited text with a header row into a Dataset.
// Blank lines are skipped. Every record must have as many fields as the header.
func Read(r io.Reader) (*core.Dataset, error) {
	br := bufio.NewReader(r)
	if prefix, _ := br.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	// 0 means the header fixes the width for every following record
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	ds := &core.Dataset{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		ds.Rows = append(ds.Rows, record)
	}

	return ds, nil
}

// ReadBytes parses an in-memory copy of a delimited file.
func ReadBytes(data []byte) (*core.Dataset, error) {
	return Read(bytes.NewReader(data))
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*core.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// Write serializes ds as CSV: header first, then every row.
func Write(w io.Writer, ds *core.Dataset) error {
	if ds == nil {
		return ErrNilDataset
	}
	if err := core.ValidateDataset(ds); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := writer.WriteAll(ds.Rows); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

// WriteFile writes ds to path, replacing any existing file.
// The parent directory must already exist.
func WriteFile(path string, ds *core.Dataset) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	// Removing after a successful rename is a no-op
	defer os.Remove(tmpPath)

	buffered := bufio.NewWriter(tmp)
	if err := Write(buffered, ds); err != nil {
		tmp.Close()
		return err
	}
	if err := buffered.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	// CreateTemp uses 0600; match what os.Create would have produced
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
