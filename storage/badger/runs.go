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


package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/dataprep/core"
	"github.com/poiesic/dataprep/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	idSeq, err := backend.GetSequence(runIDSeq)
	if err != nil {
		return nil, err
	}

	return &RunRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RunRepository) Close() error {
	return r.idSeq.Release()
}

// AddRun stores a run record under a freshly generated ID.
func (r *RunRepository) AddRun(ctx context.Context, run *core.Run) (*core.Run, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}
	if err := core.ValidateRun(run); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		run.Id = core.ID(nextID)
		run.InsertedAt = time.Now().UTC()

		value, err := storage.MarshalRun(run)
		if err != nil {
			return err
		}
		if err := tx.Set(makeRunKey(run.Id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// GetRun retrieves a single run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.Run, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var run *core.Run
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("run %d: %w", id, storage.ErrNotFound)
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			run, unmarshalErr = storage.UnmarshalRun(val)
			return unmarshalErr
		})
	}, false)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// ListRuns retrieves up to limit runs, newest first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var results []*core.Run
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent runs first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(runRecordPrefix)
		for iter.Seek(makeRunSeekKey()); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}

			item := iter.Item()
			if !bytes.HasPrefix(item.Key(), prefix) {
				break
			}
			id, err := parseRunKey(item.Key())
			if err != nil {
				return err
			}

			var run *core.Run
			if err := item.Value(func(val []byte) error {
				var err error
				run, err = storage.UnmarshalRun(val)
				return err
			}); err != nil {
				return err
			}
			// The key is authoritative for the ID
			run.Id = id
			results = append(results, run)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return results, nil
}
