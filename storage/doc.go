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


// Package storage provides the storage abstraction layer for dataprep.
//
// The only persisted entity is core.Run, the metadata left behind by a
// completed ingestion: where the data came from, a digest of the source bytes,
// where the outputs went and how many rows landed in each subset. Dataset
// contents are never stored here.
//
// # Architecture
//
// The storage layer follows the Repository pattern:
//
//   - RunRepository: append and query run records
//
// The BadgerDB implementation lives in the badger subpackage:
//
//	backend, err := badger.OpenBackend("/path/to/runs", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	runs, err := badger.NewRunRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer runs.Close()
//
// Use in tests with in-memory storage:
//
//	runs, backend, err := badger.NewMemoryRunRepository()
//
// # Serialization
//
// Run records are stored as JSON. MarshalRun and UnmarshalRun wrap failures
// in ErrSerializationFailed.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
