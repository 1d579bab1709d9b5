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


package core

import (
	"fmt"
)

// ValidateDataset validates the structure of a Dataset.
//
// Validation rules:
//   - Header must have at least one column
//   - Every row must have exactly len(Header) fields
//
// NOT validated:
//   - Column names (empty or duplicate names are passed through as read)
//   - Field contents (no types are inferred)
func ValidateDataset(ds *Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: dataset is nil", ErrInvalidDataset)
	}

	if len(ds.Header) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, ErrEmptyHeader)
	}

	for i, row := range ds.Rows {
		if len(row) != len(ds.Header) {
			return fmt.Errorf("%w: %w: row %d has %d fields, want %d",
				ErrInvalidDataset, ErrRowWidth, i, len(row), len(ds.Header))
		}
	}

	return nil
}

// ValidateRun validates a Run according to domain rules.
//
// Validation rules:
//   - Source must not be empty
//   - TrainRows + TestRows must equal Rows
//   - FinishedAt must not precede StartedAt
//
// NOT validated (populated by storage):
//   - ID (0 is valid before insertion)
//   - InsertedAt
func ValidateRun(run *Run) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", ErrInvalidRun)
	}

	if run.Source == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrEmptySource)
	}

	if run.TrainRows+run.TestRows != run.Rows {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrRowCountMismatch)
	}

	if run.FinishedAt.Before(run.StartedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrInvalidTimestamp)
	}

	return nil
}
