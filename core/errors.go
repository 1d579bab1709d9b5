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

import "errors"

// Domain validation errors
var (
	// ErrInvalidDataset indicates a Dataset failed validation.
	ErrInvalidDataset = errors.New("invalid dataset")

	// ErrEmptyHeader indicates the dataset has no columns.
	ErrEmptyHeader = errors.New("header cannot be empty")

	// ErrRowWidth indicates a row whose field count differs from the header.
	ErrRowWidth = errors.New("row width does not match header")

	// ErrIndexOutOfRange indicates a row index outside the dataset.
	ErrIndexOutOfRange = errors.New("row index out of range")

	// ErrInvalidRun indicates a Run failed validation.
	ErrInvalidRun = errors.New("invalid run")

	// ErrEmptySource indicates the Run has no source path.
	ErrEmptySource = errors.New("source cannot be empty")

	// ErrRowCountMismatch indicates train and test counts do not add up to the total.
	ErrRowCountMismatch = errors.New("train and test rows do not sum to total rows")

	// ErrInvalidTimestamp indicates a run finished before it started.
	ErrInvalidTimestamp = errors.New("finish time precedes start time")
)
