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


// Package split partitions datasets into train and test subsets.
//
// Shuffling is driven by a PCG generator seeded from Options.Seed, so a given
// seed and row count always produce the same permutation on every platform
// and Go release.
package split

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/poiesic/dataprep/core"
)

const (
	// DefaultTestFraction is the share of rows assigned to the test subset.
	DefaultTestFraction = 0.2

	// DefaultSeed seeds the shuffle when none is given.
	DefaultSeed uint64 = 42

	// Products such as 0.2*15 land a hair above the integer in float64.
	fractionTolerance = 1e-9

	// Second PCG word, fixed so a single seed value fully determines the stream.
	pcgStream = 0x9e3779b97f4a7c15
)

// Options controls how a dataset is split.
type Options struct {
	// TestFraction is the share of rows that go to the test subset, in (0, 1).
	TestFraction float64

	// Seed makes the shuffle reproducible.
	Seed uint64

	// Shuffle permutes rows before splitting. When false the first rows
	// become the train subset and the remaining rows the test subset.
	Shuffle bool
}

// DefaultOptions returns a 80/20 shuffled split seeded with 42.
func DefaultOptions() Options {
	return Options{
		TestFraction: DefaultTestFraction,
		Seed:         DefaultSeed,
		Shuffle:      true,
	}
}

// ValidateFraction reports whether fraction is usable as a test fraction.
func ValidateFraction(fraction float64) error {
	if math.IsNaN(fraction) || fraction <= 0 || fraction >= 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidFraction, fraction)
	}
	return nil
}

// TestSize returns how many of n rows go to the test subset:
// ceil(n*fraction). The remaining n-TestSize rows form the train subset.
// It fails when either subset would be empty.
func TestSize(n int, fraction float64) (int, error) {
	if err := ValidateFraction(fraction); err != nil {
		return 0, err
	}

	test := int(math.Ceil(fraction*float64(n) - fractionTolerance))
	test = max(test, 0)
	train := n - test

	if test == 0 || train <= 0 {
		return 0, fmt.Errorf("%w: %d rows with test fraction %v gives train=%d test=%d",
			ErrEmptySubset, n, fraction, max(train, 0), test)
	}
	return test, nil
}

// Permutation returns a pseudo-random permutation of [0, n) determined by seed.
func Permutation(n int, seed uint64) []int {
	r := rand.New(rand.NewPCG(seed, pcgStream))
	return r.Perm(n)
}

// Indices returns the row indices of the train and test subsets for n rows.
// The two slices are disjoint and together cover [0, n).
func Indices(n int, opts Options) (train, test []int, err error) {
	nTest, err := TestSize(n, opts.TestFraction)
	if err != nil {
		return nil, nil, err
	}
	nTrain := n - nTest

	if !opts.Shuffle {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order[:nTrain], order[nTrain:], nil
	}

	perm := Permutation(n, opts.Seed)
	return perm[nTest:], perm[:nTest], nil
}

// TrainTest splits ds into train and test subsets. Rows within each subset
// follow the shuffled order. The input dataset is not modified.
func TrainTest(ds *core.Dataset, opts Options) (train, test *core.Dataset, err error) {
	if err := core.ValidateDataset(ds); err != nil {
		return nil, nil, err
	}

	trainIdx, testIdx, err := Indices(ds.Len(), opts)
	if err != nil {
		return nil, nil, err
	}

	train, err = ds.Subset(trainIdx)
	if err != nil {
		return nil, nil, err
	}
	test, err = ds.Subset(testIdx)
	if err != nil {
		return nil, nil, err
	}
	return train, test, nil
}
