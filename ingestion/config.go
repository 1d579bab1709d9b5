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


package ingestion

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/dataprep/split"
)

const (
	// DefaultSourcePath is the dataset read when no source is configured.
	DefaultSourcePath = "notebook/data/StudentsPerformance.csv"

	// ArtifactsDirName is the artifacts directory created under the base directory.
	ArtifactsDirName = "artifacts"

	RawFileName   = "data.csv"
	TrainFileName = "train.csv"
	TestFileName  = "test.csv"
)

// Config holds the inputs and outputs of an ingestion run.
type Config struct {
	// SourcePath is the delimited file to ingest.
	SourcePath string

	// ArtifactsDir is created if missing. The default output paths live inside it.
	ArtifactsDir string

	// RawPath receives a copy of the full dataset.
	RawPath string

	// TrainPath and TestPath receive the two subsets.
	TrainPath string
	TestPath  string

	// TestFraction is the share of rows assigned to the test subset.
	// Default: 0.2
	TestFraction float64

	// Seed makes the shuffle reproducible.
	// Default: 42
	Seed uint64

	// Shuffle permutes rows before splitting.
	// Default: true
	Shuffle bool
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithSourcePath sets the file to ingest.
func WithSourcePath(path string) ConfigOption {
	return func(c *Config) {
		c.SourcePath = path
	}
}

// WithArtifactsDir moves the artifacts directory and places the raw, train
// and test files inside it under their default names.
func WithArtifactsDir(dir string) ConfigOption {
	return func(c *Config) {
		c.ArtifactsDir = dir
		c.RawPath = filepath.Join(dir, RawFileName)
		c.TrainPath = filepath.Join(dir, TrainFileName)
		c.TestPath = filepath.Join(dir, TestFileName)
	}
}

// WithRawPath overrides where the raw copy is written.
func WithRawPath(path string) ConfigOption {
	return func(c *Config) {
		c.RawPath = path
	}
}

// WithTrainPath overrides where the train subset is written.
func WithTrainPath(path string) ConfigOption {
	return func(c *Config) {
		c.TrainPath = path
	}
}

// WithTestPath overrides where the test subset is written.
func WithTestPath(path string) ConfigOption {
	return func(c *Config) {
		c.TestPath = path
	}
}

// WithTestFraction sets the share of rows assigned to the test subset.
func WithTestFraction(fraction float64) ConfigOption {
	return func(c *Config) {
		c.TestFraction = fraction
	}
}

// WithSeed sets the shuffle seed.
func WithSeed(seed uint64) ConfigOption {
	return func(c *Config) {
		c.Seed = seed
	}
}

// WithShuffle enables or disables shuffling before the split.
func WithShuffle(shuffle bool) ConfigOption {
	return func(c *Config) {
		c.Shuffle = shuffle
	}
}

// DefaultConfig returns a Config whose outputs live in baseDir/artifacts.
func DefaultConfig(baseDir string) *Config {
	artifactsDir := filepath.Join(baseDir, ArtifactsDirName)
	opts := split.DefaultOptions()
	return &Config{
		SourcePath:   DefaultSourcePath,
		ArtifactsDir: artifactsDir,
		RawPath:      filepath.Join(artifactsDir, RawFileName),
		TrainPath:    filepath.Join(artifactsDir, TrainFileName),
		TestPath:     filepath.Join(artifactsDir, TestFileName),
		TestFraction: opts.TestFraction,
		Seed:         opts.Seed,
		Shuffle:      opts.Shuffle,
	}
}

// NewConfig creates a Config rooted at the current working directory and
// applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithSourcePath("data/students.csv"),
//	    WithArtifactsDir("/tmp/artifacts"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = "."
	}
	cfg := DefaultConfig(baseDir)
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// SplitOptions returns the split parameters of the config.
func (c *Config) SplitOptions() split.Options {
	return split.Options{
		TestFraction: c.TestFraction,
		Seed:         c.Seed,
		Shuffle:      c.Shuffle,
	}
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.SourcePath == "" {
		return fmt.Errorf("%w: SourcePath is required", ErrInvalidConfig)
	}
	if c.ArtifactsDir == "" {
		return fmt.Errorf("%w: ArtifactsDir is required", ErrInvalidConfig)
	}
	if c.RawPath == "" || c.TrainPath == "" || c.TestPath == "" {
		return fmt.Errorf("%w: RawPath, TrainPath and TestPath are required", ErrInvalidConfig)
	}
	if c.TrainPath == c.TestPath || c.RawPath == c.TrainPath || c.RawPath == c.TestPath {
		return fmt.Errorf("%w: output paths must be distinct", ErrInvalidConfig)
	}
	if err := split.ValidateFraction(c.TestFraction); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
