package ingestion

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/dataprep/core"
	"github.com/poiesic/dataprep/dataset"
	"github.com/poiesic/dataprep/split"
	"github.com/poiesic/dataprep/storage"
)

// Ingestor loads a source dataset, copies it into the artifacts directory
// and writes a train/test split next to it.
type Ingestor struct {
	config       Config
	runs         storage.RunRepository
	reporter     *Reporter
	writeWorkers int // Size of the pool writing the train and test files
	logger       *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(in *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		in.logger = logger
		return nil
	}
}

// WithReporter sets where diagnostic output (shape, preview, saved paths) goes.
// Default is os.Stdout. A nil writer silences it.
func WithReporter(w io.Writer) Option {
	return func(in *Ingestor) error {
		in.reporter = NewReporter(w)
		return nil
	}
}

// WithRunRepository records every successful run in repo.
// Default is no run log.
func WithRunRepository(repo storage.RunRepository) Option {
	return func(in *Ingestor) error {
		in.runs = repo
		return nil
	}
}

// WithWriteConcurrency sets how many subset files are written at once.
// Default is 2 (train and test in parallel), with a minimum of 1.
func WithWriteConcurrency(n int) Option {
	return func(in *Ingestor) error {
		if n < 1 {
			n = 1
		}
		in.writeWorkers = n
		return nil
	}
}

// NewIngestor creates an Ingestor for cfg. The config is validated and
// copied; later changes to cfg do not affect the Ingestor.
func NewIngestor(cfg *Config, opts ...Option) (*Ingestor, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	in := &Ingestor{
		config:       *cfg,
		reporter:     NewReporter(os.Stdout),
		writeWorkers: 2,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// Config returns a copy of the Ingestor's configuration.
func (in *Ingestor) Config() Config {
	return in.config
}

// Result holds the outputs of a successful run.
type Result struct {
	TrainPath string
	TestPath  string
	Run       *core.Run // Populated with an ID when a run repository is configured
}

// subset is one output file produced after the split.
type subset struct {
	name  string
	label string
	path  string
	data  *core.Dataset
}

// Run executes the ingestion and returns the train and test paths.
// Any failure is logged and returned as an *Error; files written before the
// failure are left on disk.
func (in *Ingestor) Run(ctx context.Context) (*Result, error) {
	in.logger.Info("entered data ingestion", "source", in.config.SourcePath)

	result, err := in.run(ctx)
	if err != nil {
		in.logger.Error("error occurred during data ingestion", "err", err)
		return nil, err
	}

	in.logger.Info("data ingestion completed",
		"train", result.TrainPath, "test", result.TestPath, "duration", result.Run.Duration())
	return result, nil
}

func (in *Ingestor) run(ctx context.Context) (*Result, error) {
	cfg := in.config
	startedAt := time.Now().UTC()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Verify source exists before touching the artifacts directory
	if _, err := os.Stat(cfg.SourcePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError("stat source", cfg.SourcePath, ErrSourceNotFound, err)
		}
		return nil, newError("stat source", cfg.SourcePath, ErrParse, err)
	}

	raw, err := os.ReadFile(cfg.SourcePath)
	if err != nil {
		return nil, newError("read source", cfg.SourcePath, ErrParse, err)
	}

	ds, err := dataset.ReadBytes(raw)
	if err != nil {
		return nil, newError("parse source", cfg.SourcePath, ErrParse, err)
	}

	rows, cols := ds.Shape()
	in.logger.Info("read the dataset", "rows", rows, "columns", cols)
	in.reporter.Shape(ds)
	in.reporter.Preview(ds, previewRows)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := in.prepareDirs(); err != nil {
		return nil, err
	}
	in.reporter.ArtifactsDir(cfg.ArtifactsDir)

	if err := dataset.WriteFile(cfg.RawPath, ds); err != nil {
		return nil, newError("write raw", cfg.RawPath, ErrWrite, err)
	}
	in.reporter.Saved("Raw", cfg.RawPath)

	in.logger.Info("initiating train-test split",
		"test_fraction", cfg.TestFraction, "seed", cfg.Seed, "shuffle", cfg.Shuffle)
	train, test, err := split.TrainTest(ds, cfg.SplitOptions())
	if err != nil {
		return nil, newError("split", cfg.SourcePath, ErrSplit, err)
	}
	in.logger.Info("split dataset", "train_rows", train.Len(), "test_rows", test.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	subsets := []subset{
		{name: "train", label: "Train", path: cfg.TrainPath, data: train},
		{name: "test", label: "Test", path: cfg.TestPath, data: test},
	}
	if err := in.writeSubsets(subsets); err != nil {
		return nil, err
	}
	for _, s := range subsets {
		in.reporter.Saved(s.label, s.path)
	}

	run := &core.Run{
		Source:       cfg.SourcePath,
		SourceDigest: core.Digest(raw),
		RawPath:      cfg.RawPath,
		TrainPath:    cfg.TrainPath,
		TestPath:     cfg.TestPath,
		Rows:         rows,
		Columns:      cols,
		TrainRows:    train.Len(),
		TestRows:     test.Len(),
		Seed:         cfg.Seed,
		TestFraction: cfg.TestFraction,
		Shuffled:     cfg.Shuffle,
		StartedAt:    startedAt,
		FinishedAt:   time.Now().UTC(),
	}

	if in.runs != nil {
		if run, err = in.runs.AddRun(ctx, run); err != nil {
			return nil, newError("record run", "", ErrWrite, err)
		}
		in.logger.Debug("recorded run", "id", run.Id)
	}

	return &Result{
		TrainPath: cfg.TrainPath,
		TestPath:  cfg.TestPath,
		Run:       run,
	}, nil
}

// prepareDirs creates the artifacts directory and the parent directory of
// every output path. Existing directories are not an error.
func (in *Ingestor) prepareDirs() error {
	cfg := in.config
	dirs := []string{
		cfg.ArtifactsDir,
		filepath.Dir(cfg.RawPath),
		filepath.Dir(cfg.TrainPath),
		filepath.Dir(cfg.TestPath),
	}

	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := os.MkdirAll(dir, 0755); err != nil {
			return newError("create directory", dir, ErrWrite, err)
		}
	}
	return nil
}

// writeSubsets writes each subset on a bounded worker pool and waits for all
// of them. The first failure in subset order is returned.
func (in *Ingestor) writeSubsets(subsets []subset) error {
	pool, err := ants.NewPool(in.writeWorkers)
	if err != nil {
		return newError("start writers", "", ErrWrite, err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	errs := make([]error, len(subsets))
	for i, s := range subsets {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			errs[i] = dataset.WriteFile(s.path, s.data)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return newError("write "+subsets[i].name, subsets[i].path, ErrWrite, err)
		}
	}
	return nil
}
