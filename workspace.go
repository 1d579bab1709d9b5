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

package dataprep

import (
	"log/slog"

	"github.com/poiesic/dataprep/ingestion"
	"github.com/poiesic/dataprep/storage"
	"github.com/poiesic/dataprep/storage/badger"
)

// Workspace ties ingestion runs to a persistent run log.
type Workspace struct {
	backend *badger.Backend
	runRepo storage.RunRepository
	logger  *slog.Logger
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*workspaceOptions)

type workspaceOptions struct {
	logger   *slog.Logger
	inMemory bool
}

// WithLogger sets the logger used by the workspace, its run log and the
// ingestors it creates. Default is slog.Default().
func WithLogger(logger *slog.Logger) WorkspaceOption {
	return func(o *workspaceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// InMemory keeps the run log in memory. The path is ignored.
func InMemory() WorkspaceOption {
	return func(o *workspaceOptions) {
		o.inMemory = true
	}
}

// OpenWorkspace opens (or creates) the run log at dbPath.
func OpenWorkspace(dbPath string, opts ...WorkspaceOption) (*Workspace, error) {
	options := &workspaceOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackendWithLogger(dbPath, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}

	runRepo, err := badger.NewRunRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Workspace{
		backend: backend,
		runRepo: runRepo,
		logger:  options.logger,
	}, nil
}

func (w *Workspace) Close() error {
	if err := w.runRepo.Close(); err != nil {
		w.logger.Error("error closing run repository", "err", err)
		return err
	}

	if err := w.backend.Close(); err != nil {
		w.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (w *Workspace) RunRepository() storage.RunRepository {
	return w.runRepo
}

// NewIngestor creates an Ingestor that records every successful run in the
// workspace's run log. Options passed here are applied after the workspace
// defaults and may override them.
func (w *Workspace) NewIngestor(cfg *ingestion.Config, opts ...ingestion.Option) (*ingestion.Ingestor, error) {
	defaults := []ingestion.Option{
		ingestion.WithLogger(w.logger),
		ingestion.WithRunRepository(w.runRepo),
	}
	return ingestion.NewIngestor(cfg, append(defaults, opts...)...)
}
