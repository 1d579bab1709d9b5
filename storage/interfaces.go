package storage

import (
	"context"

	"github.com/poiesic/dataprep/core"
)

// RunRepository persists metadata about completed ingestion runs.
// Implementations must be thread-safe and support concurrent access.
type RunRepository interface {
	// AddRun stores a run record.
	// Always assigns a new ID from the repository sequence.
	// Sets InsertedAt to the current time.
	// Returns the run with ID and InsertedAt populated.
	AddRun(ctx context.Context, run *core.Run) (*core.Run, error)

	// GetRun retrieves a single run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.Run, error)

	// ListRuns retrieves up to limit runs, most recently added first.
	// A limit <= 0 returns every run.
	ListRuns(ctx context.Context, limit int) ([]*core.Run, error)

	// Close releases resources held by the repository.
	// It does not close the underlying backend.
	Close() error
}
