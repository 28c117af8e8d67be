package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/kgraph-cli/internal/model"
)

// ErrRunNotFound is returned when a run ID matches no persisted run.
var ErrRunNotFound = eris.New("store: run not found")

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status   model.RunStatus `json:"status,omitempty"`
	InputDir string          `json:"input_dir,omitempty"`
	Limit    int             `json:"limit,omitempty"`
	Offset   int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for batch run history.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, inputDir, outputDir string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	UpdateRunSummary(ctx context.Context, runID string, summary *model.BatchSummary) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Per-document records
	RecordDocument(ctx context.Context, runID string, result model.DocumentResult) error
	ListDocuments(ctx context.Context, runID string) ([]model.DocumentResult, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
