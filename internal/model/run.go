package model

import "time"

// RunStatus represents the current state of a batch run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// DocStatus represents the lifecycle of a single document within a batch.
type DocStatus string

const (
	DocStatusQueued    DocStatus = "queued"
	DocStatusRunning   DocStatus = "running"
	DocStatusSucceeded DocStatus = "succeeded"
	DocStatusFailed    DocStatus = "failed"
)

// Run represents a persisted batch run.
type Run struct {
	ID        string        `json:"id"`
	InputDir  string        `json:"input_dir"`
	OutputDir string        `json:"output_dir"`
	Status    RunStatus     `json:"status"`
	Summary   *BatchSummary `json:"summary,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// DocumentResult is the terminal record for one document of a batch.
// Exactly one of the success fields or Error is populated.
type DocumentResult struct {
	Path             string                   `json:"path"`
	Status           DocStatus                `json:"status"`
	TriplesExtracted int                      `json:"triples_extracted,omitempty"`
	Stats            GraphStats               `json:"statistics,omitempty"`
	Exports          map[string]ExportOutcome `json:"exports,omitempty"`
	Duration         time.Duration            `json:"duration_ns"`
	Error            string                   `json:"error,omitempty"`
}

// ExportOutcome mirrors one format's export result inside a DocumentResult.
type ExportOutcome struct {
	Status string `json:"status"`
	Path   string `json:"file_path,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BatchSummary aggregates a completed batch. It is computed only after every
// document record has reached a terminal state, and never depends on
// completion order: per-file results are keyed by document path.
type BatchSummary struct {
	TotalFiles     int                       `json:"total_files"`
	Succeeded      int                       `json:"successful"`
	Failed         int                       `json:"failed"`
	TotalTime      time.Duration             `json:"total_processing_time_ns"`
	AvgTimePerFile time.Duration             `json:"average_time_per_file_ns"`
	Results        map[string]DocumentResult `json:"results"`
	StartedAt      time.Time                 `json:"started_at"`
	CompletedAt    time.Time                 `json:"completed_at"`
}
