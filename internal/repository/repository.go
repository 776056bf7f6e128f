// Package repository defines the data access interface for the topogen
// run manifest.
//
// The manifest records provenance for generated artifacts: which input
// produced which outputs, when, and with what checksums. The parsed
// topology itself is never stored; each invocation remains a stateless
// transform and the manifest only describes its results.
//
// The actual implementation is in the sqlite subpackage.
package repository

import (
	"context"
	"time"
)

// Run is one generation run over a single input document.
type Run struct {
	ID         string
	Experiment string
	InputPath  string
	NodeCount  int
	EdgeCount  int
	CreatedAt  time.Time
	Artifacts  []Artifact
}

// Artifact is one generated output file belonging to a run.
type Artifact struct {
	Format   string
	Path     string
	Size     int64
	Checksum string
}

// Repository defines the interface for manifest data access
type Repository interface {
	// RecordRun stores a run and its artifacts atomically.
	RecordRun(ctx context.Context, run *Run) error

	// GetRun loads a run with its artifacts.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Close releases resources
	Close() error
}
