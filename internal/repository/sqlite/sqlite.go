package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"topogen/internal/repository"

	_ "modernc.org/sqlite"
)

// ErrRunNotFound reports a lookup for a run ID the manifest does not hold.
var ErrRunNotFound = errors.New("run not found")

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite manifest repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		experiment TEXT NOT NULL,
		input_path TEXT NOT NULL,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		run_id TEXT NOT NULL,
		format TEXT NOT NULL,
		path TEXT NOT NULL,
		size INTEGER NOT NULL,
		checksum TEXT NOT NULL,
		PRIMARY KEY (run_id, format),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// RecordRun stores a run and its artifacts in one transaction
func (r *Repository) RecordRun(ctx context.Context, run *repository.Run) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, experiment, input_path, node_count, edge_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Experiment, run.InputPath, run.NodeCount, run.EdgeCount, createdAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, art := range run.Artifacts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO artifacts (run_id, format, path, size, checksum)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, art.Format, art.Path, art.Size, art.Checksum)
		if err != nil {
			return fmt.Errorf("failed to insert artifact %s: %w", art.Format, err)
		}
	}

	return tx.Commit()
}

// GetRun loads a run and its artifacts
func (r *Repository) GetRun(ctx context.Context, id string) (*repository.Run, error) {
	run := &repository.Run{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, experiment, input_path, node_count, edge_count, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Experiment, &run.InputPath, &run.NodeCount, &run.EdgeCount, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	if err := r.loadArtifacts(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]*repository.Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, experiment, input_path, node_count, edge_count, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*repository.Run
	for rows.Next() {
		run := &repository.Run{}
		if err := rows.Scan(&run.ID, &run.Experiment, &run.InputPath, &run.NodeCount, &run.EdgeCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	for _, run := range runs {
		if err := r.loadArtifacts(ctx, run); err != nil {
			return nil, err
		}
	}

	return runs, nil
}

func (r *Repository) loadArtifacts(ctx context.Context, run *repository.Run) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT format, path, size, checksum
		FROM artifacts WHERE run_id = ? ORDER BY format
	`, run.ID)
	if err != nil {
		return fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var art repository.Artifact
		if err := rows.Scan(&art.Format, &art.Path, &art.Size, &art.Checksum); err != nil {
			return fmt.Errorf("failed to scan artifact: %w", err)
		}
		run.Artifacts = append(run.Artifacts, art)
	}
	return rows.Err()
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}
