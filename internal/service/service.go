// Package service runs the generation pipeline: parse the input
// document, build the canonical model, render every requested artifact,
// and optionally record the run in the manifest.
//
// The pipeline is all-or-nothing. Every artifact is rendered in memory
// before the first byte reaches disk, so a malformed document or a bad
// attribute never leaves partial outputs behind.
package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"topogen/internal/codec"
	"topogen/internal/graphml"
	"topogen/internal/repository"
	"topogen/internal/topology"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// ArtifactSpec names one artifact to produce: the generator and where
// its output lands.
type ArtifactSpec struct {
	Generator codec.Generator
	Path      string
}

// Request describes one generation run.
type Request struct {
	InputPath  string
	Experiment string
	Artifacts  []ArtifactSpec
}

// Service coordinates the generation pipeline.
type Service struct {
	repo repository.Repository
}

// New creates a generation service. A nil repository disables manifest
// recording.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Run executes one generation run and returns its manifest record.
func (s *Service) Run(ctx context.Context, req Request) (*repository.Run, error) {
	data, err := os.ReadFile(req.InputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	doc, err := graphml.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	topo, err := topology.New(doc)
	if err != nil {
		return nil, err
	}

	// Render everything before writing anything.
	rendered := make([][]byte, len(req.Artifacts))
	for i, spec := range req.Artifacts {
		var buf bytes.Buffer
		if err := spec.Generator.Generate(topo, &buf); err != nil {
			return nil, fmt.Errorf("generate %s: %w", spec.Generator.Format(), err)
		}
		rendered[i] = buf.Bytes()
	}

	run := &repository.Run{
		ID:         uuid.NewString(),
		Experiment: req.Experiment,
		InputPath:  req.InputPath,
		NodeCount:  topo.NodeCount(),
		EdgeCount:  len(topo.Edges()),
		CreatedAt:  time.Now().UTC(),
	}

	for i, spec := range req.Artifacts {
		if err := os.WriteFile(spec.Path, rendered[i], 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", spec.Path, err)
		}

		sum := blake2b.Sum256(rendered[i])
		run.Artifacts = append(run.Artifacts, repository.Artifact{
			Format:   spec.Generator.Format(),
			Path:     spec.Path,
			Size:     int64(len(rendered[i])),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	if s.repo != nil {
		if err := s.repo.RecordRun(ctx, run); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}

	return run, nil
}
