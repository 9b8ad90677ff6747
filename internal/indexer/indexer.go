// Package indexer orchestrates ingest: read source rows, normalize and
// deduplicate them, and write the result into the profile store and the
// search index.
package indexer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/rireki/internal/index"
	"github.com/hyperjump/rireki/internal/models"
	"github.com/hyperjump/rireki/internal/pipeline"
	"github.com/hyperjump/rireki/internal/source"
	"github.com/hyperjump/rireki/internal/storage"
)

// Ingestor replaces the indexed corpus from a source file.
type Ingestor struct {
	store    *storage.ProfileStore
	index    *index.BleveIndex
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithLogger sets a logger for ingest progress and per-row failures.
func WithLogger(l *zap.Logger) Option {
	return func(ing *Ingestor) { ing.logger = l }
}

// NewIngestor creates an ingestor with the given dependencies.
func NewIngestor(store *storage.ProfileStore, idx *index.BleveIndex, pl *pipeline.Pipeline, opts ...Option) *Ingestor {
	ing := &Ingestor{store: store, index: idx, pipeline: pl, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// Report summarizes one ingest run.
type Report struct {
	pipeline.Stats
	Indexed int `json:"indexed"`
}

// Run reads the source file at path and rebuilds the corpus from it. The
// store and index are recreated, so a re-run replaces previous data. A
// profile that fails to persist is logged with its position and skipped;
// the rest of the batch continues. Store-level failures during the rebuild
// itself (reset, index recreation) abort the run.
func (ing *Ingestor) Run(ctx context.Context, path string) (*Report, error) {
	rows, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}

	docs, stats := ing.pipeline.BuildDocuments(rows)
	ing.logger.Info("normalized source rows",
		zap.String("file", path),
		zap.Int("rows_in", stats.RowsIn),
		zap.Int("rows_out", stats.RowsOut),
		zap.Int("duplicates_removed", stats.Duplicates),
		zap.Int("failed", stats.Failed),
	)

	if err := ing.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("reset store: %w", err)
	}
	if err := ing.index.Recreate(); err != nil {
		return nil, fmt.Errorf("recreate index: %w", err)
	}

	report := &Report{Stats: stats}
	for i, doc := range docs {
		if err := ing.indexOne(ctx, doc); err != nil {
			ing.logger.Error("failed to index profile",
				zap.Int("row", i), zap.Error(err))
			continue
		}
		report.Indexed++
	}
	ing.logger.Info("ingest complete",
		zap.Int("indexed", report.Indexed),
		zap.Int("skipped", len(docs)-report.Indexed),
	)
	return report, nil
}

func (ing *Ingestor) indexOne(ctx context.Context, doc *models.ProfileRecord) error {
	doc.ID = uuid.New().String()
	if err := ing.store.CreateProfile(ctx, doc); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	if err := ing.index.Index(ctx, doc); err != nil {
		return fmt.Errorf("index profile: %w", err)
	}
	return nil
}
