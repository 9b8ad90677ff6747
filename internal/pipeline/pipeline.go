// Package pipeline turns raw source rows into deduplicated, normalized
// profile records.
package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/rireki/internal/columns"
	"github.com/hyperjump/rireki/internal/models"
	"github.com/hyperjump/rireki/internal/normalize"
)

// Pipeline normalizes rows on a worker pool and removes exact duplicates.
// Rows are independent, so normalization fans out across workers; output
// order tracks input order via explicit indexing.
type Pipeline struct {
	pool   *ants.Pool
	logger *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithWorkers sets the worker pool size. Default is runtime.NumCPU()/2,
// with a minimum of 1.
func WithWorkers(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a logger for per-row failure reports.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) error {
		p.logger = l
		return nil
	}
}

// New creates a pipeline. Call Release when done to free the worker pool.
func New(opts ...Option) (*Pipeline, error) {
	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{pool: pool, logger: zap.NewNop()}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}
	return p, nil
}

// Release frees the worker pool.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Stats reports what happened to a batch.
type Stats struct {
	RowsIn     int `json:"rows_in"`
	RowsOut    int `json:"rows_out"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`
}

func (s Stats) String() string {
	return fmt.Sprintf("rows in: %d | rows out: %d | duplicates removed: %d | failed: %d",
		s.RowsIn, s.RowsOut, s.Duplicates, s.Failed)
}

// BuildDocuments normalizes every row and drops exact duplicates: rows whose
// nine normalized columns all equal an earlier row's. The first occurrence
// wins and input order is otherwise preserved. A row whose processing fails
// is logged with its row number and skipped; the batch continues.
func (p *Pipeline) BuildDocuments(rows []models.RawRecord) ([]*models.ProfileRecord, Stats) {
	stats := Stats{RowsIn: len(rows)}
	normalized := make([]*models.ProfileRecord, len(rows))

	var wg sync.WaitGroup
	for i := range rows {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			normalized[i] = p.normalizeRow(i, rows[i])
		}
		if err := p.pool.Submit(task); err != nil {
			// Pool unavailable; do the work inline rather than losing the row.
			task()
		}
	}
	wg.Wait()

	seen := make(map[string]struct{}, len(rows))
	out := make([]*models.ProfileRecord, 0, len(rows))
	for _, rec := range normalized {
		if rec == nil {
			stats.Failed++
			continue
		}
		key := rec.DedupKey()
		if _, dup := seen[key]; dup {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	stats.RowsOut = len(out)
	return out, stats
}

// normalizeRow cleans every declared column of one row. Cleaning itself is
// total, but a row must never take down the batch, so anything unexpected
// is caught here and reported with the row number.
func (p *Pipeline) normalizeRow(row int, raw models.RawRecord) (rec *models.ProfileRecord) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("row processing failed",
				zap.Int("row", row), zap.Any("panic", r))
			rec = nil
		}
	}()

	rec = &models.ProfileRecord{}
	for _, col := range columns.All() {
		v, err := normalize.Clean(col, raw[col])
		if err != nil {
			p.logger.Error("row processing failed",
				zap.Int("row", row), zap.Error(err))
			return nil
		}
		if v.Kind == columns.Tag {
			rec.SetTags(col, v.Tags)
		} else {
			rec.SetText(col, v.Text)
		}
	}
	return rec
}
