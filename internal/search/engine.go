package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/rireki/internal/columns"
	"github.com/hyperjump/rireki/internal/config"
	"github.com/hyperjump/rireki/internal/index"
	"github.com/hyperjump/rireki/internal/models"
	"github.com/hyperjump/rireki/internal/storage"
)

// Searcher executes a prepared query against the profile index.
type Searcher interface {
	Search(ctx context.Context, req *bleve.SearchRequest) (*index.Result, error)
}

// ProfileGetter hydrates a search hit into a full profile.
type ProfileGetter interface {
	GetProfile(ctx context.Context, id string) (*models.ProfileRecord, error)
}

// Engine validates search requests, builds queries, and assembles results.
// It is stateless; concurrent use is safe.
type Engine struct {
	index  Searcher
	store  ProfileGetter
	config *config.SearchConfig
	logger *zap.Logger
}

// NewEngine creates an engine with the given dependencies. logger may be
// nil.
func NewEngine(idx Searcher, store ProfileGetter, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{index: idx, store: store, config: cfg, logger: logger}
}

// SearchColumns runs an OR-mode search: one query string matched against
// every given column, any match qualifies. All columns are validated before
// the store is touched.
func (e *Engine) SearchColumns(ctx context.Context, cols []string, query string, size int) (*models.SearchResponse, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrNoQuery
	}
	if err := columns.Validate(cols); err != nil {
		return nil, err
	}
	clauses := make([]clause, 0, len(cols))
	for _, col := range cols {
		clauses = append(clauses, clause{column: col, query: query})
	}
	return e.run(ctx, clauses, anyOf, size)
}

// SearchFields runs an AND-mode search: every field carries its own query
// and every field must match. An empty mapping is rejected before any
// store interaction.
func (e *Engine) SearchFields(ctx context.Context, fields map[string]string, size int) (*models.SearchResponse, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyQuery
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	if err := columns.Validate(names); err != nil {
		return nil, err
	}
	clauses := make([]clause, 0, len(names))
	for _, name := range names {
		clauses = append(clauses, clause{column: name, query: fields[name]})
	}
	return e.run(ctx, clauses, allOf, size)
}

func (e *Engine) run(ctx context.Context, clauses []clause, comb combinator, size int) (*models.SearchResponse, error) {
	start := time.Now()
	size = e.clampSize(size)

	req := buildRequest(clauses, comb, size)
	result, err := e.index.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	response := &models.SearchResponse{
		Total:   result.Total,
		Results: make([]*models.SearchResult, 0, len(result.Hits)),
	}
	for _, hit := range result.Hits {
		profile, err := e.store.GetProfile(ctx, hit.ID)
		if errors.Is(err, storage.ErrNotFound) {
			// The index and store can briefly disagree during re-ingest;
			// skip the orphan hit rather than failing the request.
			e.logger.Warn("hit not in store", zap.String("id", hit.ID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", hit.ID, err)
		}
		response.Results = append(response.Results, &models.SearchResult{
			Profile:    profile,
			Score:      hit.Score,
			Highlights: hit.Fragments,
		})
	}
	response.QueryTime = time.Since(start).Milliseconds()
	return response, nil
}

func (e *Engine) clampSize(size int) int {
	if size <= 0 {
		size = e.config.DefaultSize
	}
	if size > e.config.MaxSize {
		size = e.config.MaxSize
	}
	return size
}
