// Package index provides the Bleve-backed full-text store for profiles.
package index

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/hyperjump/rireki/internal/columns"
	"github.com/hyperjump/rireki/internal/models"
)

// BleveIndex is the searchable profile store. Text columns are full-text
// indexed, tag columns are indexed as exact-match keywords.
type BleveIndex struct {
	path string

	mu    sync.RWMutex // guards the handle across Recreate
	index bleve.Index
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index
// is opened and reused; if the mapping in code changes, Recreate (or remove
// the index directory) to force a full re-index.
func NewBleveIndex(path string) (*BleveIndex, error) {
	if _, err := os.Stat(path); err == nil {
		idx, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open index: %w", openErr)
		}
		return &BleveIndex{path: path, index: idx}, nil
	}
	idx, err := bleve.New(path, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return &BleveIndex{path: path, index: idx}, nil
}

// buildMapping declares the profile schema. Text columns use the standard
// analyzer (lowercase + tokenize, no stemming) so queries match the exact
// words that were indexed. Tag columns use the keyword analyzer so a term
// clause matches the whole stored string and nothing else.
func buildMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = standard.Name
	for _, col := range columns.TextColumns() {
		docMapping.AddFieldMappingsAt(col, textField)
	}

	tagField := bleve.NewTextFieldMapping()
	tagField.Analyzer = keyword.Name
	for _, col := range columns.TagColumns() {
		docMapping.AddFieldMappingsAt(col, tagField)
	}

	im.AddDocumentMapping("profile", docMapping)
	im.DefaultType = "profile"
	im.DefaultMapping = docMapping
	return im
}

// Recreate drops the index and creates an empty one with the current
// mapping. Searches block for the duration of the swap.
func (b *BleveIndex) Recreate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index != nil {
		if err := b.index.Close(); err != nil {
			return fmt.Errorf("failed to close index: %w", err)
		}
	}
	if err := os.RemoveAll(b.path); err != nil {
		return fmt.Errorf("failed to remove index: %w", err)
	}
	idx, err := bleve.New(b.path, buildMapping())
	if err != nil {
		return fmt.Errorf("failed to recreate index: %w", err)
	}
	b.index = idx
	return nil
}

// Index writes one profile into the index under its ID. Tag columns are
// indexed as string lists; bleve emits one keyword posting per element.
func (b *BleveIndex) Index(ctx context.Context, p *models.ProfileRecord) error {
	doc := make(map[string]interface{}, 9)
	for _, col := range columns.All() {
		if columns.IsTag(col) {
			doc[col] = p.Tags(col)
		} else {
			doc[col] = p.Text(col)
		}
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.Index(p.ID, doc)
}

// Hit is one search match: the stored profile ID, the store-assigned
// relevance score, and highlight fragments per text field (when requested).
type Hit struct {
	ID        string
	Score     float64
	Fragments map[string][]string
}

// Result is an executed search: hits in relevance order plus the total
// match count (which may exceed the page of hits returned).
type Result struct {
	Hits  []*Hit
	Total uint64
}

// Search executes a prepared search request and adapts the hits.
func (b *BleveIndex) Search(ctx context.Context, req *bleve.SearchRequest) (*Result, error) {
	b.mu.RLock()
	res, err := b.index.SearchInContext(ctx, req)
	b.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	out := &Result{
		Hits:  make([]*Hit, 0, len(res.Hits)),
		Total: res.Total,
	}
	for _, hit := range res.Hits {
		out.Hits = append(out.Hits, &Hit{
			ID:        hit.ID,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		})
	}
	return out, nil
}

// DocCount returns the number of indexed profiles.
func (b *BleveIndex) DocCount() (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.DocCount()
}

// Close closes the index.
func (b *BleveIndex) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index.Close()
}
