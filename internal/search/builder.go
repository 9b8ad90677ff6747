// Package search translates search requests into boolean queries against
// the profile index and hydrates the hits into full results.
package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/highlight/format/html"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/hyperjump/rireki/internal/columns"
)

// combinator selects how per-column clauses combine: any-of (OR across
// columns) or all-of (AND across fields). Both search modes share one
// builder; the combinator is the only difference.
type combinator int

const (
	anyOf combinator = iota
	allOf
)

// clause is one (column, query) pair before translation.
type clause struct {
	column string
	query  string
}

// buildRequest translates clauses into a bleve search request. Text columns
// get match semantics (tokenized, analyzed), tag columns get exact term
// semantics. Highlighting is requested only for the text columns present in
// the clauses; tag fields are never highlighted.
func buildRequest(clauses []clause, comb combinator, size int) *bleve.SearchRequest {
	queries := make([]blevequery.Query, 0, len(clauses))
	var highlightFields []string
	for _, c := range clauses {
		if columns.IsTag(c.column) {
			tq := bleve.NewTermQuery(c.query)
			tq.SetField(c.column)
			queries = append(queries, tq)
			continue
		}
		mq := bleve.NewMatchQuery(c.query)
		mq.SetField(c.column)
		queries = append(queries, mq)
		highlightFields = append(highlightFields, c.column)
	}

	var q blevequery.Query
	if comb == allOf {
		q = bleve.NewConjunctionQuery(queries...)
	} else {
		dq := bleve.NewDisjunctionQuery(queries...)
		dq.SetMin(1)
		q = dq
	}

	req := bleve.NewSearchRequest(q)
	req.Size = size
	if len(highlightFields) > 0 {
		req.Highlight = bleve.NewHighlightWithStyle(html.Name)
		for _, field := range highlightFields {
			req.Highlight.AddField(field)
		}
	}
	return req
}
