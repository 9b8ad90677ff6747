package models

// SearchResult is a single search hit: the stored profile plus optional
// highlight fragments for the text columns that matched.
type SearchResult struct {
	Profile    *ProfileRecord      `json:"profile"`
	Score      float64             `json:"score"`
	Highlights map[string][]string `json:"_highlight,omitempty"`
}

// SearchResponse is the response for both search modes. Results follow the
// store's relevance order; Total counts every match, not just the returned
// page.
type SearchResponse struct {
	Total     uint64          `json:"total"`
	Results   []*SearchResult `json:"results"`
	QueryTime int64           `json:"query_time_ms"`
}
