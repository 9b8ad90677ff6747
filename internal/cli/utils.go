// Package cli provides terminal output formatting for Rireki.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/rireki/internal/columns"
	"github.com/hyperjump/rireki/internal/models"
	"github.com/hyperjump/rireki/pkg/utils"
)

// OutputFormat is the format for search result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "text", "":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "%d result(s) in %dms\n", response.Total, response.QueryTime)
	for i, result := range response.Results {
		writeOneResult(w, i+1, result)
	}
}

func writeOneResult(w io.Writer, rank int, result *models.SearchResult) {
	p := result.Profile
	fmt.Fprintf(w, "\n%d. %s", rank, p.FullName)
	if p.JobTitle != "" {
		fmt.Fprintf(w, " - %s", p.JobTitle)
	}
	fmt.Fprintf(w, "  (score %.3f)\n", result.Score)
	if p.LocationCountry != "" {
		fmt.Fprintf(w, "   %s\n", p.LocationCountry)
	}
	if p.Summary != "" {
		fmt.Fprintf(w, "   %s\n", utils.Truncate(p.Summary, 160))
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(w, "   skills: %s\n", p.TagDisplay(columns.Skills))
	}
	for column, fragments := range result.Highlights {
		for _, fragment := range fragments {
			fmt.Fprintf(w, "   %s: %s\n", column, utils.Truncate(fragment, 120))
		}
	}
}
