package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/rireki/internal/models"
)

func sampleResponse() *models.SearchResponse {
	return &models.SearchResponse{
		Total: 2,
		Results: []*models.SearchResult{
			{
				Profile: &models.ProfileRecord{
					ID:              "a",
					FullName:        "Jane Doe",
					JobTitle:        "Engineer",
					LocationCountry: "Netherlands",
					Summary:         "Builds search systems",
					Skills:          []string{"Python", "Go"},
				},
				Score: 2.1,
				Highlights: map[string][]string{
					"summary": {"Builds <mark>search</mark> systems"},
				},
			},
			{
				Profile: &models.ProfileRecord{ID: "b", FullName: "John Roe"},
				Score:   0.4,
			},
		},
		QueryTime: 5,
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"text", OutputText, false},
		{"", OutputText, false},
		{"json", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSearchResultsText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"2 result(s) in 5ms",
		"1. Jane Doe - Engineer",
		"Netherlands",
		"skills: Python | Go",
		"<mark>search</mark>",
		"2. John Roe",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSearchResultsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleResponse(), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Total != 2 || len(decoded.Results) != 2 {
		t.Errorf("round trip lost data: %+v", decoded)
	}
}
