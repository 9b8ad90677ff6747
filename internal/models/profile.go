// Package models defines core data structures for profiles, queries, and
// search results.
package models

import (
	"strconv"
	"strings"

	"github.com/hyperjump/rireki/internal/columns"
)

// RawRecord is one row from the tabular source: column name → raw cell
// text. Absent columns are treated as empty strings.
type RawRecord map[string]string

// ProfileRecord is a normalized profile document. Text columns hold a
// canonical string, tag columns an ordered list of exact-match strings.
// Every column is always present; unusable input normalizes to empty.
type ProfileRecord struct {
	ID              string   `json:"id,omitempty"`
	FullName        string   `json:"full_name"`
	JobTitle        string   `json:"job_title"`
	Industry        string   `json:"industry"`
	Summary         string   `json:"summary"`
	LocationCountry string   `json:"location_country"`
	Education       []string `json:"education"`
	Experience      []string `json:"experience"`
	Skills          []string `json:"skills"`
	JobSummary      string   `json:"job_summary"`
}

// Text returns the value of a text column. Unknown or tag columns return "".
func (p *ProfileRecord) Text(column string) string {
	switch column {
	case columns.FullName:
		return p.FullName
	case columns.JobTitle:
		return p.JobTitle
	case columns.Industry:
		return p.Industry
	case columns.Summary:
		return p.Summary
	case columns.LocationCountry:
		return p.LocationCountry
	case columns.JobSummary:
		return p.JobSummary
	}
	return ""
}

// Tags returns the value of a tag column. Unknown or text columns return nil.
func (p *ProfileRecord) Tags(column string) []string {
	switch column {
	case columns.Education:
		return p.Education
	case columns.Experience:
		return p.Experience
	case columns.Skills:
		return p.Skills
	}
	return nil
}

// SetText sets a text column. Unknown columns are ignored.
func (p *ProfileRecord) SetText(column, value string) {
	switch column {
	case columns.FullName:
		p.FullName = value
	case columns.JobTitle:
		p.JobTitle = value
	case columns.Industry:
		p.Industry = value
	case columns.Summary:
		p.Summary = value
	case columns.LocationCountry:
		p.LocationCountry = value
	case columns.JobSummary:
		p.JobSummary = value
	}
}

// SetTags sets a tag column. Unknown columns are ignored.
func (p *ProfileRecord) SetTags(column string, value []string) {
	switch column {
	case columns.Education:
		p.Education = value
	case columns.Experience:
		p.Experience = value
	case columns.Skills:
		p.Skills = value
	}
}

// TagDisplay renders a tag column as a single human-readable string.
func (p *ProfileRecord) TagDisplay(column string) string {
	return strings.Join(p.Tags(column), " | ")
}

// DedupKey returns a key built from every normalized column, used to drop
// exact-duplicate rows. Each value is length-prefixed so the encoding is
// injective even for pass-through columns that may contain any byte.
func (p *ProfileRecord) DedupKey() string {
	var b strings.Builder
	writeValue := func(v string) {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	for _, col := range columns.All() {
		if columns.IsTag(col) {
			tags := p.Tags(col)
			b.WriteString(strconv.Itoa(len(tags)))
			b.WriteByte('#')
			for _, tag := range tags {
				writeValue(tag)
			}
		} else {
			writeValue(p.Text(col))
		}
	}
	return b.String()
}
