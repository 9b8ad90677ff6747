package normalize

import (
	"fmt"

	"github.com/hyperjump/rireki/internal/columns"
)

// Value is the cleaned form of one cell. Text columns populate Text, tag
// columns populate Tags; the other field stays zero.
type Value struct {
	Kind columns.Kind
	Text string
	Tags []string
}

// IsEmpty reports whether the value carries no content.
func (v Value) IsEmpty() bool {
	if v.Kind == columns.Tag {
		return len(v.Tags) == 0
	}
	return v.Text == ""
}

// UnknownColumnError reports a cleaning request for an undeclared column.
// This is a wiring error on the caller's side, not a data error.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("no cleaner for column %q", e.Column)
}

var textCleaners = map[string]func(string) string{
	columns.FullName:        CleanFullName,
	columns.JobTitle:        CleanJobTitle,
	columns.Industry:        CleanIndustry,
	columns.Summary:         CleanSummary,
	columns.LocationCountry: CleanLocationCountry,
	columns.JobSummary:      CleanJobSummary,
}

var tagCleaners = map[string]func(string) []string{
	columns.Education:  CleanEducation,
	columns.Experience: CleanExperience,
	columns.Skills:     CleanSkills,
}

func init() {
	// Every declared column must have exactly one cleaner of the right
	// shape. Checked once at startup so a taxonomy change cannot silently
	// leave a column uncleaned.
	for _, name := range columns.All() {
		_, isText := textCleaners[name]
		_, isTag := tagCleaners[name]
		if isText == isTag {
			panic("normalize: column " + name + " must have exactly one cleaner")
		}
		if kind, _ := columns.KindOf(name); (kind == columns.Tag) != isTag {
			panic("normalize: cleaner kind mismatch for column " + name)
		}
	}
}

// Clean applies the column's cleaning rule to raw. It is total over raw: any
// string, however malformed, cleans to a (possibly empty) Value. An
// undeclared column returns an *UnknownColumnError.
func Clean(column, raw string) (Value, error) {
	if fn, ok := textCleaners[column]; ok {
		return Value{Kind: columns.Text, Text: fn(raw)}, nil
	}
	if fn, ok := tagCleaners[column]; ok {
		return Value{Kind: columns.Tag, Tags: fn(raw)}, nil
	}
	return Value{}, &UnknownColumnError{Column: column}
}
