// Package columns defines the closed set of profile columns and their kinds.
package columns

// Kind classifies how a column is cleaned, indexed, and queried.
type Kind int

const (
	// Text columns hold free text; they are full-text indexed and queried
	// with match semantics.
	Text Kind = iota
	// Tag columns hold ordered lists of exact-match strings; they are
	// indexed as keywords and queried with term semantics.
	Tag
)

// Declared column names. The set is fixed; anything else is rejected by
// both the ingest pipeline and the query layer.
const (
	FullName        = "full_name"
	JobTitle        = "job_title"
	Industry        = "industry"
	Summary         = "summary"
	LocationCountry = "location_country"
	Education       = "education"
	Experience      = "experience"
	Skills          = "skills"
	JobSummary      = "job_summary"
)

// all lists every declared column in source order. Order matters for
// deterministic iteration (ingest, dedup keys, CSV header matching).
var all = []string{
	FullName, JobTitle, Industry, Summary, LocationCountry,
	Education, Experience, Skills, JobSummary,
}

var kinds = map[string]Kind{
	FullName:        Text,
	JobTitle:        Text,
	Industry:        Text,
	Summary:         Text,
	LocationCountry: Text,
	Education:       Tag,
	Experience:      Tag,
	Skills:          Tag,
	JobSummary:      Text,
}

func init() {
	// The name list and the kind table must agree exactly; a mismatch is a
	// programming error, caught at startup rather than at request time.
	if len(all) != len(kinds) {
		panic("columns: name list and kind table out of sync")
	}
	for _, name := range all {
		if _, ok := kinds[name]; !ok {
			panic("columns: no kind declared for " + name)
		}
	}
}

// All returns the declared column names in canonical order.
// The returned slice is a copy and safe to modify.
func All() []string {
	return append([]string(nil), all...)
}

// KindOf returns the kind of a declared column. ok is false for unknown names.
func KindOf(name string) (Kind, bool) {
	k, ok := kinds[name]
	return k, ok
}

// IsDeclared reports whether name is one of the declared columns.
func IsDeclared(name string) bool {
	_, ok := kinds[name]
	return ok
}

// IsTag reports whether name is a declared tag column.
func IsTag(name string) bool {
	return kinds[name] == Tag && IsDeclared(name)
}

// TextColumns returns the declared text columns in canonical order.
func TextColumns() []string {
	out := make([]string, 0, len(all))
	for _, name := range all {
		if kinds[name] == Text {
			out = append(out, name)
		}
	}
	return out
}

// TagColumns returns the declared tag columns in canonical order.
func TagColumns() []string {
	out := make([]string, 0, len(all))
	for _, name := range all {
		if kinds[name] == Tag {
			out = append(out, name)
		}
	}
	return out
}

// Validate checks that every name is a declared column. On failure it
// returns an *InvalidColumnError listing every offending name, not just
// the first.
func Validate(names []string) error {
	var invalid []string
	for _, name := range names {
		if !IsDeclared(name) {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return &InvalidColumnError{Columns: invalid}
	}
	return nil
}
