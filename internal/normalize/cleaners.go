// Package normalize implements the per-column cleaning rules that turn raw
// profile cells into search-safe values. Text columns clean to a canonical
// string, tag columns to an ordered list of strings. Every rule is total:
// malformed input degrades to an empty value, it never fails.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	driveLetterRe   = regexp.MustCompile(`[a-zA-Z]:`)
	fileExtRe       = regexp.MustCompile(`(?i)\.(csv|txt|xlsx|json|zip)$`)
	nonLetterRe     = regexp.MustCompile(`[^a-zA-Z\s]`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
	digitRe         = regexp.MustCompile(`\d`)
	industryCharRe  = regexp.MustCompile(`[^a-zA-Z\s,&-]`)
	numericRangeRe  = regexp.MustCompile(`^\d+-\d+$`)
	numberPlusRe    = regexp.MustCompile(`^\d+\+$`)
	decimalRe       = regexp.MustCompile(`^\d+\.\d+$`)
	isoDateRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	groupedRangeRe  = regexp.MustCompile(`^[\d,]+-[\d,]+$`)
	boundedRe       = regexp.MustCompile(`^[<>][\d,]+$`)
	allDigitsRe     = regexp.MustCompile(`^\d+$`)
	yearMonthRe     = regexp.MustCompile(`^\d{4}-\d{2}(-\d{2})?$`)
	phoneNumberRe   = regexp.MustCompile(`^\+\d{7,15}$`)
)

// looksSerialized reports whether text looks like a serialized collection
// (a JSON/Python list or dict) rather than a plain value.
func looksSerialized(text string) bool {
	return strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{") || text == "[]"
}

// collapseSpaces folds runs of whitespace into single spaces and trims the ends.
func collapseSpaces(text string) string {
	return strings.TrimSpace(whitespaceRunRe.ReplaceAllString(text, " "))
}

// CleanFullName drops values that look like filesystem paths or file names,
// strips everything but letters and spaces, and collapses whitespace runs.
func CleanFullName(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if strings.ContainsAny(text, `\/`) ||
		driveLetterRe.MatchString(text) ||
		fileExtRe.MatchString(text) {
		return ""
	}
	return collapseSpaces(nonLetterRe.ReplaceAllString(text, ""))
}

// CleanJobTitle drops serialized-collection values and passes everything
// else through unchanged.
func CleanJobTitle(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || looksSerialized(text) {
		return ""
	}
	return text
}

// CleanIndustry drops serialized collections, values containing digits, and
// values with characters outside letters, spaces, commas, hyphens, and
// ampersands. Whitespace runs are collapsed.
func CleanIndustry(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || looksSerialized(text) || digitRe.MatchString(text) {
		return ""
	}
	if industryCharRe.MatchString(text) {
		return ""
	}
	return collapseSpaces(text)
}

// CleanSummary drops serialized collections and pure numeric shapes
// (ranges like 1-10, counts like 10001+, decimals like 9.0).
func CleanSummary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || looksSerialized(text) {
		return ""
	}
	if numericRangeRe.MatchString(text) ||
		numberPlusRe.MatchString(text) ||
		decimalRe.MatchString(text) {
		return ""
	}
	return text
}

// CleanLocationCountry drops serialized collections, ISO dates, comma-grouped
// numeric ranges (55,000-70,000), bounded comparisons (<20,000 / >250,000),
// decimals, and single-character values.
func CleanLocationCountry(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || looksSerialized(text) {
		return ""
	}
	if isoDateRe.MatchString(text) ||
		groupedRangeRe.MatchString(text) ||
		boundedRe.MatchString(text) ||
		decimalRe.MatchString(text) {
		return ""
	}
	if utf8.RuneCountInString(text) == 1 {
		return ""
	}
	return text
}

// CleanJobSummary drops single-character, purely numeric, and date-shaped
// (YYYY-MM or YYYY-MM-DD) values.
func CleanJobSummary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if utf8.RuneCountInString(text) == 1 ||
		allDigitsRe.MatchString(text) ||
		yearMonthRe.MatchString(text) {
		return ""
	}
	return text
}

// CleanEducation parses a list literal of education entries and projects
// each entry's school.name. Malformed or non-list input yields an empty list.
func CleanEducation(text string) []string {
	list, ok := tagList(text)
	if !ok {
		return nil
	}
	var names []string
	for _, item := range list {
		entry, ok := getMap(item)
		if !ok {
			continue
		}
		school, ok := getMap(entry["school"])
		if !ok {
			continue
		}
		if name, ok := getString(school, "name"); ok {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// CleanExperience parses a list literal of experience entries and projects
// company.name and title.name from each. Entries with both emit
// "company : title"; entries with one emit it alone; entries with neither
// are skipped.
func CleanExperience(text string) []string {
	list, ok := tagList(text)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		entry, ok := getMap(item)
		if !ok {
			continue
		}
		var company, title string
		if m, ok := getMap(entry["company"]); ok {
			if name, ok := getString(m, "name"); ok {
				company = strings.TrimSpace(name)
			}
		}
		if m, ok := getMap(entry["title"]); ok {
			if name, ok := getString(m, "name"); ok {
				title = strings.TrimSpace(name)
			}
		}
		switch {
		case company != "" && title != "":
			out = append(out, company+" : "+title)
		case company != "":
			out = append(out, company)
		case title != "":
			out = append(out, title)
		}
	}
	return out
}

// CleanSkills parses a list literal and keeps the string elements, dropping
// blanks and values that are international phone numbers in disguise.
func CleanSkills(text string) []string {
	list, ok := tagList(text)
	if !ok {
		return nil
	}
	var skills []string
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || phoneNumberRe.MatchString(s) {
			continue
		}
		skills = append(skills, s)
	}
	return skills
}

// tagList strips text and, when it looks like a list literal, parses it.
// Any failure fails closed with ok=false.
func tagList(text string) ([]any, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, false
	}
	list, err := parseList(text)
	if err != nil {
		return nil, false
	}
	return list, true
}
