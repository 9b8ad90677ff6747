package normalize

import (
	"reflect"
	"testing"
)

func TestCleanFullName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"windows path", `C:\Users\a.csv`, ""},
		{"unix path", "/home/user/data", ""},
		{"drive letter", "D: stuff", ""},
		{"csv extension", "profiles.csv", ""},
		{"xlsx extension uppercase", "EXPORT.XLSX", ""},
		{"digits stripped and spaces collapsed", "Jane   Doe123", "Jane Doe"},
		{"plain name", "Jane Doe", "Jane Doe"},
		{"leading junk stripped", "123 Jane", "Jane"},
		{"only junk", "12345!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFullName(tt.in); got != tt.want {
				t.Errorf("CleanFullName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanJobTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"list literal", "['a', 'b']", ""},
		{"dict literal", "{'a': 1}", ""},
		{"empty list", "[]", ""},
		{"plain title", "Senior Engineer", "Senior Engineer"},
		{"padded title", "  CTO  ", "CTO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJobTitle(tt.in); got != tt.want {
				t.Errorf("CleanJobTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanIndustry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"allowed punctuation", "Tech, Media & Co", "Tech, Media & Co"},
		{"digits", "3 Tech", ""},
		{"list literal", "['tech']", ""},
		{"forbidden characters", "Oil/Gas", ""},
		{"collapses spaces", "Health   Care", "Health Care"},
		{"hyphenated", "Agri-business", "Agri-business"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanIndustry(tt.in); got != tt.want {
				t.Errorf("CleanIndustry(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"number with plus", "10001+", ""},
		{"numeric range", "1-10", ""},
		{"decimal", "9.0", ""},
		{"dict literal", "{'x': 1}", ""},
		{"free text", "Loves tech", "Loves tech"},
		{"text containing numbers", "10 years of Go", "10 years of Go"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSummary(tt.in); got != tt.want {
				t.Errorf("CleanSummary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanLocationCountry(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"grouped range", "55,000-70,000", ""},
		{"single character", "U", ""},
		{"single rune", "Ü", ""},
		{"iso date", "2021-04-30", ""},
		{"less than", "<20,000", ""},
		{"greater than", ">250,000", ""},
		{"decimal", "41.0", ""},
		{"list literal", "[]", ""},
		{"country", "Germany", "Germany"},
		{"two characters pass", "US", "US"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLocationCountry(tt.in); got != tt.want {
				t.Errorf("CleanLocationCountry(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanJobSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single character", "x", ""},
		{"all digits", "20210", ""},
		{"year month", "2021-04", ""},
		{"year month day", "2021-04-30", ""},
		{"real summary", "I work on the CREW platform", "I work on the CREW platform"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanJobSummary(tt.in); got != tt.want {
				t.Errorf("CleanJobSummary(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanEducation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"not a list", "MIT", nil},
		{"malformed literal", "[{'school': ", nil},
		{
			"two schools in order",
			"[{'school': {'name': 'MIT'}}, {'school': {'name': 'Cairo Univ'}}]",
			[]string{"MIT", "Cairo Univ"},
		},
		{
			"entries without school skipped",
			"[{'degree': 'BSc'}, {'school': {'name': ' Oxford '}}]",
			[]string{"Oxford"},
		},
		{"school name not a string", "[{'school': {'name': 42}}]", nil},
		{"school name blank", "[{'school': {'name': '  '}}]", nil},
		{"non-dict elements skipped", "['x', {'school': {'name': 'ETH'}}]", []string{"ETH"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanEducation(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanEducation(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanExperience(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{
			"company and title joined",
			"[{'company': {'name': 'Acme'}, 'title': {'name': 'CEO'}}]",
			[]string{"Acme : CEO"},
		},
		{
			"title only",
			"[{'title': {'name': 'CEO'}}]",
			[]string{"CEO"},
		},
		{
			"company only",
			"[{'company': {'name': 'Acme'}}]",
			[]string{"Acme"},
		},
		{
			"neither skipped, order preserved",
			"[{'foo': 1}, {'company': {'name': 'A'}}, {'company': {'name': 'B'}, 'title': {'name': 'VP'}}]",
			[]string{"A", "B : VP"},
		},
		{
			"none values tolerated",
			"[{'company': None, 'title': {'name': 'Analyst'}}]",
			[]string{"Analyst"},
		},
		{"malformed", "[{'company'", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanExperience(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanExperience(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanSkills(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"not a list", "Python", nil},
		{
			"phone numbers and blanks dropped",
			"['Python', '+14155550100', '']",
			[]string{"Python"},
		},
		{
			"short plus-number kept",
			"['+123456']",
			[]string{"+123456"},
		},
		{
			"non-string elements dropped",
			"[42, None, 'Go', ['nested']]",
			[]string{"Go"},
		},
		{
			"elements stripped",
			"['  SQL  ', 'ETL']",
			[]string{"SQL", "ETL"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSkills(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CleanSkills(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// Cleaning is a projection: re-cleaning an already-cleaned text value
// changes nothing.
func TestTextCleanersIdempotent(t *testing.T) {
	inputs := []string{
		"Jane   Doe123", "Senior Engineer", "Tech, Media & Co",
		"Loves tech", "Germany", "I work on the CREW platform",
		"", "   ", "10001+", "['a']",
	}
	for name, fn := range textCleaners {
		for _, in := range inputs {
			once := fn(in)
			twice := fn(once)
			if once != twice {
				t.Errorf("%s not idempotent on %q: first %q, second %q", name, in, once, twice)
			}
		}
	}
}
