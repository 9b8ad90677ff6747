package models

import (
	"testing"

	"github.com/hyperjump/rireki/internal/columns"
)

func TestTextAndTagsAccessors(t *testing.T) {
	p := &ProfileRecord{
		FullName: "Jane Doe",
		Skills:   []string{"Go", "SQL"},
	}
	if got := p.Text(columns.FullName); got != "Jane Doe" {
		t.Errorf("Text(full_name) = %q", got)
	}
	if got := p.Text(columns.Skills); got != "" {
		t.Errorf("Text on tag column = %q, want empty", got)
	}
	if got := p.Tags(columns.Skills); len(got) != 2 {
		t.Errorf("Tags(skills) = %v", got)
	}
	if got := p.Tags(columns.FullName); got != nil {
		t.Errorf("Tags on text column = %v, want nil", got)
	}
	if got := p.TagDisplay(columns.Skills); got != "Go | SQL" {
		t.Errorf("TagDisplay(skills) = %q", got)
	}
}

func TestSettersRoundTrip(t *testing.T) {
	p := &ProfileRecord{}
	for _, col := range columns.All() {
		if columns.IsTag(col) {
			p.SetTags(col, []string{col + "-v"})
			if got := p.Tags(col); len(got) != 1 || got[0] != col+"-v" {
				t.Errorf("SetTags/Tags(%s) = %v", col, got)
			}
		} else {
			p.SetText(col, col+"-v")
			if got := p.Text(col); got != col+"-v" {
				t.Errorf("SetText/Text(%s) = %q", col, got)
			}
		}
	}
}

func TestDedupKey(t *testing.T) {
	a := &ProfileRecord{FullName: "Jane", Skills: []string{"Go", "SQL"}}
	b := &ProfileRecord{FullName: "Jane", Skills: []string{"Go", "SQL"}}
	c := &ProfileRecord{FullName: "Jane", Skills: []string{"Go"}}
	if a.DedupKey() != b.DedupKey() {
		t.Error("identical records should share a dedup key")
	}
	if a.DedupKey() == c.DedupKey() {
		t.Error("records differing in one column should not collide")
	}

	// A joined tag list must not collide with differently-split tags.
	d := &ProfileRecord{Skills: []string{"Go", "SQL"}}
	e := &ProfileRecord{Skills: []string{"Go SQL"}}
	if d.DedupKey() == e.DedupKey() {
		t.Error("tag boundary must be part of the key")
	}

	// The ID is not part of the identity.
	f := &ProfileRecord{ID: "x", FullName: "Jane", Skills: []string{"Go", "SQL"}}
	if a.DedupKey() != f.DedupKey() {
		t.Error("dedup key must ignore the assigned ID")
	}
}

func TestDedupKeyControlBytes(t *testing.T) {
	// Pass-through columns keep arbitrary bytes, so the key must stay
	// injective even when values contain the old separator bytes.
	cases := []struct {
		name string
		a, b *ProfileRecord
	}{
		{
			name: "separator inside a tag",
			a:    &ProfileRecord{Skills: []string{"a\x1fb"}},
			b:    &ProfileRecord{Skills: []string{"a", "b"}},
		},
		{
			name: "separator inside a text column",
			a:    &ProfileRecord{JobTitle: "x\x1e", Summary: "y"},
			b:    &ProfileRecord{JobTitle: "x", Summary: "\x1ey"},
		},
		{
			name: "value shifted across columns",
			a:    &ProfileRecord{JobTitle: "ab", Summary: ""},
			b:    &ProfileRecord{JobTitle: "a", Summary: "b"},
		},
	}
	for _, tc := range cases {
		if tc.a.DedupKey() == tc.b.DedupKey() {
			t.Errorf("%s: distinct records collide", tc.name)
		}
	}
}
