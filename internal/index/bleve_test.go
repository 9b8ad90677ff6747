package index

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/highlight/format/html"

	"github.com/hyperjump/rireki/internal/models"
)

func newTestIndex(t *testing.T) *BleveIndex {
	t.Helper()
	idx, err := NewBleveIndex(filepath.Join(t.TempDir(), "bleve"))
	if err != nil {
		t.Fatalf("NewBleveIndex: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func indexFixtures(t *testing.T, idx *BleveIndex) {
	t.Helper()
	ctx := context.Background()
	profiles := []*models.ProfileRecord{
		{
			ID:       "jane",
			FullName: "Jane Doe",
			Summary:  "Loves tech and search engines",
			Skills:   []string{"Python", "Go"},
		},
		{
			ID:       "john",
			FullName: "John Roe",
			Summary:  "Business analyst",
			Skills:   []string{"Excel"},
		},
	}
	for _, p := range profiles {
		if err := idx.Index(ctx, p); err != nil {
			t.Fatalf("Index(%s): %v", p.ID, err)
		}
	}
}

func TestMatchQueryOnTextColumn(t *testing.T) {
	idx := newTestIndex(t)
	indexFixtures(t, idx)

	mq := bleve.NewMatchQuery("tech")
	mq.SetField("summary")
	req := bleve.NewSearchRequest(mq)
	req.Size = 10

	res, err := idx.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 1 || len(res.Hits) != 1 || res.Hits[0].ID != "jane" {
		t.Errorf("hits = %+v total = %d", res.Hits, res.Total)
	}
}

func TestTermQueryOnTagColumnIsExact(t *testing.T) {
	idx := newTestIndex(t)
	indexFixtures(t, idx)
	ctx := context.Background()

	tq := bleve.NewTermQuery("Python")
	tq.SetField("skills")
	req := bleve.NewSearchRequest(tq)
	req.Size = 10
	res, err := idx.Search(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 || res.Hits[0].ID != "jane" {
		t.Errorf("exact tag match failed: %+v", res)
	}

	// A partial value must not match a keyword-analyzed tag.
	partial := bleve.NewTermQuery("Pyth")
	partial.SetField("skills")
	req = bleve.NewSearchRequest(partial)
	res, err = idx.Search(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 {
		t.Errorf("partial term should not match keyword field: %+v", res)
	}
}

func TestHighlightFragments(t *testing.T) {
	idx := newTestIndex(t)
	indexFixtures(t, idx)

	mq := bleve.NewMatchQuery("search")
	mq.SetField("summary")
	req := bleve.NewSearchRequest(mq)
	req.Size = 10
	req.Highlight = bleve.NewHighlightWithStyle(html.Name)
	req.Highlight.AddField("summary")

	res, err := idx.Search(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 1 {
		t.Fatalf("hits = %d", len(res.Hits))
	}
	frags := res.Hits[0].Fragments["summary"]
	if len(frags) == 0 {
		t.Fatal("expected highlight fragments for summary")
	}
}

func TestRecreateEmptiesIndex(t *testing.T) {
	idx := newTestIndex(t)
	indexFixtures(t, idx)

	if count, _ := idx.DocCount(); count != 2 {
		t.Fatalf("precondition: count = %d", count)
	}
	if err := idx.Recreate(); err != nil {
		t.Fatalf("Recreate: %v", err)
	}
	if count, _ := idx.DocCount(); count != 0 {
		t.Errorf("count after recreate = %d", count)
	}

	// The recreated index accepts writes.
	if err := idx.Index(context.Background(), &models.ProfileRecord{ID: "new", FullName: "New Person"}); err != nil {
		t.Errorf("Index after recreate: %v", err)
	}
}

func TestOpenExistingIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bleve")
	idx, err := NewBleveIndex(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Index(context.Background(), &models.ProfileRecord{ID: "x", FullName: "Someone"}); err != nil {
		t.Fatal(err)
	}
	if err := idx.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBleveIndex(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if count, _ := reopened.DocCount(); count != 1 {
		t.Errorf("count after reopen = %d", count)
	}
}
