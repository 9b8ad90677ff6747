package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/rireki/internal/columns"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFileCSV(t *testing.T) {
	csvData := "full_name,job_title,skills\n" +
		"Jane Doe,Engineer,\"['Go', 'SQL']\"\n" +
		"John Roe,Analyst,[]\n"
	path := writeTemp(t, "profiles.csv", csvData)

	records, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0][columns.FullName] != "Jane Doe" {
		t.Errorf("full_name = %q", records[0][columns.FullName])
	}
	if records[0][columns.Skills] != "['Go', 'SQL']" {
		t.Errorf("skills = %q", records[0][columns.Skills])
	}
	// Columns missing from the header read as empty.
	if v, ok := records[0][columns.Summary]; !ok || v != "" {
		t.Errorf("summary = %q, ok=%v; want present and empty", v, ok)
	}
}

func TestReadFileShortRows(t *testing.T) {
	csvData := "full_name,job_title\nJane Doe\n"
	path := writeTemp(t, "short.csv", csvData)

	records, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0][columns.JobTitle] != "" {
		t.Errorf("short row should pad job_title, got %q", records[0][columns.JobTitle])
	}
}

func TestReadFileEmptyCSV(t *testing.T) {
	path := writeTemp(t, "empty.csv", "")
	records, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from empty file", len(records))
	}
}

func TestReadFileUnknownHeaderIgnored(t *testing.T) {
	csvData := "full_name,made_up_col\nJane,whatever\n"
	path := writeTemp(t, "extra.csv", csvData)

	records, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if _, ok := records[0]["made_up_col"]; ok {
		t.Error("undeclared header column should not appear in records")
	}
	if records[0][columns.FullName] != "Jane" {
		t.Errorf("full_name = %q", records[0][columns.FullName])
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
