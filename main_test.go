package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/scipunch/feedlib/document"
)

func TestWriteResults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "feeds.json")

	doc := document.New()
	doc.Set("title", "Example")
	doc.Set(document.EntriesKey, []document.Document{})

	if err := writeResults(out, []document.Document{doc}); err != nil {
		t.Fatalf("writeResults failed: %v", err)
	}

	dat, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(dat, &decoded); err != nil {
		t.Fatalf("Output is not a JSON list: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["title"] != "Example" {
		t.Errorf("Unexpected output: %s", dat)
	}
}

func TestWriteResults_NoResults(t *testing.T) {
	out := filepath.Join(t.TempDir(), "feeds.json")

	if err := writeResults(out, nil); err != nil {
		t.Fatalf("writeResults failed: %v", err)
	}

	dat, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(dat) != "[]" {
		t.Errorf("Expected an empty JSON list, got %s", dat)
	}
}
