package hashing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFile_StableDigest(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, "a.ts", "1")

	first, err := File(path)
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	second, err := File(path)
	if err != nil {
		t.Fatalf("File failed: %v", err)
	}
	if first != second {
		t.Fatalf("expected stable digest, got %s then %s", first, second)
	}
	if len(first) != 32 {
		t.Fatalf("expected 32-char hex digest, got %q", first)
	}
}

func TestFolder_IndependentOfDiscoveryOrder(t *testing.T) {
	records := []FileRecord{
		{Path: "a.ts", Digest: "aa"},
		{Path: "b.ts", Digest: "bb"},
	}

	// Callers sort before composing; identical sorted input must always
	// produce an identical composite.
	first := Folder(records)
	second := Folder(records)
	if first != second {
		t.Fatalf("expected deterministic composite, got %s then %s", first, second)
	}
}

func TestFolder_SensitiveToAnyRecordChange(t *testing.T) {
	base := []FileRecord{
		{Path: "a.ts", Digest: "aa"},
		{Path: "b.ts", Digest: "bb"},
	}
	baseline := Folder(base)

	contentChanged := []FileRecord{
		{Path: "a.ts", Digest: "aa"},
		{Path: "b.ts", Digest: "cc"},
	}
	if Folder(contentChanged) == baseline {
		t.Fatalf("expected composite to change when one digest changes")
	}

	fileRemoved := []FileRecord{
		{Path: "a.ts", Digest: "aa"},
	}
	if Folder(fileRemoved) == baseline {
		t.Fatalf("expected composite to change when a file is removed")
	}
}

func TestHashAll_SortedRegardlessOfInputOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "1")
	writeFile(t, root, "b.ts", "2")
	writeFile(t, root, "sub/c.ts", "3")

	shuffled := HashAll(root, []string{"sub/c.ts", "a.ts", "b.ts"})
	ordered := HashAll(root, []string{"a.ts", "b.ts", "sub/c.ts"})

	if Folder(shuffled) != Folder(ordered) {
		t.Fatalf("expected composite digest to be independent of discovery order")
	}
	for i := 1; i < len(shuffled); i++ {
		if shuffled[i-1].Path >= shuffled[i].Path {
			t.Fatalf("expected sorted records, got %v", shuffled)
		}
	}
}

func TestHashAll_DropsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "1")

	records := HashAll(root, []string{"a.ts", "missing.ts"})

	if len(records) != 1 || records[0].Path != "a.ts" {
		t.Fatalf("expected only a.ts to survive, got %v", records)
	}
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}
