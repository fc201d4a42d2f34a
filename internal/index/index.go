package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dirsig-dev/dirsig/internal/hashing"
)

// IndexFile is the persisted hash index, one document per project root.
const IndexFile = ".dirsig.json"

// FolderEntry is the last committed state of one folder: its composite
// digest and the per-file digests, sorted by path.
type FolderEntry struct {
	Hash  string               `json:"h"`
	Files []hashing.FileRecord `json:"f"`
}

// Index maps folder keys ("." for the root, POSIX relative paths otherwise)
// to their last committed entries. Only explicitly committed folders appear.
type Index struct {
	Folders map[string]FolderEntry `json:"folders"`
}

// New creates an empty index.
func New() *Index {
	return &Index{Folders: make(map[string]FolderEntry)}
}

// Load reads the index document from rootPath. The index is a cache, so a
// missing, unreadable, or unparsable file yields an empty index rather than
// an error: the cost is recomputation, never a wrong answer.
func Load(rootPath string) *Index {
	path := filepath.Join(rootPath, IndexFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("index unreadable, starting fresh", "path", path, "error", err)
		}
		return New()
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		slog.Warn("index corrupt, starting fresh", "path", path, "error", err)
		return New()
	}
	if idx.Folders == nil {
		idx.Folders = make(map[string]FolderEntry)
	}
	return &idx
}

// Entry returns the committed entry for a folder key.
func (idx *Index) Entry(key string) (FolderEntry, bool) {
	entry, ok := idx.Folders[key]
	return entry, ok
}

// SetEntry replaces one folder's entry. Other keys are untouched.
func (idx *Index) SetEntry(key string, entry FolderEntry) {
	idx.Folders[key] = entry
}

// Save rewrites the whole index document. The write goes to a temp file in
// the same directory, is synced, then renamed over the target, so readers
// never observe a partial document. Write failures propagate: a commit must
// not pretend to succeed, or later runs would treat dirty folders as clean.
func (idx *Index) Save(rootPath string) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	path := filepath.Join(rootPath, IndexFile)
	tmp, err := os.CreateTemp(rootPath, IndexFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp index file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp index file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp index file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}
