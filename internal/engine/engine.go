package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dirsig-dev/dirsig/internal/hashing"
	"github.com/dirsig-dev/dirsig/internal/ignore"
	"github.com/dirsig-dev/dirsig/internal/index"
	"github.com/dirsig-dev/dirsig/internal/scanner"
)

// Config is the per-invocation scan configuration: which extensions are
// tracked and which extra patterns are excluded.
type Config struct {
	Extensions     scanner.ExtSet
	IgnorePatterns []string
}

// ScanResult is the live recomputation of one folder during one invocation.
// Files are sorted by path; CompositeDigest summarizes them.
type ScanResult struct {
	FolderKey       string
	Files           []hashing.FileRecord
	CompositeDigest string
}

// ChangesResult is the read-only answer to "what changed since last commit".
type ChangesResult struct {
	FolderKey       string
	FileCount       int
	CompositeDigest string
	Dirty           bool
	Changes         ChangeSet
}

// UpdateResult reports a commit attempt. Updated is false when the folder
// was already clean and no write happened.
type UpdateResult struct {
	FolderKey string
	Updated   bool
	FileCount int
	Changes   ChangeSet
}

// Engine runs the scan/changes/update protocol against one project root.
// The index document lives at the root; folder arguments address the root
// itself or folders below it. Read-only operations are safe to run
// concurrently; commits assume a single writer.
type Engine struct {
	rootPath string
	loadOnce sync.Once
	idx      *index.Index
}

// New returns an engine bound to rootPath. The index document is loaded on
// first use, so scan and hash queries never touch it.
func New(rootPath string) *Engine {
	return &Engine{rootPath: rootPath}
}

func (e *Engine) index() *index.Index {
	e.loadOnce.Do(func() {
		e.idx = index.Load(e.rootPath)
	})
	return e.idx
}

// Scan enumerates the tracked files of one folder. No hashing, no index access.
func (e *Engine) Scan(folder string, cfg Config) ([]string, error) {
	folderPath, _, err := e.resolveFolder(folder)
	if err != nil {
		return nil, err
	}
	matcher := ignore.NewMatcher(folderPath, cfg.IgnorePatterns)
	return scanner.Scan(folderPath, cfg.Extensions, matcher)
}

// Snapshot scans and hashes one folder without touching the index.
func (e *Engine) Snapshot(folder string, cfg Config) (ScanResult, error) {
	folderPath, key, err := e.resolveFolder(folder)
	if err != nil {
		return ScanResult{}, err
	}

	matcher := ignore.NewMatcher(folderPath, cfg.IgnorePatterns)
	paths, err := scanner.Scan(folderPath, cfg.Extensions, matcher)
	if err != nil {
		return ScanResult{}, err
	}

	records := hashing.HashAll(folderPath, paths)
	return ScanResult{
		FolderKey:       key,
		Files:           records,
		CompositeDigest: hashing.Folder(records),
	}, nil
}

// Changes diffs a fresh snapshot against the stored entry. It never mutates
// the index: a folder that has only ever been diffed gets no entry.
func (e *Engine) Changes(folder string, cfg Config) (ChangesResult, error) {
	cur, err := e.Snapshot(folder, cfg)
	if err != nil {
		return ChangesResult{}, err
	}

	prev := e.storedEntry(cur.FolderKey)
	return ChangesResult{
		FolderKey:       cur.FolderKey,
		FileCount:       len(cur.Files),
		CompositeDigest: cur.CompositeDigest,
		Dirty:           prev == nil || prev.Hash != cur.CompositeDigest,
		Changes:         Diff(prev, cur),
	}, nil
}

// Update commits a folder: when the fresh composite digest differs from the
// stored one (or no entry exists), the entry is replaced and the whole index
// is persisted. A clean folder performs no write at all.
func (e *Engine) Update(folder string, cfg Config) (UpdateResult, error) {
	cur, err := e.Snapshot(folder, cfg)
	if err != nil {
		return UpdateResult{}, err
	}

	prev := e.storedEntry(cur.FolderKey)
	if prev != nil && prev.Hash == cur.CompositeDigest {
		return UpdateResult{FolderKey: cur.FolderKey, FileCount: len(cur.Files)}, nil
	}

	changes := Diff(prev, cur)
	idx := e.index()
	idx.SetEntry(cur.FolderKey, index.FolderEntry{
		Hash:  cur.CompositeDigest,
		Files: cur.Files,
	})
	if err := idx.Save(e.rootPath); err != nil {
		// Roll back so the cached index keeps matching the on-disk document;
		// otherwise a retry would see the folder as clean and never write.
		if prev != nil {
			idx.SetEntry(cur.FolderKey, *prev)
		} else {
			delete(idx.Folders, cur.FolderKey)
		}
		return UpdateResult{}, fmt.Errorf("failed to persist index for %s: %w", cur.FolderKey, err)
	}
	slog.Debug("committed folder entry", "folder", cur.FolderKey, "files", len(cur.Files), "digest", cur.CompositeDigest)

	return UpdateResult{
		FolderKey: cur.FolderKey,
		Updated:   true,
		FileCount: len(cur.Files),
		Changes:   changes,
	}, nil
}

func (e *Engine) storedEntry(key string) *index.FolderEntry {
	entry, ok := e.index().Entry(key)
	if !ok {
		return nil
	}
	return &entry
}

// resolveFolder turns a caller-supplied folder argument into an absolute
// path and its root-relative key ("." for the root itself). The folder must
// exist, be a directory, and sit at or below the working root: anything else
// is a caller error, not something to silently commit an empty entry for.
func (e *Engine) resolveFolder(folder string) (string, string, error) {
	if folder == "" {
		return "", "", fmt.Errorf("folder argument must not be empty")
	}

	folderPath := folder
	if !filepath.IsAbs(folderPath) {
		folderPath = filepath.Join(e.rootPath, folderPath)
	}
	folderPath = filepath.Clean(folderPath)

	key, err := filepath.Rel(e.rootPath, folderPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve folder key for %s: %w", folder, err)
	}
	key = filepath.ToSlash(key)
	if key == ".." || strings.HasPrefix(key, "../") {
		return "", "", fmt.Errorf("folder %s is outside the working root", folder)
	}

	info, err := os.Stat(folderPath)
	if err != nil {
		return "", "", fmt.Errorf("folder %s is not accessible: %w", folder, err)
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("folder %s is not a directory", folder)
	}
	return folderPath, key, nil
}
