package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// hashWorkers bounds concurrent file reads during a folder scan.
const hashWorkers = 8

// FileRecord pairs a forward-slash relative path with its content digest.
// The JSON field names match the persisted index format.
type FileRecord struct {
	Path   string `json:"p"`
	Digest string `json:"h"`
}

// File returns the hex digest of the file's full content. MD5 is used as a
// fast change-detection fingerprint, not for integrity.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Folder folds an already-sorted sequence of records into one composite
// digest. The "path:digest|" framing and the sort order are part of the
// persisted format: changing either invalidates every stored digest.
func Folder(records []FileRecord) string {
	h := md5.New()
	for _, rec := range records {
		io.WriteString(h, rec.Path)
		io.WriteString(h, ":")
		io.WriteString(h, rec.Digest)
		io.WriteString(h, "|")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashAll hashes the given root-relative files concurrently and returns the
// records sorted by path. Files that cannot be read (permissions, deleted
// mid-scan) are dropped from the result for this run.
func HashAll(rootPath string, relPaths []string) []FileRecord {
	results := make([]FileRecord, len(relPaths))

	var g errgroup.Group
	g.SetLimit(hashWorkers)
	for i, relPath := range relPaths {
		i, relPath := i, relPath
		g.Go(func() error {
			digest, err := File(filepath.Join(rootPath, filepath.FromSlash(relPath)))
			if err != nil {
				slog.Debug("skipping unreadable file", "path", relPath, "error", err)
				return nil
			}
			results[i] = FileRecord{Path: relPath, Digest: digest}
			return nil
		})
	}
	// Workers swallow read errors, so Wait only synchronizes.
	_ = g.Wait()

	records := make([]FileRecord, 0, len(results))
	for _, rec := range results {
		if rec.Digest != "" {
			records = append(records, rec)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
	return records
}
