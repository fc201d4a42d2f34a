package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dirsig-dev/dirsig/internal/ignore"
)

// DefaultExtensions covers common source extensions for the command surface.
const DefaultExtensions = ".ts,.tsx,.js,.jsx,.go,.py,.rs,.java,.rb,.c,.h,.cpp,.hpp,.cs,.md"

// ExtSet is the allow-list of file extensions, each with its leading dot.
type ExtSet map[string]bool

// ParseExtSet builds an ExtSet from a comma-separated list. Entries are
// trimmed and get a leading dot when missing; empty entries are dropped.
func ParseExtSet(list string) ExtSet {
	set := make(ExtSet)
	for _, raw := range strings.Split(list, ",") {
		ext := strings.TrimSpace(raw)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// Allows reports whether a file extension is in the allow-list.
// Files with no extension are never allowed.
func (s ExtSet) Allows(ext string) bool {
	return ext != "" && s[ext]
}

// Scan enumerates the regular files under rootPath whose extension is in
// exts and which the matcher does not exclude. Returned paths are relative
// to rootPath, forward-slash separated, and sorted lexicographically so the
// result does not depend on filesystem iteration order. Unreadable entries,
// symlinks, and other special files are skipped.
func Scan(rootPath string, exts ExtSet, matcher *ignore.Matcher) ([]string, error) {
	files := make([]string, 0)

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			// Best effort: unreadable entries are not fatal.
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if matcher.ShouldIgnore(relPath, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !exts.Allows(filepath.Ext(relPath)) {
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
