package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile is the engine's own ignore file, read from the scanned folder root.
const IgnoreFile = ".dirsigignore"

// defaultExcludes are matched by substring containment against the
// slash-normalized relative path. They are checked before any pattern rules
// and cannot be re-included by negation.
var defaultExcludes = []string{
	".git",
	".svn",
	".hg",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"coverage",
	"__pycache__",
	".cache",
	".DS_Store",
	"Thumbs.db",
	".log",
}

// Matcher decides which relative paths are excluded from scanning.
// Built-in excludes win unconditionally; ignore-file lines and extra
// patterns use gitignore semantics, so a later negation rule can
// re-include a path excluded by an earlier pattern.
type Matcher struct {
	builtins []string
	rules    *gitignore.GitIgnore
}

// NewMatcher builds a matcher for one folder root. Lines are read from
// .dirsigignore (falling back to .gitignore) at the root if present, then
// extraPatterns are appended. A missing or unreadable ignore file
// contributes no rules.
func NewMatcher(rootPath string, extraPatterns []string) *Matcher {
	lines := readIgnoreLines(filepath.Join(rootPath, IgnoreFile))
	if lines == nil {
		lines = readIgnoreLines(filepath.Join(rootPath, ".gitignore"))
	}
	lines = append(lines, extraPatterns...)

	m := &Matcher{builtins: defaultExcludes}
	if len(lines) > 0 {
		m.rules = gitignore.CompileIgnoreLines(lines...)
	}
	return m
}

// ShouldIgnore returns true when relPath should be excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	if relPath == "" || relPath == "." {
		return false
	}

	for _, needle := range m.builtins {
		if strings.Contains(relPath, needle) {
			return true
		}
	}

	if m.rules == nil {
		return false
	}
	if m.rules.MatchesPath(relPath) {
		return true
	}
	// Directory patterns like "logs/" only match the slash-terminated form.
	return isDir && m.rules.MatchesPath(relPath+"/")
}

func readIgnoreLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if sc.Err() != nil {
		return nil
	}
	return lines
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
