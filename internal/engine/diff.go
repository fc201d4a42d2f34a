package engine

import (
	"sort"

	"github.com/dirsig-dev/dirsig/internal/fileutil"
	"github.com/dirsig-dev/dirsig/internal/index"
)

// ChangeSet classifies the difference between a fresh scan and the stored
// entry. The three-way split is kept so callers can treat removals
// separately; reports that do not care flatten it with Paths.
type ChangeSet struct {
	Added    []string
	Modified []string
	Removed  []string
}

// Empty reports whether nothing changed.
func (c ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// Paths flattens the change set into one sorted list of paths.
func (c ChangeSet) Paths() []string {
	all := make([]string, 0, len(c.Added)+len(c.Modified)+len(c.Removed))
	all = append(all, c.Added...)
	all = append(all, c.Modified...)
	all = append(all, c.Removed...)
	all = fileutil.DedupeStrings(all)
	sort.Strings(all)
	return all
}

// Diff compares a fresh scan against the previously committed entry.
// A nil prev means first run: every discovered file is added. Matching
// composite digests short-circuit to an empty set.
func Diff(prev *index.FolderEntry, cur ScanResult) ChangeSet {
	if prev == nil {
		added := make([]string, 0, len(cur.Files))
		for _, rec := range cur.Files {
			added = append(added, rec.Path)
		}
		return ChangeSet{Added: added}
	}

	if prev.Hash == cur.CompositeDigest {
		return ChangeSet{}
	}

	oldDigests := make(map[string]string, len(prev.Files))
	for _, rec := range prev.Files {
		oldDigests[rec.Path] = rec.Digest
	}

	var changes ChangeSet
	seen := make(map[string]bool, len(cur.Files))
	for _, rec := range cur.Files {
		seen[rec.Path] = true
		oldDigest, existed := oldDigests[rec.Path]
		switch {
		case !existed:
			changes.Added = append(changes.Added, rec.Path)
		case oldDigest != rec.Digest:
			changes.Modified = append(changes.Modified, rec.Path)
		}
	}
	for _, rec := range prev.Files {
		if !seen[rec.Path] {
			changes.Removed = append(changes.Removed, rec.Path)
		}
	}

	sort.Strings(changes.Added)
	sort.Strings(changes.Modified)
	sort.Strings(changes.Removed)
	return changes
}
