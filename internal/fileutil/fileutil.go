package fileutil

import (
	"encoding/json"
	"io"
	"os"
)

// PrintJSON writes value as indented JSON to stdout.
func PrintJSON(value any) error {
	return EncodeJSON(os.Stdout, value)
}

// EncodeJSON writes value as indented JSON to w.
func EncodeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// DedupeStrings returns items with duplicates removed, first occurrence wins.
func DedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
