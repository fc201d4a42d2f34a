package cli

import (
	"fmt"

	"github.com/dirsig-dev/dirsig/internal/fileutil"
	"github.com/spf13/cobra"
)

type hashReport struct {
	FolderHash string            `json:"folderHash"`
	Files      map[string]string `json:"files"`
}

func RunHash(cmd *cobra.Command, args []string) error {
	inv, err := parseInvocation(cmd, args)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Snapshot(inv.folder, inv.cfg)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", inv.folder, err)
	}

	files := make(map[string]string, len(result.Files))
	for _, rec := range result.Files {
		files[rec.Path] = rec.Digest
	}

	if inv.asJSON {
		return fileutil.PrintJSON(hashReport{FolderHash: result.CompositeDigest, Files: files})
	}
	for _, rec := range result.Files {
		fmt.Printf("%s  %s\n", rec.Digest, rec.Path)
	}
	fmt.Printf("folder hash: %s (%d files)\n", result.CompositeDigest, len(result.Files))
	return nil
}
