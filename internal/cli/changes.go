package cli

import (
	"fmt"

	"github.com/dirsig-dev/dirsig/internal/fileutil"
	"github.com/spf13/cobra"
)

type changesReport struct {
	Folder       string   `json:"folder"`
	FileCount    int      `json:"fileCount"`
	FolderHash   string   `json:"folderHash"`
	ChangedFiles []string `json:"changedFiles"`
	HasChanges   bool     `json:"hasChanges"`
}

func RunChanges(cmd *cobra.Command, args []string) error {
	inv, err := parseInvocation(cmd, args)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Changes(inv.folder, inv.cfg)
	if err != nil {
		return fmt.Errorf("failed to diff %s: %w", inv.folder, err)
	}

	changed := result.Changes.Paths()
	if inv.asJSON {
		return fileutil.PrintJSON(changesReport{
			Folder:       inv.folder,
			FileCount:    result.FileCount,
			FolderHash:   result.CompositeDigest,
			ChangedFiles: changed,
			HasChanges:   result.Dirty,
		})
	}

	if !result.Dirty {
		fmt.Printf("no changes in %s (%d tracked files)\n", inv.folder, result.FileCount)
		return nil
	}
	for _, file := range changed {
		fmt.Println(file)
	}
	fmt.Printf("%d changed in %s (%d tracked files)\n", len(changed), inv.folder, result.FileCount)
	return nil
}
