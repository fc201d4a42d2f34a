package cli

import (
	"fmt"

	"github.com/dirsig-dev/dirsig/internal/fileutil"
	"github.com/spf13/cobra"
)

type updateReport struct {
	Updated      bool     `json:"updated"`
	Folder       string   `json:"folder"`
	FileCount    int      `json:"fileCount"`
	ChangedFiles []string `json:"changedFiles"`
}

func RunUpdate(cmd *cobra.Command, args []string) error {
	inv, err := parseInvocation(cmd, args)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.Update(inv.folder, inv.cfg)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", inv.folder, err)
	}

	if inv.asJSON {
		return fileutil.PrintJSON(updateReport{
			Updated:      result.Updated,
			Folder:       inv.folder,
			FileCount:    result.FileCount,
			ChangedFiles: result.Changes.Paths(),
		})
	}

	if !result.Updated {
		fmt.Printf("no changes in %s\n", inv.folder)
		return nil
	}
	fmt.Printf("updated %s: %d tracked files, %d changed\n", inv.folder, result.FileCount, len(result.Changes.Paths()))
	return nil
}
