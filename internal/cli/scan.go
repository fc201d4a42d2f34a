package cli

import (
	"fmt"

	"github.com/dirsig-dev/dirsig/internal/fileutil"
	"github.com/spf13/cobra"
)

type scanReport struct {
	Folder string   `json:"folder"`
	Files  []string `json:"files"`
}

func RunScan(cmd *cobra.Command, args []string) error {
	inv, err := parseInvocation(cmd, args)
	if err != nil {
		return err
	}
	eng, err := newEngine()
	if err != nil {
		return err
	}

	files, err := eng.Scan(inv.folder, inv.cfg)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", inv.folder, err)
	}

	if inv.asJSON {
		return fileutil.PrintJSON(scanReport{Folder: inv.folder, Files: files})
	}
	for _, file := range files {
		fmt.Println(file)
	}
	fmt.Printf("%d tracked files in %s\n", len(files), inv.folder)
	return nil
}
