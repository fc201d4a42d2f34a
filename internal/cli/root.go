package cli

import (
	"fmt"

	"github.com/dirsig-dev/dirsig/internal/scanner"
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dirsig",
		Short: "Incremental, content-addressed folder change detection",
		Long: `Dirsig maintains a hash index over a directory tree so repeated runs
can tell exactly which folders' tracked files changed since the last
commit. It backs documentation tooling that only wants to rework stale
folders.

The index is a single JSON document (` + "`.dirsig.json`" + `) at the working
root. Parent folders should be committed after their children when a
caller walks the tree bottom-up.`,
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		configureLogging(verbose)
	}

	scanCmd := &cobra.Command{
		Use:   "scan [folder]",
		Short: "List tracked files in a folder (no hashing, no index access)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunScan,
	}
	scanCmd.Flags().String("ext", scanner.DefaultExtensions, "Comma-separated extension allow-list")
	scanCmd.Flags().String("ignore", "", "Comma-separated extra ignore patterns")
	scanCmd.Flags().Bool("json", false, "Print machine-readable output")

	hashCmd := &cobra.Command{
		Use:   "hash [folder]",
		Short: "Compute per-file and composite digests without touching the index",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunHash,
	}
	hashCmd.Flags().String("ext", scanner.DefaultExtensions, "Comma-separated extension allow-list")
	hashCmd.Flags().String("ignore", "", "Comma-separated extra ignore patterns")
	hashCmd.Flags().Bool("json", false, "Print machine-readable output")

	updateCmd := &cobra.Command{
		Use:   "update [folder]",
		Short: "Commit a folder's fresh state to the index when it changed",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunUpdate,
	}
	updateCmd.Flags().String("ext", scanner.DefaultExtensions, "Comma-separated extension allow-list")
	updateCmd.Flags().String("ignore", "", "Comma-separated extra ignore patterns")
	updateCmd.Flags().Bool("json", false, "Print machine-readable output")

	changesCmd := &cobra.Command{
		Use:   "changes [folder]",
		Short: "Report what changed since the last commit (read-only)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunChanges,
	}
	changesCmd.Flags().String("ext", scanner.DefaultExtensions, "Comma-separated extension allow-list")
	changesCmd.Flags().String("ignore", "", "Comma-separated extra ignore patterns")
	changesCmd.Flags().Bool("json", false, "Print machine-readable output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dirsig %s\n", version)
		},
	}

	rootCmd.AddCommand(
		scanCmd,
		hashCmd,
		updateCmd,
		changesCmd,
		versionCmd,
	)

	return rootCmd
}
