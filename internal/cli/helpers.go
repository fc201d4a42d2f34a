package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dirsig-dev/dirsig/internal/engine"
	"github.com/dirsig-dev/dirsig/internal/scanner"
	"github.com/spf13/cobra"
)

// invocation is one parsed command invocation: the target folder plus the
// typed scan configuration, built once instead of re-parsed per file.
type invocation struct {
	folder string
	cfg    engine.Config
	asJSON bool
}

func parseInvocation(cmd *cobra.Command, args []string) (invocation, error) {
	folder := "."
	if len(args) > 0 {
		folder = strings.TrimSpace(args[0])
	}
	if folder == "" {
		return invocation{}, fmt.Errorf("folder argument must not be empty")
	}

	extList, err := cmd.Flags().GetString("ext")
	if err != nil {
		return invocation{}, fmt.Errorf("failed to read --ext flag: %w", err)
	}
	exts := scanner.ParseExtSet(extList)
	if len(exts) == 0 {
		return invocation{}, fmt.Errorf("at least one file extension is required")
	}

	ignoreList, err := cmd.Flags().GetString("ignore")
	if err != nil {
		return invocation{}, fmt.Errorf("failed to read --ignore flag: %w", err)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return invocation{}, fmt.Errorf("failed to read --json flag: %w", err)
	}

	return invocation{
		folder: folder,
		cfg: engine.Config{
			Extensions:     exts,
			IgnorePatterns: splitPatterns(ignoreList),
		},
		asJSON: asJSON,
	}, nil
}

func splitPatterns(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	patterns := make([]string, 0)
	for _, raw := range strings.Split(list, ",") {
		pattern := strings.TrimSpace(raw)
		if pattern != "" {
			patterns = append(patterns, pattern)
		}
	}
	return patterns
}

func resolveWorkingDirectory() (string, error) {
	rootPath, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}
	return rootPath, nil
}

func newEngine() (*engine.Engine, error) {
	rootPath, err := resolveWorkingDirectory()
	if err != nil {
		return nil, err
	}
	return engine.New(rootPath), nil
}
