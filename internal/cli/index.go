package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the project's documentation into the search catalog",
	Long: `Index parses every source file matched by paths.include and stores the
documented functions in the catalog (catalog.path, .autodoc/catalog.db by
default). The HTML site is not written. Catalog entries whose source file
no longer exists are removed.

The catalog backs the search and mcp commands.

Examples:
  # Refresh the catalog
  autodoc index

  # Without progress bars
  autodoc index --quiet
`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	rootDir, cfg, err := loadProject()
	if err != nil {
		return err
	}

	cat, err := openCatalog(rootDir, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	out := cmd.OutOrStdout()
	gen, err := newGenerator(rootDir, cfg, out, quietFlag, cat)
	if err != nil {
		return err
	}
	defer gen.Close()

	res, err := gen.Index(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("indexing cancelled")
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	if !quietFlag {
		fmt.Fprintf(out, "Indexed %d functions from %d files", res.Stats.Functions, res.Stats.Parsed)
		if res.Stats.Removed > 0 {
			fmt.Fprintf(out, ", removed %d stale sources", res.Stats.Removed)
		}
		fmt.Fprintln(out)
	}
	return failureError(res)
}
