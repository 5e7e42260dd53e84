package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	quietFlag   bool
	catalogFlag bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the HTML documentation site",
	Long: `Generate documents every source file matched by paths.include, writing one
HTML page per file plus index.html and manifest.json to output.dir.

A file whose doc comments use a type expression that cannot be displayed
fails on its own; the remaining files are still generated and the command
exits with an error listing the failures.

Examples:
  # Generate into the configured output directory
  autodoc generate

  # Also refresh the search catalog
  autodoc generate --catalog
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVar(&catalogFlag, "catalog", false, "Also write parsed documentation to the catalog")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	rootDir, cfg, err := loadProject()
	if err != nil {
		return err
	}

	cat, err := maybeCatalog(rootDir, cfg)
	if err != nil {
		return err
	}
	if cat != nil {
		defer cat.Close()
	}

	out := cmd.OutOrStdout()
	gen, err := newGenerator(rootDir, cfg, out, quietFlag, cat)
	if err != nil {
		return err
	}
	defer gen.Close()

	res, err := gen.Generate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if !quietFlag {
		fmt.Fprintf(out, "Site written to %s (build %s)\n", gen.OutputDir(), res.Manifest.BuildID)
	}
	return failureError(res)
}
