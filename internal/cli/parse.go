package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var compactFlag bool

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Print the documentation extracted from one file as JSON",
	Long: `Parse runs the documentation pipeline over a single JavaScript file and
prints the resulting library structure (name, description, namespaces and
every documented function) as JSON. Parse options come from the project
configuration.

Examples:
  autodoc parse lib/sequence.js
  autodoc parse --compact lib/sequence.js | jq '.docs[].name'
`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&compactFlag, "compact", false, "Print JSON on one line")
}

func runParse(cmd *cobra.Command, args []string) error {
	rootDir, cfg, err := loadProject()
	if err != nil {
		return err
	}

	gen, err := newGenerator(rootDir, cfg, cmd.ErrOrStderr(), true, nil)
	if err != nil {
		return err
	}
	defer gen.Close()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	lib, _, err := gen.ParseFile(path)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !compactFlag {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(lib)
}
