package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mvp-joe/autodoc/internal/catalog"
	"github.com/mvp-joe/autodoc/internal/search"
	"github.com/spf13/cobra"
)

var searchOpts struct {
	limit     int
	namespace string
	tag       string
	source    string
	json      bool
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed documentation",
	Long: `Search runs a full-text query over the functions in the catalog. Run
"autodoc index" first to populate it.

The query supports field scoping (name:map, description:elements), boolean
operators, phrases and wildcards. An empty query lists every function.

Examples:
  autodoc search "transforms elements"
  autodoc search 'short_name:map' --namespace Sequence
  autodoc search --tag deprecated --json
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchOpts.limit, "limit", "n", search.DefaultLimit, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchOpts.namespace, "namespace", "", "Only functions in this namespace")
	searchCmd.Flags().StringVar(&searchOpts.tag, "tag", "", "Only functions carrying this tag")
	searchCmd.Flags().StringVar(&searchOpts.source, "source", "", "Only functions from this source file")
	searchCmd.Flags().BoolVar(&searchOpts.json, "json", false, "Print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rootDir, cfg, err := loadProject()
	if err != nil {
		return err
	}

	cat, err := openCatalog(rootDir, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	fns, err := cat.Functions(catalog.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(fns) == 0 {
		fmt.Fprintln(out, `The catalog is empty. Run "autodoc index" first.`)
		return nil
	}

	index, err := search.New(ctx, fns)
	if err != nil {
		return fmt.Errorf("failed to build search index: %w", err)
	}
	defer index.Close()

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	results, err := index.Search(ctx, query, search.Options{
		Limit:     searchOpts.limit,
		Namespace: searchOpts.namespace,
		Tag:       searchOpts.tag,
		Source:    searchOpts.source,
	})
	if err != nil {
		return err
	}

	if searchOpts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s  (%s)\n", r.Name, r.Source)
		if r.Signature != "" {
			fmt.Fprintf(out, "    %s\n", r.Signature)
		}
		for _, h := range r.Highlights {
			fmt.Fprintf(out, "    %s\n", strings.TrimSpace(h))
		}
	}
	return nil
}
