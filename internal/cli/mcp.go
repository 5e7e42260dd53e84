package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mvp-joe/autodoc/internal/logging"
	"github.com/mvp-joe/autodoc/internal/mcp"
	"github.com/mvp-joe/autodoc/internal/watcher"
	"github.com/spf13/cobra"
)

var mcpWatch bool

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for documentation search",
	Long: `Start the Model Context Protocol (MCP) server that lets coding assistants
search and look up the project's documented functions.

The MCP server:
- Indexes the project into the catalog on startup
- Provides full-text search via the autodoc_search tool
- Provides exact name lookup via the autodoc_lookup tool
- Communicates via stdio (standard MCP transport)

With --watch, source changes re-index the catalog and refresh the search
index while the server runs.

Example:
  autodoc mcp --watch`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVarP(&mcpWatch, "watch", "w", false, "Re-index on source changes")
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	rootDir, cfg, err := loadProject()
	if err != nil {
		return err
	}
	logger := logging.Logger()

	cat, err := openCatalog(rootDir, cfg)
	if err != nil {
		return err
	}
	defer cat.Close()

	// stdout carries the protocol, so no progress output.
	gen, err := newGenerator(rootDir, cfg, os.Stderr, true, cat)
	if err != nil {
		return err
	}
	defer gen.Close()

	res, err := gen.Index(ctx)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}
	if err := failureError(res); err != nil {
		logger.Warnw("indexing had failures", "error", err)
	}
	logger.Infow("catalog ready", "functions", res.Stats.Functions, "files", res.Stats.Files)

	server, err := mcp.NewServer(ctx, cat, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	if mcpWatch {
		w, err := watcher.New(rootDir, gen.Discovery(), func(ctx context.Context, changed []string) {
			res, err := gen.Index(ctx)
			if err != nil {
				logger.Errorw("re-index failed", "error", err)
				return
			}
			if err := server.Reload(ctx); err != nil {
				logger.Errorw("search index reload failed", "error", err)
				return
			}
			logger.Infow("re-indexed", "changed", len(changed), "functions", res.Stats.Functions)
		},
			watcher.WithDebounce(cfg.Watch.Debounce()),
			watcher.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		w.Start(ctx)
		defer w.Stop()
	}

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
