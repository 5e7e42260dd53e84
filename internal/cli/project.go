package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mvp-joe/autodoc/internal/catalog"
	"github.com/mvp-joe/autodoc/internal/config"
	"github.com/mvp-joe/autodoc/internal/docgen"
	"github.com/mvp-joe/autodoc/internal/logging"
)

// signalContext is canceled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openCatalog opens the configured catalog, creating its directory.
func openCatalog(rootDir string, cfg *config.Config) (*catalog.Catalog, error) {
	path := config.Resolve(rootDir, cfg.Catalog.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	cat, err := catalog.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	return cat, nil
}

// maybeCatalog opens the catalog when --catalog was given.
func maybeCatalog(rootDir string, cfg *config.Config) (*catalog.Catalog, error) {
	if !catalogFlag {
		return nil, nil
	}
	return openCatalog(rootDir, cfg)
}

// newGenerator builds a generator logging through the process logger with
// progress bars on out unless quiet.
func newGenerator(rootDir string, cfg *config.Config, out io.Writer, quiet bool, cat *catalog.Catalog) (*docgen.Generator, error) {
	opts := []docgen.Option{docgen.WithLogger(logging.Logger())}
	if !quiet {
		opts = append(opts, docgen.WithProgress(NewCLIProgressReporter(out, quiet)))
	}
	if cat != nil {
		opts = append(opts, docgen.WithCatalog(cat))
	}
	return docgen.New(rootDir, cfg, opts...)
}

// failureError summarizes per-file failures.
func failureError(res *docgen.Result) error {
	if err := res.Err(); err != nil {
		return fmt.Errorf("%d of %d files failed:\n%w", res.Stats.Failed, res.Stats.Files, err)
	}
	return nil
}
