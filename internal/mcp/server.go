// Package mcp exposes the documentation catalog to coding assistants over
// the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/autodoc/internal/catalog"
	"github.com/mvp-joe/autodoc/internal/logging"
	"github.com/mvp-joe/autodoc/internal/search"
	"go.uber.org/zap"
)

// ServerName and ServerVersion identify the server to clients.
const (
	ServerName    = "autodoc-mcp"
	ServerVersion = "1.0.0"
)

// Searcher runs full-text queries over documented functions.
type Searcher interface {
	Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error)
}

// Catalog resolves functions by name and id.
type Catalog interface {
	Lookup(name string) ([]*catalog.Function, error)
	Functions(filter catalog.Filter) ([]*catalog.Function, error)
}

// Server manages the MCP server lifecycle.
type Server struct {
	catalog Catalog
	logger  *zap.SugaredLogger
	mcp     *server.MCPServer

	mu    sync.RWMutex
	index *search.Index
}

// NewServer indexes the catalog and registers the autodoc tools.
func NewServer(ctx context.Context, cat Catalog, logger *zap.SugaredLogger) (*Server, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{catalog: cat, logger: logger}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	s.mcp = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)
	AddSearchTool(s.mcp, s, cat)
	AddLookupTool(s.mcp, cat)
	return s, nil
}

// Reload rebuilds the search index from the catalog.
func (s *Server) Reload(ctx context.Context) error {
	fns, err := s.catalog.Functions(catalog.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	index, err := search.New(ctx, fns)
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	s.mu.Lock()
	old := s.index
	s.index = index
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}
	s.logger.Infow("search index loaded", "functions", len(fns))
	return nil
}

// Search implements Searcher against the current index.
func (s *Server) Search(ctx context.Context, query string, opts search.Options) ([]search.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Search(ctx, query, opts)
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("starting MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		s.logger.Infow("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the search index.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index == nil {
		return nil
	}
	err := s.index.Close()
	s.index = nil
	return err
}
