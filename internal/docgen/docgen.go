// Package docgen runs the documentation pipeline over a project: it
// discovers sources, parses them through the cache, writes the HTML site
// and keeps the catalog in step.
package docgen

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mvp-joe/autodoc/internal/autodoc"
	"github.com/mvp-joe/autodoc/internal/cache"
	"github.com/mvp-joe/autodoc/internal/catalog"
	"github.com/mvp-joe/autodoc/internal/config"
	"github.com/mvp-joe/autodoc/internal/discovery"
	"github.com/mvp-joe/autodoc/internal/jsdoc"
	"github.com/mvp-joe/autodoc/internal/logging"
	"github.com/mvp-joe/autodoc/internal/markdown"
	"github.com/mvp-joe/autodoc/internal/parsers"
	"github.com/mvp-joe/autodoc/internal/site"
	"go.uber.org/zap"
)

// Stats summarizes one run.
type Stats struct {
	Files     int           `json:"files"`
	Parsed    int           `json:"parsed"`
	CacheHits int           `json:"cache_hits"`
	Failed    int           `json:"failed"`
	Removed   int           `json:"removed"`
	Functions int           `json:"functions"`
	Duration  time.Duration `json:"duration"`
}

// FileError is a failure confined to one source file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *FileError) Unwrap() error { return e.Err }

// Result is the outcome of Generate, Update or Index.
type Result struct {
	Pages    []site.Page
	Manifest *site.Manifest
	Failures []*FileError
	Stats    Stats
}

// Err joins the per-file failures, or returns nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger; the default discards output.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithProgress sets the progress reporter.
func WithProgress(progress ProgressReporter) Option {
	return func(g *Generator) { g.progress = progress }
}

// WithCatalog mirrors every parsed library into c.
func WithCatalog(c *catalog.Catalog) Option {
	return func(g *Generator) { g.catalog = c }
}

// Generator documents the sources of one project.
type Generator struct {
	rootDir     string
	cfg         *config.Config
	discovery   *discovery.FileDiscovery
	parser      *autodoc.Parser
	tsParser    *autodoc.Parser
	cache       *cache.Cache
	fingerprint string
	writer      *site.Writer
	catalog     *catalog.Catalog
	logger      *zap.SugaredLogger
	progress    ProgressReporter

	mu    sync.Mutex
	pages map[string]site.Page
}

// New builds a Generator for rootDir from a validated configuration.
func New(rootDir string, cfg *config.Config, opts ...Option) (*Generator, error) {
	fd, err := discovery.New(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("failed to compile path patterns: %w", err)
	}

	handlers, err := cfg.Parse.Handlers()
	if err != nil {
		return nil, err
	}

	template := site.DefaultTemplate()
	if cfg.Output.Template != "" {
		data, err := os.ReadFile(config.Resolve(rootDir, cfg.Output.Template))
		if err != nil {
			return nil, fmt.Errorf("failed to read template: %w", err)
		}
		template = string(data)
	}

	engine := site.NewEngine()
	options := autodoc.Options{
		CodeParser:         parsers.NewJavaScriptParser(),
		CommentParser:      jsdoc.NewParser(),
		MarkdownRenderer:   markdown.NewRenderer(),
		Namespaces:         cfg.Parse.Namespaces,
		Tags:               cfg.Parse.Tags,
		RequireDescription: cfg.Parse.RequireDescription,
		HoistConstructors:  cfg.Parse.HoistConstructors,
		ExampleHandlers:    handlers,
		Template:           template,
		TemplateEngine:     engine,
	}
	parser, err := autodoc.New(options)
	if err != nil {
		return nil, err
	}
	options.CodeParser = parsers.NewTypeScriptParser()
	tsParser, err := autodoc.New(options)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.Cache.Capacity, cfg.Cache.TTL())
	if err != nil {
		return nil, err
	}

	g := &Generator{
		rootDir:     rootDir,
		cfg:         cfg,
		discovery:   fd,
		parser:      parser,
		tsParser:    tsParser,
		cache:       c,
		fingerprint: fingerprint(cfg),
		writer:      site.NewWriter(config.Resolve(rootDir, cfg.Output.Dir), cfg.Output.Title, engine),
		logger:      logging.Nop(),
		progress:    NoOpProgressReporter{},
		pages:       make(map[string]site.Page),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// fingerprint covers every option that changes parse output.
func fingerprint(cfg *config.Config) string {
	parts := []string{
		strings.Join(cfg.Parse.Namespaces, ","),
		strings.Join(cfg.Parse.Tags, ","),
		strconv.FormatBool(cfg.Parse.RequireDescription),
		strconv.FormatBool(cfg.Parse.HoistConstructors),
	}
	for _, h := range cfg.Parse.ExampleHandlers {
		parts = append(parts, h.Name+"="+h.Pattern)
	}
	return cache.Fingerprint(parts...)
}

// Discovery exposes the path filter, for watching.
func (g *Generator) Discovery() *discovery.FileDiscovery {
	return g.discovery
}

// OutputDir returns the absolute site directory.
func (g *Generator) OutputDir() string {
	return g.writer.Dir()
}

// CacheStats reports parse cache effectiveness.
func (g *Generator) CacheStats() cache.Stats {
	return g.cache.Stats()
}

// Close releases the parse cache.
func (g *Generator) Close() {
	g.cache.Close()
}

// ParseFile parses the source at path, serving repeated content from the
// cache. hit reports whether the cache answered.
func (g *Generator) ParseFile(path string) (lib *autodoc.LibraryInfo, hit bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	source := string(data)
	parser, fingerprint := g.parserFor(path)
	return g.cache.GetOrParse(cache.Key(source, fingerprint), func() (*autodoc.LibraryInfo, error) {
		return parser.Parse(source)
	})
}

// parserFor picks the TypeScript grammar for .ts, .mts and .cts files. The
// grammar is part of the cache key.
func (g *Generator) parserFor(path string) (*autodoc.Parser, string) {
	switch filepath.Ext(path) {
	case ".ts", ".mts", ".cts":
		return g.tsParser, g.fingerprint + ":ts"
	}
	return g.parser, g.fingerprint
}

// Generate documents every discovered source and rewrites the index. Pages
// from an earlier run whose source is gone are removed, and a source that
// fails keeps its previous page in the index.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	files, err := g.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	g.progress.OnDiscoveryComplete(len(files))

	g.mu.Lock()
	defer g.mu.Unlock()

	previous := maps.Clone(g.pages)
	clear(g.pages)
	res, err := g.run(ctx, files, true)
	if err != nil {
		return nil, err
	}
	// A file that fails keeps its last good page, which is still on disk.
	for _, failure := range res.Failures {
		if page, ok := previous[failure.Path]; ok {
			g.pages[failure.Path] = page
		}
	}

	seen := make(map[string]bool, len(files))
	for _, path := range files {
		if rel, err := g.discovery.Rel(path); err == nil {
			seen[rel] = true
		}
	}
	for rel := range previous {
		if seen[rel] {
			continue
		}
		if err := g.removeSource(rel); err != nil {
			return nil, err
		}
		res.Stats.Removed++
	}

	if err := g.writeIndex(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Update regenerates the changed absolute paths, dropping pages of sources
// that no longer exist, and rewrites the index.
func (g *Generator) Update(ctx context.Context, changed []string) (*Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	start := time.Now()
	var present []string
	var removed int
	for _, path := range changed {
		rel, err := g.discovery.Rel(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			if g.discovery.Matches(rel) {
				present = append(present, path)
			}
			continue
		}
		if _, known := g.pages[rel]; !known {
			continue
		}
		if err := g.removeSource(rel); err != nil {
			return nil, err
		}
		removed++
	}

	res, err := g.run(ctx, present, true)
	if err != nil {
		return nil, err
	}
	res.Stats.Removed = removed
	res.Stats.Duration = time.Since(start)
	if err := g.writeIndex(res); err != nil {
		return nil, err
	}
	return res, nil
}

// Index parses every discovered source into the catalog without writing
// the site, and drops catalog entries whose source disappeared.
func (g *Generator) Index(ctx context.Context) (*Result, error) {
	if g.catalog == nil {
		return nil, errors.New("docgen: index requires a catalog")
	}
	files, err := g.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	g.progress.OnDiscoveryComplete(len(files))

	g.mu.Lock()
	defer g.mu.Unlock()

	res, err := g.run(ctx, files, false)
	if err != nil {
		return nil, err
	}

	libs, err := g.catalog.Libraries()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(files))
	for _, path := range files {
		if rel, err := g.discovery.Rel(path); err == nil {
			seen[rel] = true
		}
	}
	for _, lib := range libs {
		if seen[lib.Source] {
			continue
		}
		if err := g.catalog.RemoveLibrary(lib.Source); err != nil {
			return nil, err
		}
		res.Stats.Removed++
	}
	return res, nil
}

func (g *Generator) run(ctx context.Context, files []string, writeSite bool) (*Result, error) {
	start := time.Now()
	res := &Result{Stats: Stats{Files: len(files)}}
	g.progress.OnFileProcessingStart(len(files))

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := g.discovery.Rel(path)
		if err != nil {
			return nil, err
		}

		page, functions, hit, err := g.processFile(path, rel, writeSite)
		g.progress.OnFileProcessed(rel)
		if err != nil {
			g.logger.Warnw("skipping file", "file", rel, "error", err)
			res.Failures = append(res.Failures, &FileError{Path: rel, Err: err})
			res.Stats.Failed++
			continue
		}

		res.Stats.Parsed++
		res.Stats.Functions += functions
		if hit {
			res.Stats.CacheHits++
		}
		if writeSite {
			res.Pages = append(res.Pages, page)
		}
		g.logger.Debugw("documented file", "file", rel, "functions", functions, "cache_hit", hit)
	}

	res.Stats.Duration = time.Since(start)
	g.progress.OnComplete(&res.Stats)
	return res, nil
}

func (g *Generator) processFile(path, rel string, writeSite bool) (site.Page, int, bool, error) {
	lib, hit, err := g.ParseFile(path)
	if err != nil {
		return site.Page{}, 0, false, err
	}

	if g.catalog != nil {
		if err := g.catalog.WriteLibrary(rel, lib); err != nil {
			return site.Page{}, 0, hit, err
		}
	}
	if !writeSite {
		return site.Page{}, len(lib.Docs), hit, nil
	}

	parser, _ := g.parserFor(path)
	html, err := parser.Render(lib)
	if err != nil {
		return site.Page{}, 0, hit, err
	}
	page, err := g.writer.WritePage(rel, lib, html)
	if err != nil {
		return site.Page{}, 0, hit, err
	}
	g.pages[rel] = page
	return page, len(lib.Docs), hit, nil
}

func (g *Generator) removeSource(rel string) error {
	delete(g.pages, rel)
	if err := g.writer.RemovePage(rel); err != nil {
		return err
	}
	if g.catalog != nil {
		if err := g.catalog.RemoveLibrary(rel); err != nil {
			return err
		}
	}
	g.logger.Infow("removed page", "file", rel)
	return nil
}

// writeIndex lists every page generated so far, sorted by source.
func (g *Generator) writeIndex(res *Result) error {
	pages := make([]site.Page, 0, len(g.pages))
	for _, page := range g.pages {
		pages = append(pages, page)
	}
	slices.SortFunc(pages, func(a, b site.Page) int { return strings.Compare(a.Source, b.Source) })

	manifest, err := g.writer.WriteIndex(pages)
	if err != nil {
		return err
	}
	res.Manifest = manifest
	return nil
}

// RelOutput reports where the page for a source path lands, relative to the
// project root.
func (g *Generator) RelOutput(rel string) string {
	out, err := filepath.Rel(g.rootDir, filepath.Join(g.writer.Dir(), filepath.FromSlash(site.PagePath(rel))))
	if err != nil {
		return site.PagePath(rel)
	}
	return filepath.ToSlash(out)
}
