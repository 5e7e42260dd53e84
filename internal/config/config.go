package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/mvp-joe/autodoc/internal/autodoc"
)

// Config represents the complete autodoc configuration.
// It can be loaded from .autodoc/config.yml with environment variable overrides.
type Config struct {
	Paths   PathsConfig   `yaml:"paths" mapstructure:"paths"`
	Parse   ParseConfig   `yaml:"parse" mapstructure:"parse"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Catalog CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Watch   WatchConfig   `yaml:"watch" mapstructure:"watch"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig defines which sources to document and which to skip.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// ParseConfig tunes which doc comments become documentation.
type ParseConfig struct {
	Namespaces         []string               `yaml:"namespaces" mapstructure:"namespaces"`                   // restrict and order namespaces
	Tags               []string               `yaml:"tags" mapstructure:"tags"`                               // keep only doclets with one of these tags
	RequireDescription bool                   `yaml:"require_description" mapstructure:"require_description"` // drop doclets that only carry examples
	HoistConstructors  bool                   `yaml:"hoist_constructors" mapstructure:"hoist_constructors"`   // list a namespace constructor only under its own namespace
	ExampleHandlers    []ExampleHandlerConfig `yaml:"example_handlers" mapstructure:"example_handlers"`
}

// ExampleHandlerConfig names a regular expression matched against the
// expected side of example pairs.
type ExampleHandlerConfig struct {
	Name    string `yaml:"name" mapstructure:"name"`
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// OutputConfig controls the generated site.
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`           // output directory, relative to the project root
	Template string `yaml:"template" mapstructure:"template"` // page template file; empty uses the built-in one
	Title    string `yaml:"title" mapstructure:"title"`       // index page title
}

// CatalogConfig locates the SQLite catalog.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// CacheConfig sizes the parse cache.
type CacheConfig struct {
	Capacity   int `yaml:"capacity" mapstructure:"capacity"`       // max cached libraries
	TTLSeconds int `yaml:"ttl_seconds" mapstructure:"ttl_seconds"` // 0 keeps entries until evicted
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.js",
				"**/*.mjs",
				"**/*.cjs",
				"**/*.ts",
				"**/*.mts",
				"**/*.cts",
			},
			Ignore: []string{
				"node_modules/**",
				".git/**",
				"dist/**",
				"build/**",
				"coverage/**",
				"docs/**",
				"**/*.min.js",
				"**/*.d.ts",
			},
		},
		Parse: ParseConfig{
			Namespaces:        []string{},
			Tags:              []string{},
			HoistConstructors: true,
			ExampleHandlers:   []ExampleHandlerConfig{},
		},
		Output: OutputConfig{
			Dir:   "docs",
			Title: "API Documentation",
		},
		Catalog: CatalogConfig{
			Path: filepath.Join(".autodoc", "catalog.db"),
		},
		Watch: WatchConfig{
			DebounceMS: 300,
		},
		Cache: CacheConfig{
			Capacity: 1024,
		},
	}
}

// Handlers compiles the configured example handlers.
func (p *ParseConfig) Handlers() ([]autodoc.ExampleHandler, error) {
	handlers := make([]autodoc.ExampleHandler, 0, len(p.ExampleHandlers))
	for _, h := range p.ExampleHandlers {
		pattern, err := regexp.Compile(h.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: handler %q: %v", ErrInvalidPattern, h.Name, err)
		}
		handlers = append(handlers, autodoc.ExampleHandler{Name: h.Name, Pattern: pattern})
	}
	return handlers, nil
}

// Debounce returns the watch debounce as a duration.
func (w *WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// TTL returns the cache entry lifetime; zero disables expiry.
func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Resolve makes path absolute against rootDir unless it already is.
func Resolve(rootDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
