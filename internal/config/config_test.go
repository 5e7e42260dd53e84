package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .autodoc/config.yml and .autodoc/config.yaml
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values
// - LoadConfig() returns error for malformed YAML and invalid values
// - Validate() rejects bad globs, handler patterns, empty handler names,
//   negative durations and sizes, and joins multiple errors
// - Handlers() compiles configured patterns

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, DirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	return root
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Paths.Include, "**/*.js")
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
	assert.False(t, cfg.Parse.RequireDescription)
	assert.True(t, cfg.Parse.HoistConstructors)
	assert.Equal(t, "docs", cfg.Output.Dir)
	assert.Equal(t, filepath.Join(".autodoc", "catalog.db"), cfg.Catalog.Path)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce())
	assert.Equal(t, 1024, cfg.Cache.Capacity)
	assert.Zero(t, cfg.Cache.TTL())

	assert.NoError(t, Validate(cfg))
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Paths, cfg.Paths)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, defaults.Catalog, cfg.Catalog)
	assert.Equal(t, defaults.Watch, cfg.Watch)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	t.Parallel()

	root := writeConfig(t, "config.yml", `
paths:
  include:
    - "src/**/*.js"
  ignore:
    - "src/vendor/**"
parse:
  namespaces: ["Lazy", "Lazy.Sequence"]
  tags: ["public"]
  require_description: true
  hoist_constructors: false
  example_handlers:
    - name: error
      pattern: "^throws (\\w+)$"
output:
  dir: site
  title: Lazy docs
watch:
  debounce_ms: 50
`)

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.js"}, cfg.Paths.Include)
	assert.Equal(t, []string{"src/vendor/**"}, cfg.Paths.Ignore)
	assert.Equal(t, []string{"Lazy", "Lazy.Sequence"}, cfg.Parse.Namespaces)
	assert.Equal(t, []string{"public"}, cfg.Parse.Tags)
	assert.True(t, cfg.Parse.RequireDescription)
	assert.False(t, cfg.Parse.HoistConstructors)
	require.Len(t, cfg.Parse.ExampleHandlers, 1)
	assert.Equal(t, ExampleHandlerConfig{Name: "error", Pattern: `^throws (\w+)$`}, cfg.Parse.ExampleHandlers[0])
	assert.Equal(t, "site", cfg.Output.Dir)
	assert.Equal(t, "Lazy docs", cfg.Output.Title)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce())

	handlers, err := cfg.Parse.Handlers()
	require.NoError(t, err)
	require.Len(t, handlers, 1)
	assert.Equal(t, []string{"throws TypeError", "TypeError"}, handlers[0].Pattern.FindStringSubmatch("throws TypeError"))
}

func TestLoadConfig_LoadsFromConfigYaml(t *testing.T) {
	t.Parallel()

	root := writeConfig(t, "config.yaml", "output:\n  dir: out\n")
	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
}

func TestLoadConfig_MergesConfigWithDefaults(t *testing.T) {
	t.Parallel()

	root := writeConfig(t, "config.yml", "catalog:\n  path: /tmp/docs.db\n")
	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/docs.db", cfg.Catalog.Path)
	assert.Equal(t, Default().Paths.Include, cfg.Paths.Include)
	assert.Equal(t, Default().Output.Title, cfg.Output.Title)
}

func TestLoadConfig_EnvironmentVariablesOverrideConfigFile(t *testing.T) {
	// Note: Cannot use t.Parallel() with t.Setenv()
	root := writeConfig(t, "config.yml", "output:\n  dir: site\nwatch:\n  debounce_ms: 50\n")

	t.Setenv("AUTODOC_OUTPUT_DIR", "env-site")
	t.Setenv("AUTODOC_WATCH_DEBOUNCE_MS", "900")
	t.Setenv("AUTODOC_PARSE_REQUIRE_DESCRIPTION", "true")
	t.Setenv("AUTODOC_CACHE_TTL_SECONDS", "60")

	cfg, err := LoadConfigFromDir(root)
	require.NoError(t, err)

	assert.Equal(t, "env-site", cfg.Output.Dir)
	assert.Equal(t, 900, cfg.Watch.DebounceMS)
	assert.True(t, cfg.Parse.RequireDescription)
	assert.Equal(t, time.Minute, cfg.Cache.TTL())
}

func TestLoadConfig_ReturnsErrorForMalformedYaml(t *testing.T) {
	t.Parallel()

	root := writeConfig(t, "config.yml", "paths:\n  include: [unclosed\n")
	_, err := LoadConfigFromDir(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_ReturnsErrorForInvalidValues(t *testing.T) {
	t.Parallel()

	root := writeConfig(t, "config.yml", "watch:\n  debounce_ms: -1\n")
	_, err := LoadConfigFromDir(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDebounce)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"no includes", func(c *Config) { c.Paths.Include = nil }, ErrNoIncludes},
		{"bad glob", func(c *Config) { c.Paths.Ignore = []string{"[unclosed"} }, ErrInvalidGlob},
		{"bad handler pattern", func(c *Config) {
			c.Parse.ExampleHandlers = []ExampleHandlerConfig{{Name: "x", Pattern: "("}}
		}, ErrInvalidPattern},
		{"unnamed handler", func(c *Config) {
			c.Parse.ExampleHandlers = []ExampleHandlerConfig{{Pattern: "x"}}
		}, ErrEmptyHandlerName},
		{"empty output", func(c *Config) { c.Output.Dir = " " }, ErrEmptyOutputDir},
		{"empty catalog", func(c *Config) { c.Catalog.Path = "" }, ErrEmptyCatalogPath},
		{"negative capacity", func(c *Config) { c.Cache.Capacity = -1 }, ErrInvalidCacheSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.wantErr)
		})
	}
}

func TestValidate_JoinsMultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Output.Dir = ""
	cfg.Watch.DebounceMS = -5
	cfg.Cache.TTLSeconds = -1

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyOutputDir)
	assert.ErrorIs(t, err, ErrInvalidDebounce)
	assert.ErrorIs(t, err, ErrInvalidCacheSettings)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("/root", "docs"), Resolve("/root", "docs"))
	assert.Equal(t, "/abs/docs", Resolve("/root", "/abs/docs"))
}
