// Package cache keeps parsed libraries in memory, keyed by a hash of the
// source text and the parse options, so unchanged files are not re-parsed
// during watch and index runs.
package cache

import (
	"fmt"
	"time"

	"github.com/maypok86/otter"
	"github.com/mvp-joe/autodoc/internal/autodoc"
)

// DefaultCapacity bounds the number of cached libraries.
const DefaultCapacity = 1024

// Stats reports cache effectiveness.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Cache maps content keys to parsed libraries.
type Cache struct {
	entries otter.Cache[string, *autodoc.LibraryInfo]
}

// New creates a cache holding at most capacity libraries. Entries expire
// after ttl; zero disables expiry.
func New(capacity int, ttl time.Duration) (*Cache, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	builder := otter.MustBuilder[string, *autodoc.LibraryInfo](capacity).CollectStats()

	var (
		entries otter.Cache[string, *autodoc.LibraryInfo]
		err     error
	)
	if ttl > 0 {
		entries, err = builder.WithTTL(ttl).Build()
	} else {
		entries, err = builder.Build()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build parse cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Get returns the library cached under key.
func (c *Cache) Get(key string) (*autodoc.LibraryInfo, bool) {
	return c.entries.Get(key)
}

// GetOrParse returns the cached library for key, calling parse on a miss.
// Parse errors are not cached.
func (c *Cache) GetOrParse(key string, parse func() (*autodoc.LibraryInfo, error)) (*autodoc.LibraryInfo, bool, error) {
	if lib, ok := c.entries.Get(key); ok {
		return lib, true, nil
	}
	lib, err := parse()
	if err != nil {
		return nil, false, err
	}
	c.entries.Set(key, lib)
	return lib, false, nil
}

// Stats returns hit and miss counts.
func (c *Cache) Stats() Stats {
	s := c.entries.Stats()
	return Stats{Hits: s.Hits(), Misses: s.Misses(), Size: c.entries.Size()}
}

// Close releases the cache's background resources.
func (c *Cache) Close() {
	c.entries.Close()
}
