// Package discovery finds the source files to document using glob include
// and ignore patterns.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery handles file discovery with glob patterns and ignore rules.
type FileDiscovery struct {
	rootDir        string
	includes       []compiledPattern
	ignorePatterns []compiledPattern
}

// New compiles the patterns for rootDir. Patterns are matched against
// slash-separated paths relative to rootDir.
func New(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includes, err = compileAll(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compileAll(ignorePatterns); err != nil {
		return nil, err
	}
	return fd, nil
}

// Compile checks that pattern is a valid glob.
func Compile(pattern string) error {
	_, err := glob.Compile(pattern, '/')
	return err
}

func compileAll(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// RootDir returns the directory discovery walks.
func (fd *FileDiscovery) RootDir() string { return fd.rootDir }

// DiscoverFiles walks the directory tree and returns matching files, sorted.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := fd.rel(path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if relPath != "." && fd.ShouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.Matches(relPath) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether a relative path is included and not ignored.
func (fd *FileDiscovery) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	return !fd.ShouldIgnore(relPath) && matchesAnyPattern(relPath, fd.includes)
}

// ShouldIgnore checks if a relative path matches any ignore pattern.
func (fd *FileDiscovery) ShouldIgnore(relPath string) bool {
	relPath = filepath.ToSlash(relPath)

	// Always ignore the .autodoc directory
	if strings.HasPrefix(relPath, ".autodoc/") || relPath == ".autodoc" {
		return true
	}

	if matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// "node_modules" should match pattern "node_modules/**"
	return matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// Rel converts an absolute path under the root into a slash-separated
// relative path.
func (fd *FileDiscovery) Rel(path string) (string, error) {
	return fd.rel(path)
}

func (fd *FileDiscovery) rel(path string) (string, error) {
	relPath, err := filepath.Rel(fd.rootDir, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(relPath), nil
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Files in the root also match "**/" patterns, so "**/*.js" matches
	// both "index.js" and "lib/util.js".
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if !strings.HasPrefix(cp.pattern, "**/") {
				continue
			}
			simplified, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/')
			if err == nil && simplified.Match(path) {
				return true
			}
		}
	}

	return false
}
