package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileDiscovery:
// - Finds included files at the root and in subdirectories
// - Skips ignored directories and files
// - Always skips the .autodoc directory
// - Returns results sorted
// - Rejects invalid glob patterns

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("// "+p), 0644))
	}
}

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root,
		"index.js",
		"lib/util.js",
		"lib/util.test.js",
		"lib/readme.md",
		"node_modules/dep/index.js",
		".autodoc/cache.js",
	)

	fd, err := New(root, []string{"**/*.js"}, []string{"node_modules/**", "**/*.test.js"})
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "index.js"),
		filepath.Join(root, "lib/util.js"),
	}, files)
}

func TestMatchesAndIgnore(t *testing.T) {
	t.Parallel()

	fd, err := New("/src", []string{"**/*.js"}, []string{"dist/**"})
	require.NoError(t, err)

	assert.True(t, fd.Matches("a.js"))
	assert.True(t, fd.Matches("deep/nested/a.js"))
	assert.False(t, fd.Matches("a.ts"))
	assert.False(t, fd.Matches("dist/a.js"))
	assert.True(t, fd.ShouldIgnore("dist"))
	assert.True(t, fd.ShouldIgnore(".autodoc"))
}

func TestNew_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := New("/src", []string{"[unclosed"}, nil)
	assert.Error(t, err)
	assert.Error(t, Compile("{a,b"))
	assert.NoError(t, Compile("**/*.js"))
}
