package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{
		"b.json",
		"a.json",
		"nested/deep/c.json",
		"nested/skip.txt",
		"skip.hcl",
		".git/objects/hidden.json",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	}

	files, err := FindFilesByExtension(dir, ".json")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.json"),
		filepath.Join(dir, "nested", "deep", "c.json"),
	}
	assert.Equal(t, want, files, "hidden directories must not contribute files")
}

func TestFindFilesByExtensionMissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "absent"), ".json")
	assert.Error(t, err)
}
