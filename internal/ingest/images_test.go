package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.png"))
	touch(t, filepath.Join(dir, "a.JPG"))
	touch(t, filepath.Join(dir, "c.jpeg"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".hidden.jpg"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	files, stats, err := ListImages(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.JPG"),
		filepath.Join(dir, "b.png"),
		filepath.Join(dir, "c.jpeg"),
	}, files, "case-insensitive extensions, sorted, hidden and non-image entries skipped")
	assert.Equal(t, uint32(6), stats.Scanned)
	assert.Equal(t, uint32(3), stats.Matched)
	assert.Equal(t, uint32(3), stats.Skipped)
}

func TestListImagesEmptyDir(t *testing.T) {
	files, _, err := ListImages(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListImagesMissingDir(t *testing.T) {
	files, _, err := ListImages(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err, "a vendor may legitimately have no manifests directory")
	assert.Empty(t, files)
}
