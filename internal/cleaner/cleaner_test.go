package cleaner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestCleanRemovesOnlyImages(t *testing.T) {
	dir := t.TempDir()
	img := touch(t, dir, "dragon.PNG")
	webp := touch(t, dir, "cat.webp")
	keep := touch(t, dir, "prompts.json")

	removed, err := Clean([]string{dir}, false, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	assert.NoFileExists(t, img)
	assert.NoFileExists(t, webp)
	assert.FileExists(t, keep)
}

func TestCleanDryRunLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	img := touch(t, dir, "dragon.png")

	removed, err := Clean([]string{dir}, true, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.FileExists(t, img)
}

func TestCleanSkipsMissingDirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.jpg")

	removed, err := Clean([]string{filepath.Join(dir, "missing"), dir}, false, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
