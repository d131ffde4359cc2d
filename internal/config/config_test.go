package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "images", cfg.Paths.ImagesDir)
	assert.Equal(t, "coloring_pages", cfg.Paths.PagesDir)
	assert.Equal(t, "csv", cfg.Paths.CSVDir)
	assert.Equal(t, "gpt-image-1", cfg.GenAI.Model)
	assert.Equal(t, "1024x1536", cfg.GenAI.Size)
	assert.Equal(t, "high", cfg.GenAI.Quality)
	assert.Equal(t, 1, cfg.GenAI.BatchSize)
	assert.Equal(t, 5, cfg.RateLimit.MaxPerWindow)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoadBindsEnvironmentOnlyKeys(t *testing.T) {
	// Secrets are documented as env-only; they must reach the structs even
	// with no config file present.
	t.Setenv("COLORMYPAGE_GENAI_APIKEY", "sk-test")
	t.Setenv("COLORMYPAGE_STORAGE_ENDPOINT", "https://minio.example.com")
	t.Setenv("COLORMYPAGE_STORAGE_ACCESSKEY", "ak")
	t.Setenv("COLORMYPAGE_STORAGE_SECRETKEY", "sk")
	t.Setenv("COLORMYPAGE_STORAGE_BUCKET", "cmp-pages")
	t.Setenv("COLORMYPAGE_PATHS_PROMPTFILE", "batch.json")
	t.Setenv("COLORMYPAGE_METADATA_CATEGORYID", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.GenAI.APIKey)
	assert.Equal(t, "https://minio.example.com", cfg.Storage.Endpoint)
	assert.Equal(t, "ak", cfg.Storage.AccessKey)
	assert.Equal(t, "sk", cfg.Storage.SecretKey)
	assert.Equal(t, "cmp-pages", cfg.Storage.Bucket)
	assert.Equal(t, "batch.json", cfg.Paths.PromptFile)
	assert.Equal(t, "7", cfg.Metadata.CategoryID)
}

func TestEnvOverridesFileValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  bucket: from-file\n"), 0o644))
	t.Setenv("COLORMYPAGE_STORAGE_BUCKET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Storage.Bucket)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
paths:
  imagesdir: raw
ratelimit:
  maxperwindow: 9
  window: 30s
storage:
  bucket: cmp-pages
  endpoint: https://minio.example.com
metadata:
  categoryid: "42"
  pinterestboard: Coloring Pages
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "raw", cfg.Paths.ImagesDir)
	assert.Equal(t, 9, cfg.RateLimit.MaxPerWindow)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "cmp-pages", cfg.Storage.Bucket)
	assert.Equal(t, "42", cfg.Metadata.CategoryID)
	assert.Equal(t, "Coloring Pages", cfg.Metadata.PinterestBoard)
}
