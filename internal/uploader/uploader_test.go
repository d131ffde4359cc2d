package uploader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colormypage/pipeline/internal/metadata"
	"colormypage/pipeline/internal/prompts"
)

type fakeStore struct {
	keys   []string
	bodies map[string][]byte
	failOn map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{bodies: map[string][]byte{}, failOn: map[string]bool{}}
}

func (s *fakeStore) Upload(_ context.Context, objectKey string, data []byte, _ string) (string, error) {
	if s.failOn[objectKey] {
		return "", errors.New("storage unavailable")
	}
	s.keys = append(s.keys, objectKey)
	s.bodies[objectKey] = data
	return "https://cdn.example.com/" + objectKey, nil
}

func writePages(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("png-bytes-"+name), 0o644))
	}
	return dir
}

func testUploader(store Store, index prompts.Index) *Uploader {
	u := New(store, index, Options{
		Prefix:         "coloring-pages",
		Flatten:        true,
		CategoryID:     "12",
		PinterestBoard: "Coloring Pages",
		LinkBaseURL:    "https://colormypage.example.com/pages",
	}, zerolog.Nop())
	u.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return u
}

func TestRunCorrelatesMetadata(t *testing.T) {
	dir := writePages(t, "super_hero_coloring.png")
	store := newFakeStore()
	index := prompts.NewIndex([]prompts.Spec{
		{Title: "Super Hero", Description: "A heroic figure", Keywords: []string{"hero"}},
	})

	result, err := testUploader(store, index).Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Pages, 1)
	page := result.Pages[0]
	assert.Equal(t, "Super Hero", page.Title)
	assert.Equal(t, "A heroic figure", page.Description)
	assert.Equal(t, "super_hero_coloring.png", page.FileName)
	assert.Equal(t, "https://cdn.example.com/coloring-pages/super_hero_coloring.png", page.ImageURL)

	require.Len(t, result.Links, 1)
	assert.Equal(t, metadata.CategoryLink{PageTitle: "Super Hero", CategoryID: "12"}, result.Links[0])

	require.Len(t, result.Pins, 1)
	pin := result.Pins[0]
	assert.Equal(t, "Coloring Pages", pin.Board)
	assert.Equal(t, "https://colormypage.example.com/pages/super_hero", pin.Link)
	assert.Equal(t, []string{"hero"}, pin.Keywords)
}

func TestRunHumanizesUnmatchedTitles(t *testing.T) {
	dir := writePages(t, "fire_dragon_coloring.png")
	store := newFakeStore()

	result, err := testUploader(store, prompts.Index{}).Run(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Pages, 1)
	assert.Equal(t, "Fire Dragon", result.Pages[0].Title)
	assert.Empty(t, result.Pages[0].Description)
}

func TestRunSkipsFailedUploadsEverywhere(t *testing.T) {
	dir := writePages(t, "a_coloring.png", "b_coloring.png", "c_coloring.png")
	store := newFakeStore()
	store.failOn["coloring-pages/b_coloring.png"] = true

	result, err := testUploader(store, prompts.Index{}).Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"b_coloring.png"}, result.Failed)
	require.Len(t, result.Pages, 2)
	require.Len(t, result.Links, 2)
	require.Len(t, result.Pins, 2)

	// Publish slots are indexed by successful uploads only, so the failure
	// leaves no gap in the rotation.
	assert.Equal(t, metadata.OptimalHours[0], result.Pins[0].PublishDate.Hour())
	assert.Equal(t, metadata.OptimalHours[1], result.Pins[1].PublishDate.Hour())
}

func TestRunIdempotentReupload(t *testing.T) {
	dir := writePages(t, "dragon_coloring.png")
	store := newFakeStore()
	u := testUploader(store, prompts.Index{})

	first, err := u.Run(context.Background(), dir)
	require.NoError(t, err)
	second, err := u.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, first.Pages[0].ImageURL, second.Pages[0].ImageURL)
	assert.Equal(t, []byte("png-bytes-dragon_coloring.png"), store.bodies["coloring-pages/dragon_coloring.png"])
}

func TestRunPreservesRelativePathsWhenNotFlattened(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "animals"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "animals", "cat_coloring.png"), []byte("x"), 0o644))

	store := newFakeStore()
	u := New(store, prompts.Index{}, Options{Prefix: "pages", Flatten: false}, zerolog.Nop())

	_, err := u.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"pages/animals/cat_coloring.png"}, store.keys)
}
