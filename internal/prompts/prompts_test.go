package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMixedShapes(t *testing.T) {
	doc, err := Load(writeDoc(t, `{
		"prompts": [
			"a sleepy dragon",
			{"title": "Super Hero", "description": "A heroic figure", "keywords": ["hero", "cape"]}
		],
		"batchSize": 3,
		"categoryId": "12"
	}`))
	require.NoError(t, err)

	specs := doc.Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, Spec{Title: "a sleepy dragon"}, specs[0])
	assert.Equal(t, "Super Hero", specs[1].Title)
	assert.Equal(t, "A heroic figure", specs[1].Description)
	assert.Equal(t, []string{"hero", "cape"}, specs[1].Keywords)
	assert.Equal(t, 3, doc.BatchSize)
	assert.Equal(t, "12", doc.CategoryID)
}

func TestLegacySinglePrompt(t *testing.T) {
	doc, err := Load(writeDoc(t, `{"prompt": "easter bunny"}`))
	require.NoError(t, err)

	specs := doc.Specs()
	require.Len(t, specs, 1)
	assert.Equal(t, "easter bunny", specs[0].Title)

	// Batch list wins over the legacy field.
	doc.Prompts = []Spec{{Title: "other"}}
	assert.Equal(t, "other", doc.Specs()[0].Title)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeDoc(t, `{not json`))
	assert.Error(t, err)
}

func TestIndexLookup(t *testing.T) {
	ix := NewIndex([]Spec{
		{Title: "Super Hero", Description: "A heroic figure"},
		{Title: "Easter Bunny"},
	})

	got, ok := ix.Lookup("super_hero_coloring.png")
	require.True(t, ok)
	assert.Equal(t, "A heroic figure", got.Description)

	got, ok = ix.Lookup("easter_bunny.png")
	require.True(t, ok)
	assert.Equal(t, "Easter Bunny", got.Title)

	_, ok = ix.Lookup("unknown_page_coloring.png")
	assert.False(t, ok)
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "super_hero", PageTitle("super_hero_coloring.png"))
	assert.Equal(t, "dragon", PageTitle("/tmp/out/dragon.png"))
	assert.Equal(t, "dragon-2", PageTitle("dragon-2_coloring.png"))
}
