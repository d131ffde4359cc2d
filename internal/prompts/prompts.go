// Package prompts loads the generation work list. The document accepts both
// a bare string per prompt and a full object with title, description and
// keywords; both shapes normalize to Spec so the rest of the pipeline never
// branches on shape.
package prompts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"colormypage/pipeline/internal/slug"
)

// Spec is one unit of generation work.
type Spec struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// UnmarshalJSON accepts either "a dragon" or {"title": "A Dragon", ...}.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*s = Spec{Title: title}
		return nil
	}

	type plain Spec
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Spec(p)
	return nil
}

// Slug is the join key correlating this spec with generated files and
// metadata rows.
func (s Spec) Slug() string {
	return slug.Make(s.Title)
}

// Document is the pipeline's external configuration document. Fields left
// at their zero value defer to the service configuration.
type Document struct {
	Prompt         string `json:"prompt"`
	Prompts        []Spec `json:"prompts"`
	BatchSize      int    `json:"batchSize"`
	OutDir         string `json:"outDir"`
	Model          string `json:"model"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	MaxPerWindow   int    `json:"maxPerWindow"`
	WindowMs       int    `json:"windowMs"`
	CategoryID     string `json:"categoryId"`
	PinterestBoard string `json:"pinterestBoard"`
}

// Load reads and parses the prompt document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompt file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse prompt file %s: %w", path, err)
	}
	return &doc, nil
}

// Specs returns the normalized work list. The legacy singular "prompt"
// field becomes a one-element batch; when both fields are set the batch
// wins.
func (d *Document) Specs() []Spec {
	if len(d.Prompts) > 0 {
		return d.Prompts
	}
	if strings.TrimSpace(d.Prompt) != "" {
		return []Spec{{Title: d.Prompt}}
	}
	return nil
}

// Index maps slugs to their specs so uploaded files can be matched back to
// the prompt that produced them.
type Index map[string]Spec

// NewIndex builds an index over specs. Later duplicates win, matching
// last-write semantics of the generation stage's file overwrites.
func NewIndex(specs []Spec) Index {
	ix := make(Index, len(specs))
	for _, s := range specs {
		if key := s.Slug(); key != "" {
			ix[key] = s
		}
	}
	return ix
}

// Lookup resolves a generated or framed file name back to its spec. The
// extension and a trailing "_coloring" suffix are stripped before slug
// matching.
func (ix Index) Lookup(fileName string) (Spec, bool) {
	s, ok := ix[slug.Make(PageTitle(fileName))]
	return s, ok
}

// PageTitle derives the page title key from a file name: basename minus
// extension minus any trailing "_coloring" marker.
func PageTitle(fileName string) string {
	base := filepath.Base(fileName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, "_coloring")
}
