// Package uploader walks a directory of finished pages, pushes every file
// to object storage, and collects the three metadata tables for the
// downstream importers. The tables are written once, after the whole walk
// completes.
package uploader

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"colormypage/pipeline/internal/metadata"
	"colormypage/pipeline/internal/prompts"
)

// Store is the object-storage surface the uploader needs.
type Store interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
}

// Options control key layout and the metadata emitted per page.
type Options struct {
	Prefix         string
	Flatten        bool
	CategoryID     string
	PinterestBoard string
	LinkBaseURL    string
	Publish        bool
}

type Uploader struct {
	store Store
	index prompts.Index
	opts  Options
	log   zerolog.Logger
	now   func() time.Time
}

func New(store Store, index prompts.Index, opts Options, logger zerolog.Logger) *Uploader {
	return &Uploader{
		store: store,
		index: index,
		opts:  opts,
		log:   logger,
		now:   time.Now,
	}
}

// Result carries the collected tables plus per-file failure accounting.
type Result struct {
	Pages  []metadata.PageRecord
	Links  []metadata.CategoryLink
	Pins   []metadata.PinRecord
	Failed []string
}

// Run uploads every regular file under dir. A file whose upload fails is
// logged and excluded from all three tables; the walk continues. Publish
// dates are staggered by the running index of successful uploads only.
func (u *Uploader) Run(ctx context.Context, dir string) (Result, error) {
	var result Result
	start := u.now()

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			u.log.Error().Err(err).Str("file", p).Msg("read failed, skipping")
			result.Failed = append(result.Failed, d.Name())
			return nil
		}

		key, err := u.objectKey(dir, p, d.Name())
		if err != nil {
			return err
		}

		publicURL, err := u.store.Upload(ctx, key, data, contentTypeFor(p))
		if err != nil {
			u.log.Error().Err(err).Str("file", d.Name()).Msg("upload failed, skipping")
			result.Failed = append(result.Failed, d.Name())
			return nil
		}
		u.log.Info().Str("file", d.Name()).Str("url", publicURL).Msg("uploaded")

		u.appendRecords(&result, d.Name(), publicURL, start)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("walk %s: %w", dir, err)
	}

	return result, nil
}

func (u *Uploader) objectKey(root, fullPath, baseName string) (string, error) {
	if u.opts.Flatten {
		return path.Join(u.opts.Prefix, baseName), nil
	}
	rel, err := filepath.Rel(root, fullPath)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", fullPath, err)
	}
	return path.Join(u.opts.Prefix, filepath.ToSlash(rel)), nil
}

// appendRecords derives the page title from the file name, correlates it
// with the prompt index, and appends one row to each table.
func (u *Uploader) appendRecords(result *Result, fileName, publicURL string, start time.Time) {
	titleKey := prompts.PageTitle(fileName)

	title := humanize(titleKey)
	description := ""
	var keywords []string
	if spec, ok := u.index.Lookup(fileName); ok {
		title = spec.Title
		description = spec.Description
		keywords = spec.Keywords
	}

	result.Pages = append(result.Pages, metadata.PageRecord{
		Title:       title,
		Description: description,
		ImageURL:    publicURL,
		FileName:    fileName,
		IsPublished: u.opts.Publish,
	})

	result.Links = append(result.Links, metadata.CategoryLink{
		PageTitle:  title,
		CategoryID: u.opts.CategoryID,
	})

	link := ""
	if u.opts.LinkBaseURL != "" {
		link = strings.TrimSuffix(u.opts.LinkBaseURL, "/") + "/" + titleKey
	}
	result.Pins = append(result.Pins, metadata.PinRecord{
		Title:       title,
		MediaURL:    publicURL,
		Board:       u.opts.PinterestBoard,
		Description: description,
		Link:        link,
		PublishDate: metadata.PublishDate(start, len(result.Pins)),
		Keywords:    keywords,
	})
}

// humanize turns a slug back into a display title when no prompt spec
// matches: underscores become spaces and each word is capitalized.
func humanize(slugName string) string {
	words := strings.Split(slugName, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func contentTypeFor(p string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(p))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
