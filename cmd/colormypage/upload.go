package main

import (
	"time"

	"github.com/spf13/cobra"

	"colormypage/pipeline/internal/metadata"
	"colormypage/pipeline/internal/prompts"
	"colormypage/pipeline/internal/storage"
	"colormypage/pipeline/internal/uploader"
)

var (
	flagUploadIn      string
	flagUploadStaged  bool
	flagUploadPublish bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload finished pages and emit the metadata CSVs",
	Long: `Walks the finished-pages directory, uploads every file to object
storage (overwriting existing objects, so re-runs are safe), and writes the
three CSV tables for the database importer and the Pinterest scheduler.
Descriptions and keywords come from the prompt document when a page's slug
matches; pages without a match get a humanized title and empty description.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srcDir := flagUploadIn
		if srcDir == "" {
			srcDir = cfg.Paths.PagesDir
			if flagUploadStaged {
				srcDir = cfg.Paths.StagingDir
			}
		}

		// The prompt document is optional here: without it every page
		// still uploads, just with derived titles.
		index := prompts.Index{}
		opts := uploader.Options{
			Prefix:         cfg.Storage.Prefix,
			Flatten:        cfg.Storage.Flatten,
			CategoryID:     cfg.Metadata.CategoryID,
			PinterestBoard: cfg.Metadata.PinterestBoard,
			LinkBaseURL:    cfg.Metadata.LinkBaseURL,
			Publish:        flagUploadPublish,
		}
		if doc, err := prompts.Load(promptPath()); err != nil {
			logger.Warn().Err(err).Msg("prompt document unavailable, uploading without descriptions")
		} else {
			index = prompts.NewIndex(doc.Specs())
			if doc.CategoryID != "" {
				opts.CategoryID = doc.CategoryID
			}
			if doc.PinterestBoard != "" {
				opts.PinterestBoard = doc.PinterestBoard
			}
		}

		store, err := storage.NewObjectStore(cfg.Storage)
		if err != nil {
			return err
		}
		if err := store.EnsureBucket(cmd.Context()); err != nil {
			logger.Warn().Err(err).Msg("ensure bucket failed")
		}

		started := time.Now()
		result, err := uploader.New(store, index, opts, logger).Run(cmd.Context(), srcDir)
		if err != nil {
			return err
		}

		if err := metadata.WriteAll(cfg.Paths.CSVDir, result.Pages, result.Links, result.Pins); err != nil {
			return err
		}

		logger.Info().
			Int("uploaded", len(result.Pages)).
			Strs("failed", result.Failed).
			Str("csv_dir", cfg.Paths.CSVDir).
			Dur("elapsed", time.Since(started)).
			Msg("upload run complete")
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&flagUploadIn, "in", "", "input directory (default: pages dir from config)")
	uploadCmd.Flags().BoolVar(&flagUploadStaged, "staged", false, "upload from the staging dir instead of the pages dir")
	uploadCmd.Flags().BoolVar(&flagUploadPublish, "publish", false, "mark uploaded pages as published in the import CSV")
}
